package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/testutil/fakebackend"
)

type result struct {
	code   int
	stdout string
	stderr string
}

type harness struct {
	srv   *fakebackend.Server
	creds string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		srv:   fakebackend.New(t),
		creds: filepath.Join(t.TempDir(), "credentials.json"),
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	global := []string{"--backend-url", h.srv.URL, "--credentials", "file", "--credentials-path", h.creds}
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), append(global, args...), strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	res := h.run(t, fakebackend.Password+"\n", "login", "-u", fakebackend.Username)
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Equal(t, "logged in\n", res.stdout)
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	res := h.run(t, "")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "usage: fieldctl")

	res = h.run(t, "", "teleport")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, `unknown command "teleport"`)

	res = h.run(t, "", "show")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "usage: fieldctl show ID")
}

func TestRun_LoginStatusLogout(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	res := h.run(t, "", "status")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "not authenticated\n", res.stdout)

	res = h.run(t, "wrong\n", "login", "-u", fakebackend.Username)
	assert.Equal(t, ExitError, res.code)

	h.login(t)

	res = h.run(t, "", "status")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "authenticated\n", res.stdout)

	res = h.run(t, "", "logout")
	require.Equal(t, ExitOK, res.code, res.stderr)

	res = h.run(t, "", "list")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "not logged in")
}

func TestRun_DeliveryLifecycle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	seeded := h.srv.Seed(fakebackend.Record{
		TransportModel: &fakebackend.Ref{ID: 1, Name: "ГАЗель"},
		Status:         &fakebackend.Ref{ID: 1, Name: "В пути"},
	})
	h.login(t)

	media := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(media, []byte("jpeg"), 0o600))

	res := h.run(t, "", "create",
		"--vehicle-model", "Ford Transit",
		"--vehicle-number", "А123ВС",
		"--package", "Пакет",
		"--status", "В пути",
		"--from", "Склад",
		"--to", "(55.75, 37.61)",
		"--distance", "4",
		"--departure", "2025-03-10T08:00:00Z",
		"--arrival", "2025-03-10T08:40:00Z",
		"--service", "Экспресс",
		"--collector", "Иванов Иван Петрович",
		"--media-file", media,
	)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "created, 2 deliveries\n", res.stdout)

	var created fakebackend.Record
	for _, r := range h.srv.Records() {
		if r.TransportNumber == "А123ВС" {
			created = r
		}
	}
	require.NotZero(t, created.ID)
	assert.Equal(t, "00:40:00", created.TravelTime)
	assert.Equal(t, "Иван", created.CollectorName)
	assert.Equal(t, "Иванов", created.CollectorSurname)
	require.Len(t, h.srv.Uploads(), 1)
	assert.Equal(t, "photo.jpg", h.srv.Uploads()[0].Filename)
	id := strconv.FormatInt(created.ID, 10)

	res = h.run(t, "", "list")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ГАЗель")
	assert.Contains(t, res.stdout, "Ford Transit")
	assert.Contains(t, res.stdout, "00:40:00")

	res = h.run(t, "", "show", id)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Иванов И.П.")
	assert.Contains(t, res.stdout, "Экспресс")

	res = h.run(t, "", "update", id, "--vehicle-model", "Камаз")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "required IDs not found")
	assert.Zero(t, h.srv.Count(http.MethodPatch, "/api/deliveries/"+id+"/"))

	res = h.run(t, "", "update", id, "--vehicle-number", "В777ОР")
	require.Equal(t, ExitOK, res.code, res.stderr)
	rec, ok := h.srv.Record(created.ID)
	require.True(t, ok)
	assert.Equal(t, "В777ОР", rec.TransportNumber)

	res = h.run(t, "", "process", id, "--comment", "принято")
	require.Equal(t, ExitOK, res.code, res.stderr)
	rec, _ = h.srv.Record(created.ID)
	require.NotNil(t, rec.IsProcessed)
	assert.True(t, *rec.IsProcessed)

	res = h.run(t, "", "unprocess", id)
	require.Equal(t, ExitOK, res.code, res.stderr)
	rec, _ = h.srv.Record(created.ID)
	require.NotNil(t, rec.IsProcessed)
	assert.False(t, *rec.IsProcessed)

	out := filepath.Join(t.TempDir(), "out.xlsx")
	res = h.run(t, "", "export", "-o", out)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "exported 2 deliveries")
	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	rows, err := f.GetRows("Доставки")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	require.NoError(t, f.Close())

	res = h.run(t, "", "delete", strconv.FormatInt(seeded, 10))
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Len(t, h.srv.Records(), 1)

	res = h.run(t, "", "show", strconv.FormatInt(seeded, 10))
	assert.Equal(t, ExitError, res.code)
}

func TestRun_Reference(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.login(t)

	res := h.run(t, "", "reference", "transport-models")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ГАЗель")
	assert.Contains(t, res.stdout, "Ford Transit")

	res = h.run(t, "", "reference", "services")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Срочность")

	res = h.run(t, "", "reference", "planets")
	assert.Equal(t, ExitError, res.code)
}

func TestRun_CreateRejectsBadInput(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.login(t)

	res := h.run(t, "", "create",
		"--vehicle-model", "Ford Transit", "--package", "Пакет", "--status", "В пути",
		"--from", "A", "--to", "B",
		"--departure", "2025-03-10T09:00:00Z", "--arrival", "2025-03-10T08:00:00Z",
	)
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "delivery time must be after departure time")

	res = h.run(t, "", "create", "--departure", "yesterday")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "bad time")

	assert.Zero(t, h.srv.Count(http.MethodPost, "/api/deliveries/"))
}

func TestParseCollector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.CollectorName
	}{
		{"", domain.CollectorName{}},
		{"Иванов", domain.CollectorName{Surname: "Иванов"}},
		{"Иванов Иван", domain.CollectorName{Surname: "Иванов", FirstName: "Иван"}},
		{" Иванов  Иван  Петрович ", domain.CollectorName{Surname: "Иванов", FirstName: "Иван", LastName: "Петрович"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCollector(tt.in), tt.in)
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	got, err := parseTime("2025-03-10T08:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)))

	got, err = parseTime("10.03.2025 08:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)))

	_, err = parseTime("soon")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestProcessFlags_Fields(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("process", pflag.ContinueOnError)
	var f processFlags
	f.bind(fs)
	require.NoError(t, fs.Parse(nil))
	fields, err := f.fields(fs)
	require.NoError(t, err)
	assert.Nil(t, fields)

	fs = pflag.NewFlagSet("process", pflag.ContinueOnError)
	f = processFlags{}
	f.bind(fs)
	require.NoError(t, fs.Parse([]string{"--comment", "ok", "--travel-time", "01:30:00", "--distance", "2.5"}))
	fields, err = f.fields(fs)
	require.NoError(t, err)
	require.NotNil(t, fields)
	assert.Equal(t, "ok", *fields.CollectorComment)
	assert.Equal(t, 90, *fields.Duration)
	assert.Equal(t, 2.5, *fields.Distance)
	assert.Nil(t, fields.FromLocation)
	assert.Nil(t, fields.TechnicalState)

	fs = pflag.NewFlagSet("process", pflag.ContinueOnError)
	f = processFlags{}
	f.bind(fs)
	require.NoError(t, fs.Parse([]string{"--travel-time", "ninety"}))
	_, err = f.fields(fs)
	require.ErrorIs(t, err, apperr.ErrMalformedTravelTime)
}
