package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
)

func TestDelivery_ValidateTimes(t *testing.T) {
	t.Parallel()

	dep := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ok := domain.Delivery{DepartureTime: dep, DeliveryTime: dep.Add(time.Minute)}
	require.NoError(t, ok.ValidateTimes())

	same := domain.Delivery{DepartureTime: dep, DeliveryTime: dep}
	require.ErrorIs(t, same.ValidateTimes(), apperr.ErrInvalid)

	before := domain.Delivery{DepartureTime: dep, DeliveryTime: dep.Add(-time.Hour)}
	require.ErrorIs(t, before.ValidateTimes(), apperr.ErrInvalid)
}

func TestDelivery_TransitMinutes(t *testing.T) {
	t.Parallel()

	dep := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d := domain.Delivery{DepartureTime: dep, DeliveryTime: dep.Add(90 * time.Minute)}
	require.Equal(t, 90, d.TransitMinutes())

	d.Duration = 40
	require.Equal(t, 40, d.TransitMinutes(), "manual transit time wins")
}

func TestDelivery_ServiceIDs_Dedup(t *testing.T) {
	t.Parallel()

	d := domain.Delivery{Services: []domain.Service{{ID: 3}, {ID: 1}, {ID: 3}}}
	require.Equal(t, []int64{3, 1}, d.ServiceIDs())
}

func TestDelivery_CloneIsDeep(t *testing.T) {
	t.Parallel()

	d := domain.Delivery{
		Services:  []domain.Service{{ID: 1, Name: "a"}},
		MediaFile: &domain.FileInfo{Name: "p.png"},
	}
	c := d.Clone()
	c.Services[0].Name = "changed"
	c.MediaFile.Name = "changed"

	require.Equal(t, "a", d.Services[0].Name)
	require.Equal(t, "p.png", d.MediaFile.Name)
	require.Nil(t, c.LogFile)
}

func TestCollectorName_Display(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", domain.CollectorName{}.Display())
	require.Equal(t, "Иванов И.П.", domain.CollectorName{FirstName: "Иван", Surname: "Иванов", LastName: "Петрович"}.Display())
	require.Equal(t, "Иванов И.", domain.CollectorName{FirstName: "Иван", Surname: "Иванов"}.Display())
	require.Equal(t, "Smith.J.", domain.CollectorName{Surname: "Smith", LastName: "John"}.Display())
}

func TestParseCoordinates(t *testing.T) {
	t.Parallel()

	c, ok := domain.ParseCoordinates("Точка (55.7558, 37.6173)")
	require.True(t, ok)
	require.InDelta(t, 55.7558, c.Latitude, 1e-9)
	require.InDelta(t, 37.6173, c.Longitude, 1e-9)

	_, ok = domain.ParseCoordinates("ул. Ленина, 1")
	require.False(t, ok)

	back, ok := domain.ParseCoordinates(domain.Coordinates{Latitude: -33.5, Longitude: 151.25}.String())
	require.True(t, ok)
	require.Equal(t, domain.Coordinates{Latitude: -33.5, Longitude: 151.25}, back)
}

func TestMatchName(t *testing.T) {
	t.Parallel()

	models := []domain.TransportModel{{ID: 1, Name: "Газель"}, {ID: 2, Name: "Ларгус"}}

	n, ok := domain.MatchName(models, "Ларгус")
	require.True(t, ok)
	require.Equal(t, int64(2), n.ID())
	require.Equal(t, "Ларгус", n.Label())

	n, ok = domain.MatchName(models, "Камаз")
	require.False(t, ok)
	require.True(t, n.IsZero())

	_, ok = domain.MatchName(models, "  ")
	require.False(t, ok)

	conds := []domain.TechnicalCondition{{ID: 7, Value: "Исправно"}}
	n, ok = domain.MatchName(conds, "Исправно")
	require.True(t, ok)
	require.Equal(t, int64(7), n.ID())
}
