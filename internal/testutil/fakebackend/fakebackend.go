// Package fakebackend is an in-memory delivery backend for tests. It speaks
// the same REST dialect as the real service.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Default login and the token it yields.
const (
	Username     = "courier"
	Password     = "secret"
	AccessToken  = "access-token"
	RefreshToken = "refresh-token"
)

// Ref is a reference entry with an id and a label.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Category is a service category.
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ServiceRef is a service entry.
type ServiceRef struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Category *Category `json:"category"`
}

// Condition is a technical condition entry.
type Condition struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// Location is a stored route.
type Location struct {
	ID           int64  `json:"id"`
	LocationFrom string `json:"location_from"`
	LocationTo   string `json:"location_to"`
	DistanceKm   string `json:"distance_km"`
}

// Record is a delivery as the backend serialises it.
type Record struct {
	ID                 int64        `json:"id"`
	TransportModel     *Ref         `json:"transport_model_details"`
	TransportNumber    string       `json:"transport_number,omitempty"`
	PackageType        *Ref         `json:"package_type_details"`
	Services           []ServiceRef `json:"services_details"`
	Status             *Ref         `json:"status_details"`
	TechnicalCondition string       `json:"technical_condition,omitempty"`
	Location           *Location    `json:"location"`
	DepartureTime      string       `json:"departure_time,omitempty"`
	DeliveryTime       string       `json:"delivery_time,omitempty"`
	TravelTime         string       `json:"travel_time,omitempty"`
	Description        string       `json:"description,omitempty"`
	MediaFile          string       `json:"media_file,omitempty"`
	Logfile            string       `json:"logfile,omitempty"`
	CollectorName      string       `json:"collector_name,omitempty"`
	CollectorSurname   string       `json:"collector_surname,omitempty"`
	CollectorLastname  string       `json:"collector_lastname,omitempty"`
	IsProcessed        *bool        `json:"is_processed,omitempty"`
}

// Request is a recorded incoming request.
type Request struct {
	Method string
	Path   string
	Auth   string
}

// Upload is a file received in a multipart create.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	records    map[int64]Record
	nextID     int64
	requests   []Request
	lastForm   url.Values
	uploads    []Upload
	patches    []map[string]any
	failures   map[string][]int
	requireTok bool

	Models     []Ref
	Packages   []Ref
	Statuses   []Ref
	Cargo      []Ref
	Categories []Category
	Services   []ServiceRef
	Conditions []Condition
	Locations  []Location
}

// New starts a fake backend with a small reference catalogue and no
// deliveries. The server is closed by t.Cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	express := &Category{ID: 1, Title: "Срочность"}
	s := &Server{
		records:    map[int64]Record{},
		nextID:     1,
		failures:   map[string][]int{},
		requireTok: true,
		Models:     []Ref{{ID: 1, Name: "ГАЗель"}, {ID: 2, Name: "Ford Transit"}},
		Packages:   []Ref{{ID: 1, Name: "Коробка"}, {ID: 2, Name: "Пакет"}},
		Statuses:   []Ref{{ID: 1, Name: "В пути"}, {ID: 2, Name: "Доставлено"}},
		Cargo:      []Ref{{ID: 1, Name: "Документы"}},
		Categories: []Category{*express},
		Services: []ServiceRef{
			{ID: 1, Name: "Экспресс", Category: express},
			{ID: 2, Name: "Хрупкое"},
		},
		Conditions: []Condition{{ID: 1, Value: "Исправно"}, {ID: 2, Value: "Неисправно"}},
		Locations:  []Location{{ID: 1, LocationFrom: "Склад", LocationTo: "Офис", DistanceKm: "12.50"}},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// AllowAnonymous disables the bearer token check.
func (s *Server) AllowAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireTok = false
}

// Seed stores r, assigning an id when r.ID is zero, and returns the id.
func (s *Server) Seed(r Record) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.nextID
	}
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
	s.records[r.ID] = r
	return r.ID
}

// Record returns the stored delivery.
func (s *Server) Record(id int64) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	return r, ok
}

// Records returns the stored deliveries ordered by id.
func (s *Server) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// FailNext makes the next len(codes) requests matching method and path
// answer with the given statuses.
func (s *Server) FailNext(method, path string, codes ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], codes...)
}

// Requests returns the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastForm returns the values of the last multipart create.
func (s *Server) LastForm() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastForm
}

// Uploads returns files received by multipart creates.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Patches returns the decoded PATCH bodies.
func (s *Server) Patches() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.patches))
	copy(out, s.patches)
	return out
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.inject)
	r.Post("/api/token/", s.token)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/api/deliveries/", s.list)
		r.Post("/api/deliveries/", s.create)
		r.Get("/api/deliveries/technical_conditions/", s.reference(func() any { return s.Conditions }))
		r.Get("/api/deliveries/{id}/", s.get)
		r.Patch("/api/deliveries/{id}/", s.patch)
		r.Delete("/api/deliveries/{id}/", s.delete)

		r.Get("/api/transport-models/", s.reference(func() any { return s.Models }))
		r.Get("/api/package-types/", s.reference(func() any { return s.Packages }))
		r.Get("/api/delivery-statuses/", s.reference(func() any { return s.Statuses }))
		r.Get("/api/cargo-types/", s.reference(func() any { return s.Cargo }))
		r.Get("/api/service-categories/", s.reference(func() any { return s.Categories }))
		r.Get("/api/services/", s.reference(func() any { return s.Services }))
		r.Get("/api/locations/", s.reference(func() any { return s.Locations }))
		r.Post("/api/locations/", s.createLocation)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		queue := s.failures[key]
		code := 0
		if len(queue) > 0 {
			code = queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()
		if code != 0 {
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		require := s.requireTok
		s.mu.Unlock()
		if require && r.Header.Get("Authorization") != "Bearer "+AccessToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	if in.Username != Username || in.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": AccessToken, "refresh": RefreshToken})
}

func (s *Server) reference(list func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		v := list()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, v)
	}
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Records())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, found := s.Record(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	form := r.MultipartForm
	rec := Record{
		TransportNumber:    first(form.Value, "transport_number"),
		TechnicalCondition: first(form.Value, "technical_condition"),
		DepartureTime:      first(form.Value, "departure_time"),
		DeliveryTime:       first(form.Value, "delivery_time"),
		TravelTime:         first(form.Value, "travel_time"),
		Description:        first(form.Value, "description"),
		CollectorName:      first(form.Value, "collector_name"),
		CollectorSurname:   first(form.Value, "collector_surname"),
		CollectorLastname:  first(form.Value, "collector_lastname"),
	}
	processed := first(form.Value, "is_processed") == "true"
	rec.IsProcessed = &processed

	s.mu.Lock()
	rec.TransportModel = findRef(s.Models, first(form.Value, "transport_model_id"))
	rec.PackageType = findRef(s.Packages, first(form.Value, "package_type_id"))
	rec.Status = findRef(s.Statuses, first(form.Value, "status_id"))
	for _, raw := range form.Value["services_ids"] {
		if svc, ok := findService(s.Services, raw); ok {
			rec.Services = append(rec.Services, svc)
		}
	}
	if from := first(form.Value, "location.location_from"); from != "" {
		rec.Location = &Location{
			LocationFrom: from,
			LocationTo:   first(form.Value, "location.location_to"),
			DistanceKm:   first(form.Value, "location.distance_km"),
		}
	}
	for field, files := range form.File {
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			b, _ := io.ReadAll(f)
			_ = f.Close()
			s.uploads = append(s.uploads, Upload{
				Field:       field,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     b,
			})
			uri := fmt.Sprintf("%s/media/%s/%s", s.URL, field, url.PathEscape(fh.Filename))
			if field == "logfile" {
				rec.Logfile = uri
			} else {
				rec.MediaFile = uri
			}
		}
	}
	rec.ID = s.nextID
	s.nextID++
	s.records[rec.ID] = rec
	s.lastForm = form.Value
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	var in struct {
		TransportModelID   *int64    `json:"transport_model_id"`
		TransportNumber    *string   `json:"transport_number"`
		PackageTypeID      *int64    `json:"package_type_id"`
		ServiceIDs         *[]int64  `json:"services_ids"`
		StatusID           *int64    `json:"status_id"`
		TechnicalCondition *string   `json:"technical_condition"`
		Location           *Location `json:"location"`
		DepartureTime      *string   `json:"departure_time"`
		DeliveryTime       *string   `json:"delivery_time"`
		TravelTime         *string   `json:"travel_time"`
		Description        *string   `json:"description"`
		CollectorName      *string   `json:"collector_name"`
		CollectorSurname   *string   `json:"collector_surname"`
		CollectorLastname  *string   `json:"collector_lastname"`
		IsProcessed        *bool     `json:"is_processed"`
	}
	_ = json.Unmarshal(raw, &in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, generic)
	rec, found := s.records[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	if in.TransportModelID != nil {
		rec.TransportModel = findRef(s.Models, strconv.FormatInt(*in.TransportModelID, 10))
	}
	if in.PackageTypeID != nil {
		rec.PackageType = findRef(s.Packages, strconv.FormatInt(*in.PackageTypeID, 10))
	}
	if in.StatusID != nil {
		rec.Status = findRef(s.Statuses, strconv.FormatInt(*in.StatusID, 10))
	}
	if in.ServiceIDs != nil {
		rec.Services = nil
		for _, sid := range *in.ServiceIDs {
			if svc, ok := findService(s.Services, strconv.FormatInt(sid, 10)); ok {
				rec.Services = append(rec.Services, svc)
			}
		}
	}
	if in.Location != nil {
		loc := *in.Location
		rec.Location = &loc
	}
	setString(&rec.TransportNumber, in.TransportNumber)
	setString(&rec.TechnicalCondition, in.TechnicalCondition)
	setString(&rec.DepartureTime, in.DepartureTime)
	setString(&rec.DeliveryTime, in.DeliveryTime)
	setString(&rec.TravelTime, in.TravelTime)
	setString(&rec.Description, in.Description)
	setString(&rec.CollectorName, in.CollectorName)
	setString(&rec.CollectorSurname, in.CollectorSurname)
	setString(&rec.CollectorLastname, in.CollectorLastname)
	if in.IsProcessed != nil {
		v := *in.IsProcessed
		rec.IsProcessed = &v
	}
	s.records[id] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.records[id]
	delete(s.records, id)
	s.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createLocation(w http.ResponseWriter, r *http.Request) {
	var in Location
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	in.ID = int64(len(s.Locations) + 1)
	s.Locations = append(s.Locations, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) sortedLocked() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func findRef(list []Ref, raw string) *Ref {
	for _, r := range list {
		if strconv.FormatInt(r.ID, 10) == strings.TrimSpace(raw) {
			ref := r
			return &ref
		}
	}
	return nil
}

func findService(list []ServiceRef, raw string) (ServiceRef, bool) {
	for _, svc := range list {
		if strconv.FormatInt(svc.ID, 10) == strings.TrimSpace(raw) {
			return svc, true
		}
	}
	return ServiceRef{}, false
}

func first(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
