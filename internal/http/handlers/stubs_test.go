package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
)

type stubStore struct {
	snap       store.Snapshot
	ops        []store.Operation
	deliveries map[string]domain.Delivery

	initFn      func(ctx context.Context) error
	loadFn      func(ctx context.Context) error
	createFn    func(ctx context.Context, draft domain.Delivery, files store.Attachments) error
	updateFn    func(ctx context.Context, d domain.Delivery) error
	deleteFn    func(ctx context.Context, id string) error
	processFn   func(ctx context.Context, id string, fields *store.ProcessFields) error
	unprocessFn func(ctx context.Context, id string) error
	// changes are delivered to Subscribe after the current snapshot.
	changes []store.Snapshot
}

func (s *stubStore) Snapshot() store.Snapshot      { return s.snap }
func (s *stubStore) Operations() []store.Operation { return s.ops }

func (s *stubStore) Delivery(id string) (domain.Delivery, error) {
	d, ok := s.deliveries[id]
	if !ok {
		return domain.Delivery{}, apperr.ErrNotFound
	}
	return d, nil
}

func (s *stubStore) Initialize(ctx context.Context) error {
	if s.initFn == nil {
		panic("Initialize not expected in this test")
	}
	return s.initFn(ctx)
}

func (s *stubStore) LoadDeliveries(ctx context.Context) error {
	if s.loadFn == nil {
		panic("LoadDeliveries not expected in this test")
	}
	return s.loadFn(ctx)
}

func (s *stubStore) CreateDelivery(ctx context.Context, draft domain.Delivery, files store.Attachments) error {
	if s.createFn == nil {
		panic("CreateDelivery not expected in this test")
	}
	return s.createFn(ctx, draft, files)
}

func (s *stubStore) UpdateDelivery(ctx context.Context, d domain.Delivery) error {
	if s.updateFn == nil {
		panic("UpdateDelivery not expected in this test")
	}
	return s.updateFn(ctx, d)
}

func (s *stubStore) DeleteDelivery(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		panic("DeleteDelivery not expected in this test")
	}
	return s.deleteFn(ctx, id)
}

func (s *stubStore) ProcessDelivery(ctx context.Context, id string, fields *store.ProcessFields) error {
	if s.processFn == nil {
		panic("ProcessDelivery not expected in this test")
	}
	return s.processFn(ctx, id, fields)
}

func (s *stubStore) UnprocessDelivery(ctx context.Context, id string) error {
	if s.unprocessFn == nil {
		panic("UnprocessDelivery not expected in this test")
	}
	return s.unprocessFn(ctx, id)
}

func (s *stubStore) Subscribe() (<-chan store.Snapshot, func()) {
	ch := make(chan store.Snapshot, len(s.changes)+1)
	ch <- s.snap
	for _, snap := range s.changes {
		ch <- snap
	}
	return ch, func() {}
}

type stubAuth struct {
	loginFn  func(ctx context.Context, username, password string) error
	logoutFn func(ctx context.Context) error
	authed   bool
	err      error
}

func (s *stubAuth) Login(ctx context.Context, username, password string) error {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuth) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func (s *stubAuth) IsAuthenticated(context.Context) (bool, error) {
	return s.authed, s.err
}

type stubRefs struct {
	lists  map[reference.Kind]any
	groups []reference.ServiceGroup
	err    error
}

func (s *stubRefs) List(_ context.Context, kind reference.Kind) (any, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.lists[kind]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return v, nil
}

func (s *stubRefs) ServicesByCategory(context.Context) ([]reference.ServiceGroup, error) {
	return s.groups, s.err
}

type stubExporter struct {
	got []domain.Delivery
	at  time.Time
}

func (s *stubExporter) Generate(deliveries []domain.Delivery, generatedAt time.Time) ([]byte, error) {
	s.got = deliveries
	s.at = generatedAt
	return []byte("xlsx"), nil
}

// serve routes req through a one-route chi mux so URL params resolve.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
