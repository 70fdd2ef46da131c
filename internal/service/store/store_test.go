package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
	testlog "field-delivery-sync/internal/testutil"
)

type fixture struct {
	api      *MockdeliveryAPI
	refs     *Mockresolver
	events   *Mockpublisher
	observer *MockoperationObserver
	rec      *testlog.Recorder
	store    *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		api:      NewMockdeliveryAPI(ctrl),
		refs:     NewMockresolver(ctrl),
		events:   NewMockpublisher(ctrl),
		observer: NewMockoperationObserver(ctrl),
		rec:      testlog.New(),
	}
	f.observer.EXPECT().Observe(gomock.Any(), gomock.Any()).AnyTimes()
	f.store = store.New(f.api, f.refs, nil, f.events, f.observer, f.rec.Logger(), time.Second)
	return f
}

func refName(t *testing.T, id int64, label string) domain.RefName {
	t.Helper()
	n, ok := domain.MatchName([]domain.TransportModel{{ID: id, Name: label}}, label)
	require.True(t, ok)
	return n
}

func requiredIDs(t *testing.T) reference.RequiredIDs {
	t.Helper()
	return reference.RequiredIDs{
		TransportModel: refName(t, 1, "ГАЗель"),
		PackageType:    refName(t, 2, "Пакет"),
		Status:         refName(t, 3, "В пути"),
	}
}

func records(ids ...int64) []backend.Delivery {
	out := make([]backend.Delivery, 0, len(ids))
	for _, id := range ids {
		out = append(out, backend.Delivery{ID: id, TravelTime: "00:30:00"})
	}
	return out
}

func snapshotIDs(s *store.Store) []string {
	var ids []string
	for _, d := range s.Deliveries() {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestLoadDeliveries_ReplacesSnapshot(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1, 2), nil)
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(3), nil)

	require.NoError(t, f.store.LoadDeliveries(ctx))
	assert.Equal(t, []string{"1", "2"}, snapshotIDs(f.store))

	require.NoError(t, f.store.LoadDeliveries(ctx))
	assert.Equal(t, []string{"3"}, snapshotIDs(f.store))
	assert.Equal(t, 30, f.store.Deliveries()[0].Duration)
	assert.NoError(t, f.store.Err())
	assert.False(t, f.store.IsLoading())
}

func TestLoadDeliveries_FailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("network down")
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1), nil)
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(nil, boom)

	require.NoError(t, f.store.LoadDeliveries(ctx))
	err := f.store.LoadDeliveries(ctx)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"1"}, snapshotIDs(f.store))
	assert.ErrorIs(t, f.store.Err(), boom)
	assert.False(t, f.store.IsLoading())
	assert.Len(t, f.rec.Find("error", "store operation failed"), 1)
}

func TestLoadDeliveries_MalformedRecordAbortsReload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	bad := records(5, 6)
	bad[1].TravelTime = "1:30"
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1), nil)
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(bad, nil)

	require.NoError(t, f.store.LoadDeliveries(ctx))
	err := f.store.LoadDeliveries(ctx)
	require.ErrorIs(t, err, apperr.ErrMalformedTravelTime)
	require.ErrorIs(t, err, apperr.ErrBadBackendData)
	assert.Equal(t, []string{"1"}, snapshotIDs(f.store))
}

func TestInitialize_SkipsLoadWithoutCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.api.EXPECT().IsAuthenticated(gomock.Any()).Return(false, nil)

	require.NoError(t, f.store.Initialize(context.Background()))
	assert.Empty(t, f.store.Deliveries())
}

func TestInitialize_LoadsWithCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	gomock.InOrder(
		f.api.EXPECT().IsAuthenticated(gomock.Any()).Return(true, nil),
		f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(7), nil),
	)

	require.NoError(t, f.store.Initialize(context.Background()))
	assert.Equal(t, []string{"7"}, snapshotIDs(f.store))
}

func TestInitialize_CredentialError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	boom := errors.New("disk")
	f.api.EXPECT().IsAuthenticated(gomock.Any()).Return(false, boom)

	require.ErrorIs(t, f.store.Initialize(context.Background()), boom)
	assert.ErrorIs(t, f.store.Err(), boom)
}

func TestAddDelivery_ReloadsAndPublishes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	form := backend.CreateDeliveryForm{TransportNumber: "X"}
	gomock.InOrder(
		f.api.EXPECT().CreateDelivery(gomock.Any(), form).Return(&backend.Delivery{ID: 9}, nil),
		f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(8, 9), nil),
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev domain.MutationEvent) error {
				assert.Equal(t, "9", ev.DeliveryID)
				assert.Equal(t, domain.ActionCreated, ev.Action)
				assert.False(t, ev.At.IsZero())
				return nil
			}),
	)

	require.NoError(t, f.store.AddDelivery(context.Background(), form))
	assert.Equal(t, []string{"8", "9"}, snapshotIDs(f.store))
}

func TestAddDelivery_CreateFailsWithoutReload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	boom := &backend.StatusError{Method: "POST", Path: "/api/deliveries/", Code: 400}
	f.api.EXPECT().CreateDelivery(gomock.Any(), gomock.Any()).Return(nil, boom)

	err := f.store.AddDelivery(context.Background(), backend.CreateDeliveryForm{})
	require.ErrorIs(t, err, apperr.ErrInvalid)
	assert.True(t, store.IsValidationError(err))
}

func TestAddDelivery_PublishErrorIsOnlyLogged(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.api.EXPECT().CreateDelivery(gomock.Any(), gomock.Any()).Return(&backend.Delivery{ID: 1}, nil)
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1), nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	require.NoError(t, f.store.AddDelivery(context.Background(), backend.CreateDeliveryForm{}))
	assert.Len(t, f.rec.Find("warn", "publish mutation event"), 1)
}

func TestUpdateDelivery_UnknownNameSendsNoPatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1), nil)
	require.NoError(t, f.store.LoadDeliveries(ctx))
	before := f.store.Deliveries()

	f.refs.EXPECT().Resolve(gomock.Any(), "Камаз", "Пакет", "В пути").
		Return(reference.RequiredIDs{}, apperr.ErrRequiredIDsNotFound)

	d := before[0]
	d.VehicleModel, d.PackageType, d.Status = "Камаз", "Пакет", "В пути"
	err := f.store.UpdateDelivery(ctx, d)
	require.ErrorIs(t, err, apperr.ErrRequiredIDsNotFound)
	assert.Equal(t, before, f.store.Deliveries())
}

func TestUpdateDelivery_BuildsFullPatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	dep := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	d := domain.Delivery{
		ID:               "12",
		VehicleModel:     "ГАЗель",
		VehicleNumber:    "А123ВС77",
		PackageType:      "Пакет",
		Status:           "В пути",
		DepartureTime:    dep,
		DeliveryTime:     dep.Add(95 * time.Minute),
		Duration:         95,
		Distance:         7.25,
		FromLocation:     "(55.75, 37.61)",
		ToLocation:       "Офис",
		Services:         []domain.Service{{ID: 4}, {ID: 4}, {ID: 5}},
		TechnicalState:   "Исправно",
		CollectorName:    domain.CollectorName{FirstName: "Иван", Surname: "Иванов"},
		CollectorComment: "ok",
		IsProcessed:      true,
	}
	f.refs.EXPECT().Resolve(gomock.Any(), "ГАЗель", "Пакет", "В пути").Return(requiredIDs(t), nil)
	f.api.EXPECT().PatchDelivery(gomock.Any(), int64(12), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, p backend.DeliveryPatch) (*backend.Delivery, error) {
			assert.EqualValues(t, 1, *p.TransportModelID)
			assert.EqualValues(t, 2, *p.PackageTypeID)
			assert.EqualValues(t, 3, *p.StatusID)
			assert.Equal(t, []int64{4, 5}, *p.ServiceIDs)
			assert.Equal(t, "01:35:00", *p.TravelTime)
			assert.Equal(t, "2024-05-01T09:00:00.000Z", *p.DepartureTime)
			assert.Equal(t, "2024-05-01T10:35:00.000Z", *p.DeliveryTime)
			assert.Equal(t, backend.PatchLocation{LocationFrom: "(55.75, 37.61)", LocationTo: "Офис", DistanceKm: "7.25"}, *p.Location)
			assert.Equal(t, "", *p.CollectorLastname)
			assert.True(t, *p.IsProcessed)
			return &backend.Delivery{ID: 12}, nil
		})
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(12), nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.store.UpdateDelivery(context.Background(), d))
}

func TestUpdateDelivery_InvalidID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	err := f.store.UpdateDelivery(context.Background(), domain.Delivery{ID: "abc"})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestDeleteDelivery(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	gomock.InOrder(
		f.api.EXPECT().DeleteDelivery(gomock.Any(), int64(2)).Return(nil),
		f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1, 3), nil),
	)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.store.DeleteDelivery(ctx, "2"))
	assert.Equal(t, []string{"1", "3"}, snapshotIDs(f.store))

	require.ErrorIs(t, f.store.DeleteDelivery(ctx, "0"), apperr.ErrInvalid)
}

func TestProcessDelivery_WithFields(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	from, comment, minutes := "Склад", "готово", 45
	f.api.EXPECT().PatchDelivery(gomock.Any(), int64(4), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, p backend.DeliveryPatch) (*backend.Delivery, error) {
			require.NotNil(t, p.IsProcessed)
			assert.True(t, *p.IsProcessed)
			assert.Equal(t, backend.PatchLocation{LocationFrom: "Склад", DistanceKm: "0.00"}, *p.Location)
			assert.Equal(t, "00:45:00", *p.TravelTime)
			assert.Equal(t, "готово", *p.Description)
			assert.Nil(t, p.TransportModelID)
			assert.Nil(t, p.ServiceIDs)
			assert.Nil(t, p.DepartureTime)
			assert.Nil(t, p.TechnicalCondition)
			return &backend.Delivery{ID: 4}, nil
		})
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(4), nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	err := f.store.ProcessDelivery(context.Background(), "4", &store.ProcessFields{
		FromLocation:     &from,
		CollectorComment: &comment,
		Duration:         &minutes,
	})
	require.NoError(t, err)
}

func TestUnprocessDelivery(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.api.EXPECT().PatchDelivery(gomock.Any(), int64(4), backend.DeliveryPatch{IsProcessed: backend.Ptr(false)}).
		Return(&backend.Delivery{ID: 4}, nil)
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(4), nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev domain.MutationEvent) error {
			assert.Equal(t, domain.ActionUnprocessed, ev.Action)
			return nil
		})

	require.NoError(t, f.store.UnprocessDelivery(context.Background(), "4"))
}

func TestOperations_TrackedWhileInFlight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.api.EXPECT().ListDeliveries(gomock.Any()).DoAndReturn(func(context.Context) ([]backend.Delivery, error) {
		assert.True(t, f.store.IsLoading())
		ops := f.store.Operations()
		require.Len(t, ops, 1)
		assert.Equal(t, store.KindLoad, ops[0].Kind)
		return nil, nil
	})

	require.NoError(t, f.store.LoadDeliveries(context.Background()))
	assert.False(t, f.store.IsLoading())
	assert.Empty(t, f.store.Operations())
}

func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ch, cancel := f.store.Subscribe()
	defer cancel()

	first := <-ch
	assert.Empty(t, first.Deliveries)
	assert.False(t, first.Loading)

	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(records(1), nil)
	require.NoError(t, f.store.LoadDeliveries(context.Background()))

	last := <-ch
	assert.False(t, last.Loading)
	require.Len(t, last.Deliveries, 1)

	cancel()
	_, open := <-ch
	assert.False(t, open)
	cancel()
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	recs := records(1)
	recs[0].Services = []backend.Service{{ID: 1, Name: "Экспресс"}}
	f.api.EXPECT().ListDeliveries(gomock.Any()).Return(recs, nil)
	require.NoError(t, f.store.LoadDeliveries(context.Background()))

	got := f.store.Deliveries()
	got[0].Services[0].Name = "changed"

	d, err := f.store.Delivery("1")
	require.NoError(t, err)
	assert.Equal(t, "Экспресс", d.Services[0].Name)

	_, err = f.store.Delivery("404")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCallbackResults(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.SetCallbackResult("k", "v")
	v, ok := f.store.CallbackResult("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	f.store.ClearCallbackResult("k")
	_, ok = f.store.CallbackResult("k")
	assert.False(t, ok)
}

func TestDraft(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, ok := f.store.Draft()
	assert.False(t, ok)

	f.store.SetDraft(domain.Delivery{VehicleModel: "ГАЗель"})
	d, ok := f.store.Draft()
	require.True(t, ok)
	assert.Equal(t, "ГАЗель", d.VehicleModel)

	f.store.ClearDraft()
	_, ok = f.store.Draft()
	assert.False(t, ok)
}

func TestCreateDelivery_ValidatesBeforeResolving(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	dep := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	err := f.store.CreateDelivery(context.Background(), domain.Delivery{VehicleModel: "ГАЗель"}, store.Attachments{})
	require.ErrorIs(t, err, apperr.ErrInvalid)

	err = f.store.CreateDelivery(context.Background(), domain.Delivery{
		VehicleModel:  "ГАЗель",
		PackageType:   "Пакет",
		FromLocation:  "a",
		ToLocation:    "b",
		DepartureTime: dep,
		DeliveryTime:  dep,
	}, store.Attachments{})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}
