// Package store is the client-side delivery store. It holds the last
// server-confirmed delivery collection and is the only writer of delivery
// state on the backend. Every successful mutation is followed by a full
// reload, so the snapshot never contains local guesses.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/service/callback"
	"field-delivery-sync/internal/service/mapper"
)

const defaultOperationTimeout = 30 * time.Second

// Store is safe for concurrent use. Concurrent operations are not
// serialised: the last reload to finish wins.
type Store struct {
	api              deliveryAPI
	refs             resolver
	mapper           *mapper.Mapper
	events           publisher
	ops              operationObserver
	board            *callback.Board
	drafts           *callback.Drafts
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time

	mu         sync.RWMutex
	deliveries []domain.Delivery
	lastErr    error
	inflight   map[uuid.UUID]Operation
	subs       map[uint64]chan Snapshot
	nextSub    uint64
}

// New builds a Store. events and ops may be nil.
func New(
	api deliveryAPI,
	refs resolver,
	m *mapper.Mapper,
	events publisher,
	ops operationObserver,
	logger logx.Logger,
	timeout time.Duration,
) *Store {
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}
	logger = logx.OrNop(logger)
	if m == nil {
		m = mapper.New(logger)
	}
	return &Store{
		api:              api,
		refs:             refs,
		mapper:           m,
		events:           events,
		ops:              ops,
		board:            callback.NewBoard(),
		drafts:           callback.NewDrafts(),
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		inflight:         make(map[uuid.UUID]Operation),
		subs:             make(map[uint64]chan Snapshot),
	}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// run tracks fn as an operation of kind and records its outcome.
func (s *Store) run(ctx context.Context, kind Kind, fn func(context.Context) error) error {
	op := s.begin(kind)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := fn(ctx)
	s.end(op, err)
	return err
}

func (s *Store) begin(kind Kind) Operation {
	op := Operation{ID: uuid.New(), Kind: kind, StartedAt: s.now()}
	s.mu.Lock()
	s.inflight[op.ID] = op
	s.notifyLocked()
	s.mu.Unlock()
	return op
}

func (s *Store) end(op Operation, err error) {
	s.mu.Lock()
	delete(s.inflight, op.ID)
	s.lastErr = err
	s.notifyLocked()
	s.mu.Unlock()

	if s.ops != nil {
		s.ops.Observe(string(op.Kind), err)
	}
	fields := []logx.Field{
		logx.String("operation", string(op.Kind)),
		logx.String("operation_id", op.ID.String()),
		logx.Duration("duration", s.now().Sub(op.StartedAt)),
	}
	if err != nil {
		s.logger.Error("store operation failed", append(fields, logx.Err(err))...)
		return
	}
	s.logger.Debug("store operation done", fields...)
}

// reload replaces the snapshot with the server collection. The snapshot is
// untouched on any error.
func (s *Store) reload(ctx context.Context) error {
	recs, err := s.api.ListDeliveries(ctx)
	if err != nil {
		return fmt.Errorf("load deliveries: %w", err)
	}
	list, err := s.mapper.ToDeliveries(recs)
	if err != nil {
		return fmt.Errorf("map deliveries: %w: %w", apperr.ErrBadBackendData, err)
	}
	s.mu.Lock()
	s.deliveries = list
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) publish(ctx context.Context, id string, action domain.MutationAction) {
	if s.events == nil {
		return
	}
	ev := domain.MutationEvent{DeliveryID: id, Action: action, At: s.now()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish mutation event",
			logx.String("delivery_id", id),
			logx.String("action", string(action)),
			logx.Err(err),
		)
	}
}

// Initialize loads the collection when a usable credential is stored and
// does nothing otherwise.
func (s *Store) Initialize(ctx context.Context) error {
	return s.run(ctx, KindInitialize, func(ctx context.Context) error {
		ok, err := s.api.IsAuthenticated(ctx)
		if err != nil {
			return fmt.Errorf("check credentials: %w", err)
		}
		if !ok {
			s.logger.Info("no usable credential stored, skipping initial load")
			return nil
		}
		return s.reload(ctx)
	})
}

// LoadDeliveries replaces the snapshot with the server collection.
func (s *Store) LoadDeliveries(ctx context.Context) error {
	return s.run(ctx, KindLoad, s.reload)
}

// AddDelivery submits an assembled create form and reloads.
func (s *Store) AddDelivery(ctx context.Context, form backend.CreateDeliveryForm) error {
	return s.run(ctx, KindAdd, func(ctx context.Context) error {
		return s.add(ctx, form)
	})
}

func (s *Store) add(ctx context.Context, form backend.CreateDeliveryForm) error {
	created, err := s.api.CreateDelivery(ctx, form)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	if err := s.reload(ctx); err != nil {
		return err
	}
	id := ""
	if created != nil {
		id = strconv.FormatInt(created.ID, 10)
	}
	s.publish(ctx, id, domain.ActionCreated)
	return nil
}

// CreateDelivery validates a draft, resolves its reference names and
// submits it as a new, unprocessed delivery. The held draft is cleared on
// success.
func (s *Store) CreateDelivery(ctx context.Context, draft domain.Delivery, files Attachments) error {
	return s.run(ctx, KindCreate, func(ctx context.Context) error {
		if err := validateDraft(draft); err != nil {
			return err
		}
		ids, err := s.refs.Resolve(ctx, draft.VehicleModel, draft.PackageType, draft.Status)
		if err != nil {
			return err
		}
		form := backend.CreateDeliveryForm{
			TransportModelID:   ids.TransportModel.ID(),
			TransportNumber:    draft.VehicleNumber,
			PackageTypeID:      ids.PackageType.ID(),
			ServiceIDs:         draft.ServiceIDs(),
			StatusID:           ids.Status.ID(),
			TechnicalCondition: draft.TechnicalState,
			LocationFrom:       draft.FromLocation,
			LocationTo:         draft.ToLocation,
			DistanceKm:         draft.Distance,
			DepartureTime:      draft.DepartureTime,
			DeliveryTime:       draft.DeliveryTime,
			TravelTime:         domain.FormatTravelTime(draft.TransitMinutes()),
			Description:        draft.CollectorComment,
			CollectorName:      draft.CollectorName.FirstName,
			CollectorSurname:   draft.CollectorName.Surname,
			CollectorLastname:  draft.CollectorName.LastName,
			IsProcessed:        false,
			MediaFile:          files.MediaFile,
			LogFile:            files.LogFile,
		}
		if form.TechnicalCondition == "" {
			form.TechnicalCondition = domain.DefaultTechnicalState
		}
		if err := s.add(ctx, form); err != nil {
			return err
		}
		s.drafts.Clear()
		return nil
	})
}

func validateDraft(d domain.Delivery) error {
	var missing []string
	if strings.TrimSpace(d.VehicleModel) == "" {
		missing = append(missing, "vehicle model")
	}
	if strings.TrimSpace(d.PackageType) == "" {
		missing = append(missing, "package type")
	}
	if strings.TrimSpace(d.FromLocation) == "" {
		missing = append(missing, "from location")
	}
	if strings.TrimSpace(d.ToLocation) == "" {
		missing = append(missing, "to location")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperr.ErrInvalid, strings.Join(missing, ", "))
	}
	if d.Distance < 0 {
		return fmt.Errorf("%w: negative distance", apperr.ErrInvalid)
	}
	return d.ValidateTimes()
}

// UpdateDelivery writes every editable field of d. Reference names are
// resolved first; no PATCH is sent when any of them is unknown.
func (s *Store) UpdateDelivery(ctx context.Context, d domain.Delivery) error {
	return s.run(ctx, KindUpdate, func(ctx context.Context) error {
		id, err := parseID(d.ID)
		if err != nil {
			return err
		}
		ids, err := s.refs.Resolve(ctx, d.VehicleModel, d.PackageType, d.Status)
		if err != nil {
			return err
		}
		if _, err := s.api.PatchDelivery(ctx, id, updatePatch(d, ids)); err != nil {
			return fmt.Errorf("update delivery %d: %w", id, err)
		}
		if err := s.reload(ctx); err != nil {
			return err
		}
		s.publish(ctx, d.ID, domain.ActionUpdated)
		return nil
	})
}

// DeleteDelivery deletes a delivery and reloads.
func (s *Store) DeleteDelivery(ctx context.Context, id string) error {
	return s.run(ctx, KindDelete, func(ctx context.Context) error {
		n, err := parseID(id)
		if err != nil {
			return err
		}
		if err := s.api.DeleteDelivery(ctx, n); err != nil {
			return fmt.Errorf("delete delivery %d: %w", n, err)
		}
		if err := s.reload(ctx); err != nil {
			return err
		}
		s.publish(ctx, id, domain.ActionDeleted)
		return nil
	})
}

// ProcessDelivery marks a delivery processed, sending the set fields of
// fields in the same request.
func (s *Store) ProcessDelivery(ctx context.Context, id string, fields *ProcessFields) error {
	return s.run(ctx, KindProcess, func(ctx context.Context) error {
		patch := processPatch(fields)
		patch.IsProcessed = backend.Ptr(true)
		return s.setProcessed(ctx, id, patch, domain.ActionProcessed)
	})
}

// UnprocessDelivery clears the processed flag.
func (s *Store) UnprocessDelivery(ctx context.Context, id string) error {
	return s.run(ctx, KindUnprocess, func(ctx context.Context) error {
		return s.setProcessed(ctx, id, backend.DeliveryPatch{IsProcessed: backend.Ptr(false)}, domain.ActionUnprocessed)
	})
}

func (s *Store) setProcessed(ctx context.Context, id string, patch backend.DeliveryPatch, action domain.MutationAction) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.api.PatchDelivery(ctx, n, patch); err != nil {
		return fmt.Errorf("%s delivery %d: %w", action, n, err)
	}
	if err := s.reload(ctx); err != nil {
		return err
	}
	s.publish(ctx, id, action)
	return nil
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: delivery id %q", apperr.ErrInvalid, id)
	}
	return n, nil
}

// Deliveries returns a copy of the current snapshot.
func (s *Store) Deliveries() []domain.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.deliveries)
}

// Delivery returns a copy of one delivery from the snapshot.
func (s *Store) Delivery(id string) (domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.deliveries {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return domain.Delivery{}, fmt.Errorf("delivery %q: %w", id, apperr.ErrNotFound)
}

// Err returns the error of the most recently finished operation.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// IsLoading reports whether any operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inflight) > 0
}

// Operations returns the in-flight operations, oldest first.
func (s *Store) Operations() []Operation {
	s.mu.RLock()
	out := make([]Operation, 0, len(s.inflight))
	for _, op := range s.inflight {
		out = append(out, op)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Subscribe returns a channel that receives the current snapshot and then
// every change. Slow readers only see the latest snapshot. cancel closes
// the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Deliveries: cloneAll(s.deliveries),
		Err:        s.lastErr,
		Loading:    len(s.inflight) > 0,
	}
}

func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// drop the stale snapshot the reader has not picked up yet
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func cloneAll(in []domain.Delivery) []domain.Delivery {
	out := make([]domain.Delivery, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

// SetCallbackResult stores a picker result under key.
func (s *Store) SetCallbackResult(key string, v any) {
	s.board.Set(key, v)
}

// CallbackResult returns the picker result under key.
func (s *Store) CallbackResult(key string) (any, bool) {
	return s.board.Get(key)
}

// ClearCallbackResult drops the picker result under key.
func (s *Store) ClearCallbackResult(key string) {
	s.board.Clear(key)
}

// Callbacks exposes the board for typed access through callback.Put and
// callback.Take.
func (s *Store) Callbacks() *callback.Board {
	return s.board
}

// SetDraft holds d as the in-progress create draft.
func (s *Store) SetDraft(d domain.Delivery) {
	s.drafts.Set(d)
}

// Draft returns the held draft.
func (s *Store) Draft() (domain.Delivery, bool) {
	return s.drafts.Get()
}

// ClearDraft drops the held draft.
func (s *Store) ClearDraft() {
	s.drafts.Clear()
}

// IsValidationError reports whether err was caused by caller input rather
// than by the backend or the transport.
func IsValidationError(err error) bool {
	return errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrRequiredIDsNotFound)
}
