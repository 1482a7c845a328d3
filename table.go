package investmap

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AssetService is the remote store of asset records.
type AssetService interface {
	PriceRefresher
	Assets(ctx context.Context) ([]AssetRecord, error)
	AddAsset(ctx context.Context, in AssetInput) (AssetRecord, error)
	SellAsset(ctx context.Context, in AssetInput) (AssetRecord, error)
	UpdateAsset(ctx context.Context, id ID, in AssetInput) (AssetRecord, error)
	DeleteAsset(ctx context.Context, id ID) error
}

// Table owns the in-memory list of records and the refresh selection of one
// user session.
//
// The list is never patched: every change is sent to the service and followed
// by a full reload. A failed change leaves the list and the selection as they
// were. Reloads may overlap; a response older than the one already applied
// is dropped.
type Table struct {
	service AssetService
	logger  zerolog.Logger

	// life is cancelled by Close, aborting every request in flight.
	life  context.Context
	close context.CancelFunc

	mu        sync.Mutex
	records   []AssetRecord
	selection Selection
	issued    uint64 // sequence number of the latest reload sent
	applied   uint64 // sequence number of the reload the records come from
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithLogger sets the logger errors are reported to.
func WithLogger(logger zerolog.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// NewTable returns an empty table backed by service. Call Load to fill it.
func NewTable(service AssetService, opts ...TableOption) *Table {
	t := &Table{service: service, logger: zerolog.Nop()}
	t.life, t.close = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close cancels every pending request. The table must not be used afterwards.
func (t *Table) Close() { t.close() }

// scope derives a context cancelled by either ctx or Close.
func (t *Table) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(t.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Records returns a copy of the current list.
func (t *Table) Records() []AssetRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.records)
}

// Summary computes the derived values of the current list.
func (t *Table) Summary() *Summary { return NewSummary(t.Records()) }

// Selection returns a copy of the current selection.
func (t *Table) Selection() *Selection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection.Clone()
}

// Load replaces the list with a fresh copy from the service.
func (t *Table) Load(ctx context.Context) error {
	ctx, cancel := t.scope(ctx)
	defer cancel()

	t.mu.Lock()
	t.issued++
	seq := t.issued
	t.mu.Unlock()

	records, err := t.service.Assets(ctx)
	if err != nil {
		t.logger.Error().Err(err).Msg("fetching assets")
		return fmt.Errorf("fetching assets: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq < t.applied {
		t.logger.Debug().Uint64("seq", seq).Uint64("applied", t.applied).Msg("dropping stale asset list")
		return nil
	}
	t.records, t.applied = records, seq
	// ids that disappeared can no longer be refreshed
	t.selection.Retain(func(id ID) bool {
		_, ok := Find(t.records, id)
		return ok
	})
	return nil
}

// Toggle flips the selection of the record id. Unknown ids are refused with
// ErrNotFound, a ninth id with ErrLimitExceeded.
func (t *Table) Toggle(id ID) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := Find(t.records, id); !ok {
		return false, fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	return t.selection.Toggle(id)
}

// ClearSelection empties the selection.
func (t *Table) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Clear()
}

// RefreshSelected refreshes the current price of the selected records and
// reloads the list. See RefreshSelected for the empty selection case.
func (t *Table) RefreshSelected(ctx context.Context) (bool, error) {
	ctx, cancel := t.scope(ctx)
	defer cancel()

	t.mu.Lock()
	records := slices.Clone(t.records)
	sel := t.selection.Clone()
	t.mu.Unlock()

	issued, err := RefreshSelected(ctx, records, sel, t.service, func(context.Context) error {
		t.mu.Lock()
		t.selection.Clear()
		t.mu.Unlock()
		return t.Load(ctx)
	})
	if err != nil && !issued {
		t.logger.Error().Err(err).Msg("refreshing selected assets")
	}
	return issued, err
}

// Add records a purchase and reloads the list.
func (t *Table) Add(ctx context.Context, in AssetInput) error {
	return t.mutate(ctx, "adding asset", in, func(ctx context.Context) error {
		_, err := t.service.AddAsset(ctx, in)
		return err
	})
}

// Sell records a sale and reloads the list.
func (t *Table) Sell(ctx context.Context, in AssetInput) error {
	return t.mutate(ctx, "selling asset", in, func(ctx context.Context) error {
		_, err := t.service.SellAsset(ctx, in)
		return err
	})
}

// Update edits the record id and reloads the list.
func (t *Table) Update(ctx context.Context, id ID, in AssetInput) error {
	return t.mutate(ctx, fmt.Sprintf("updating asset %d", id), in, func(ctx context.Context) error {
		_, err := t.service.UpdateAsset(ctx, id, in)
		return err
	})
}

// Delete removes the record id and reloads the list.
func (t *Table) Delete(ctx context.Context, id ID) error {
	return t.mutate(ctx, fmt.Sprintf("deleting asset %d", id), nil, func(ctx context.Context) error {
		return t.service.DeleteAsset(ctx, id)
	})
}

// mutate runs change then exactly one reload. in, when set, is validated
// first so that invalid input never reaches the service.
func (t *Table) mutate(ctx context.Context, what string, in interface{ Validate() error }, change func(context.Context) error) error {
	if in != nil {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
	}
	ctx, cancel := t.scope(ctx)
	defer cancel()
	if err := change(ctx); err != nil {
		t.logger.Error().Err(err).Msg(what)
		return fmt.Errorf("%s: %w", what, err)
	}
	return t.Load(ctx)
}

// DefaultWatchInterval is the reload interval of Watch when none is given.
const DefaultWatchInterval = 3 * time.Minute

// Watch reloads the list every interval until ctx is done or the table is
// closed. A non-positive interval means DefaultWatchInterval. Failed reloads
// are logged and retried at the next tick. notify, if set, is called after
// every successful reload.
func (t *Table) Watch(ctx context.Context, interval time.Duration, notify func(*Summary)) error {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ctx, cancel := t.scope(ctx)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := t.Load(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				t.logger.Warn().Err(err).Dur("interval", interval).Msg("periodic reload failed")
				continue
			}
			if notify != nil {
				notify(t.Summary())
			}
		}
	}
}
