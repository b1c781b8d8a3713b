package mapping

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ehr/console/internal/ehrapi"
)

// ListAPI is the slice of the remote API the list controller needs.
type ListAPI interface {
	ListMappings(ctx context.Context) ([]ehrapi.MappingRecord, error)
	DeleteMapping(ctx context.Context, id string) error
}

// ListController caches the remote mapping list for one session and drives
// the delete-confirmation lifecycle. The cache is replaced wholesale on every
// refresh; the remote store is the only source of truth.
type ListController struct {
	mu     sync.Mutex
	api    ListAPI
	logger zerolog.Logger

	records []ehrapi.MappingRecord
	lastErr string
	pending *ehrapi.MappingRecord
}

func NewListController(api ListAPI, logger zerolog.Logger) *ListController {
	return &ListController{api: api, logger: logger}
}

// Refresh fetches the full current record set and replaces the cache. On
// fetch failure the last good list is kept and a non-blocking error message
// key is recorded for the view to render.
func (l *ListController) Refresh(ctx context.Context) {
	records, err := l.api.ListMappings(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.logger.Error().Err(err).Msg("mapping list refresh failed")
		l.lastErr = "errorLoadingMappings"
		return
	}
	l.records = records
	l.lastErr = ""
}

// Records returns the cached list.
func (l *ListController) Records() []ehrapi.MappingRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ehrapi.MappingRecord, len(l.records))
	copy(out, l.records)
	return out
}

// LastError returns the message key of the most recent failed operation, or
// "" when the cache reflects the last known server state cleanly.
func (l *ListController) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// RequestDelete opens the confirmation state for a record. No API call yet.
func (l *ListController) RequestDelete(record ehrapi.MappingRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = &record
}

// PendingDelete returns the record awaiting confirmation, if any.
func (l *ListController) PendingDelete() (ehrapi.MappingRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		return ehrapi.MappingRecord{}, false
	}
	return *l.pending, true
}

// ConfirmDelete deletes the pending record. The list is refreshed only after
// a confirmed success; a failed delete keeps the cache, clears the
// confirmation state, and surfaces the failure through LastError.
func (l *ListController) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	if l.pending == nil {
		l.mu.Unlock()
		return nil
	}
	id := l.pending.ID
	l.pending = nil
	l.mu.Unlock()

	if err := l.api.DeleteMapping(ctx, id); err != nil {
		l.logger.Error().Err(err).Str("id", id).Msg("mapping delete failed")
		l.mu.Lock()
		l.lastErr = "errorDeletingMapping"
		l.mu.Unlock()
		return err
	}

	l.Refresh(ctx)
	return nil
}

// CancelDelete clears the confirmation state without any API call.
func (l *ListController) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = nil
}
