package gdb

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/guarzo/gdbapi/common"
	"github.com/guarzo/gdbapi/common/model"
)

// markCodePattern: exactly four word characters, case-insensitive.
var markCodePattern = regexp.MustCompile(`^\w{4}$`)

// Mark is a decoded GDB record. Data holds whatever JSON the service
// returned (object, array or scalar); Raw is the payload text it was
// decoded from.
type Mark struct {
	Code string
	Raw  []byte
	Data any
}

// GdbService is the high-level interface for mark lookups.
type GdbService interface {
	// GetMark looks up a mark, going memory cache, then disk cache, then
	// network. Results are memoized per code for the service's lifetime.
	GetMark(ctx context.Context, code string) (*Mark, error)

	// GetMarkUncached is GetMark without the in-process memoization: it
	// neither reads nor writes the memory cache, but still uses the disk
	// cache and the network.
	GetMarkUncached(ctx context.Context, code string) (*Mark, error)

	// GetMarkJSON looks up a mark and decodes its payload into entity.
	GetMarkJSON(ctx context.Context, code string, entity any) error

	// GetMarkSummary looks up a mark as a typed summary view.
	GetMarkSummary(ctx context.Context, code string) (*model.MarkSummary, error)
}

// gdbService is the concrete implementation that uses GdbClient and a
// CacheRepository. A service value is safe for concurrent use.
type gdbService struct {
	client GdbClient
	store  common.CacheRepository

	mu    sync.RWMutex
	marks map[string]*Mark
}

// NewGdbService constructs a GdbService. Pass common.NopCache{} (or nil) as
// store to run without a disk cache.
func NewGdbService(client GdbClient, store common.CacheRepository) GdbService {
	if store == nil {
		store = common.NopCache{}
	}
	return &gdbService{
		client: client,
		store:  store,
		marks:  make(map[string]*Mark),
	}
}

func (s *gdbService) GetMark(ctx context.Context, code string) (*Mark, error) {
	return s.getMark(ctx, code, true)
}

func (s *gdbService) GetMarkUncached(ctx context.Context, code string) (*Mark, error) {
	return s.getMark(ctx, code, false)
}

func (s *gdbService) GetMarkJSON(ctx context.Context, code string, entity any) error {
	mark, err := s.getMark(ctx, code, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(mark.Raw, entity); err != nil {
		return &common.DecodeError{Code: mark.Code, Err: err}
	}
	return nil
}

func (s *gdbService) GetMarkSummary(ctx context.Context, code string) (*model.MarkSummary, error) {
	var summary model.MarkSummary
	if err := s.GetMarkJSON(ctx, code, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// getMark runs the lookup pipeline. Validation happens before any I/O.
func (s *gdbService) getMark(ctx context.Context, code string, useMemCache bool) (*Mark, error) {
	if !markCodePattern.MatchString(code) {
		return nil, &common.ValidationError{Code: code}
	}
	code = strings.ToUpper(code)

	if useMemCache {
		s.mu.RLock()
		mark, ok := s.marks[code]
		s.mu.RUnlock()
		if ok {
			return mark, nil
		}
	}

	raw, result := s.store.Get(ctx, code)
	if result != common.CacheHit {
		fetched, err := s.client.FetchMark(ctx, code)
		if err != nil {
			return nil, err
		}
		raw = fetched
		s.store.Set(ctx, code, raw)
	}

	// The service reports an unknown code as the literal body "null".
	if string(raw) == "null" {
		return nil, &common.NotFoundError{Code: code}
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &common.DecodeError{Code: code, Err: err}
	}

	mark := &Mark{Code: code, Raw: raw, Data: data}
	if useMemCache {
		s.mu.Lock()
		s.marks[code] = mark
		s.mu.Unlock()
	}
	return mark, nil
}
