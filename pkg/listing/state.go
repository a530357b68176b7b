package listing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"
)

// StateStore persists per-view string values scoped to the current user's
// session. Implementations return the empty string for absent keys.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// SessionState manages one view's persisted filter, search, sort and paging
// state. Keys follow a fixed layout under the view's bucket:
//
//	<bucket>                      filter-name -> value map (JSON)
//	<bucket>_encoded              base64(JSON) used for change detection
//	<bucket>_search_term_encoded  base64 of the raw search term
//	<bucket>_paging_information   {currentPage, maxResults} (JSON)
//	<bucket>_sort_by_asc          JSON array of sort fields
//	<bucket>_sort_by_desc         JSON array of sort directions
type SessionState struct {
	store  StateStore
	prefix string
}

func NewSessionState(store StateStore, prefix string) *SessionState {
	return &SessionState{store: store, prefix: prefix}
}

func (s *SessionState) bucket() string {
	if s.prefix == "" {
		return "filter_session_data"
	}
	return s.prefix + "_filter_session_data"
}

func bucketFor(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "_filter_session_data"
}

// SaveFilters persists the submitted filter values, grouped by each filter's
// session bucket (its own override or the view's). It reports whether every
// bucket's encoded form matched the previously stored one; a bucket with no
// prior state counts as unchanged.
func (s *SessionState) SaveFilters(ctx context.Context, filters []*Filter, data map[string]any) (bool, error) {
	perBucket := map[string]map[string]any{}
	for _, f := range filters {
		bucket := bucketFor(f.Session())
		if bucket == "" {
			bucket = s.bucket()
		}
		if perBucket[bucket] == nil {
			perBucket[bucket] = map[string]any{}
		}
		if value, ok := data[f.Name()]; ok {
			perBucket[bucket][f.Name()] = value
		} else {
			perBucket[bucket][f.Name()] = f.Values()
		}
	}

	same := true
	for bucket, values := range perBucket {
		raw, err := json.Marshal(values)
		if err != nil {
			return false, err
		}
		encoded := base64.StdEncoding.EncodeToString(raw)
		old, err := s.store.Get(ctx, bucket+"_encoded")
		if err != nil {
			return false, err
		}
		if err := s.store.Set(ctx, bucket, string(raw)); err != nil {
			return false, err
		}
		if err := s.store.Set(ctx, bucket+"_encoded", encoded); err != nil {
			return false, err
		}
		if old != "" && old != encoded {
			same = false
		}
	}
	return same, nil
}

// ApplyToFilters restores previously saved values onto the filter
// descriptors, honoring per-filter bucket overrides.
func (s *SessionState) ApplyToFilters(ctx context.Context, filters []*Filter) error {
	cache := map[string]map[string]any{}
	for _, f := range filters {
		bucket := bucketFor(f.Session())
		if bucket == "" {
			bucket = s.bucket()
		}
		values, ok := cache[bucket]
		if !ok {
			raw, err := s.store.Get(ctx, bucket)
			if err != nil {
				return err
			}
			values = map[string]any{}
			if raw != "" {
				if err := json.Unmarshal([]byte(raw), &values); err != nil {
					return err
				}
			}
			cache[bucket] = values
		}
		if value, ok := values[f.Name()]; ok && value != nil {
			f.SetValues(value)
		}
	}
	return nil
}

// FilterData returns the stored filter-name -> value map for the view's own
// bucket.
func (s *SessionState) FilterData(ctx context.Context) (map[string]any, error) {
	raw, err := s.store.Get(ctx, s.bucket())
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (s *SessionState) SearchTermEncoded(ctx context.Context) (string, error) {
	return s.store.Get(ctx, s.bucket()+"_search_term_encoded")
}

func (s *SessionState) SaveSearchTerm(ctx context.Context, term string) error {
	encoded := ""
	if term != "" {
		encoded = base64.StdEncoding.EncodeToString([]byte(term))
	}
	return s.store.Set(ctx, s.bucket()+"_search_term_encoded", encoded)
}

// PagingInformation is the per-view persisted paging state.
type PagingInformation struct {
	CurrentPage int `json:"currentPage"`
	MaxResults  int `json:"maxResults"`
}

func (s *SessionState) PagingInformation(ctx context.Context) (PagingInformation, error) {
	var info PagingInformation
	raw, err := s.store.Get(ctx, s.bucket()+"_paging_information")
	if err != nil || raw == "" {
		return info, err
	}
	err = json.Unmarshal([]byte(raw), &info)
	return info, err
}

func (s *SessionState) SavePagingInformation(ctx context.Context, currentPage, maxResults int) error {
	raw, err := json.Marshal(PagingInformation{CurrentPage: currentPage, MaxResults: maxResults})
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.bucket()+"_paging_information", string(raw))
}

func (s *SessionState) sortKey(desc bool) string {
	if desc {
		return s.bucket() + "_sort_by_desc"
	}
	return s.bucket() + "_sort_by_asc"
}

func (s *SessionState) SaveSortBy(ctx context.Context, fields []string) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.sortKey(false), string(raw))
}

func (s *SessionState) SortBy(ctx context.Context) ([]string, error) {
	raw, err := s.store.Get(ctx, s.sortKey(false))
	if err != nil || raw == "" {
		return nil, err
	}
	var fields []string
	err = json.Unmarshal([]byte(raw), &fields)
	return fields, err
}

func (s *SessionState) SaveSortDesc(ctx context.Context, desc []bool) error {
	raw, err := json.Marshal(desc)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.sortKey(true), string(raw))
}

func (s *SessionState) SortDesc(ctx context.Context) ([]bool, error) {
	raw, err := s.store.Get(ctx, s.sortKey(true))
	if err != nil || raw == "" {
		return nil, err
	}
	var desc []bool
	err = json.Unmarshal([]byte(raw), &desc)
	return desc, err
}

// MemoryStateStore is an in-memory StateStore used by tests and as the
// fallback when no persistent store is wired.
type MemoryStateStore struct {
	values map[string]string
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{values: make(map[string]string)}
}

func (m *MemoryStateStore) Get(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *MemoryStateStore) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

// ParseBoolList converts the stringly "true"/"false" sort flags requests
// submit into booleans.
func ParseBoolList(values []string) []bool {
	out := make([]bool, len(values))
	for i, v := range values {
		b, err := strconv.ParseBool(v)
		out[i] = err == nil && b
	}
	return out
}
