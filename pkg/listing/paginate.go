package listing

import (
	"context"
	"encoding/base64"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

// ListRequest is the raw list-view request state as submitted by the client.
type ListRequest struct {
	Filters     map[string]any
	Search      string
	SortBy      []string
	SortDesc    []bool
	Page        int
	RowsPerPage int
	// Initial marks the first request of a freshly-opened view; saved state
	// takes precedence over absent request fields.
	Initial bool
	// IgnoreSessionPage bypasses persisted paging state entirely.
	IgnoreSessionPage bool
}

// ViewState is the reconciled per-request state after merging the request
// with the persisted session buckets.
type ViewState struct {
	FilterData    map[string]any
	SearchTerm    string
	SortBy        []string
	SortDesc      []bool
	CurrentPage   int
	MaxResults    int
	FirstResult   int
	KeywordSearch bool
}

// Envelope is the paged-result response shape. The field names are a wire
// contract shared with the frontend tables.
type Envelope struct {
	Total           int              `json:"total"`
	PerPage         int              `json:"per_page"`
	CurrentPage     int              `json:"current_page"`
	LastPage        int              `json:"last_page"`
	NextPageURL     *string          `json:"next_page_url"`
	PrevPageURL     *string          `json:"prev_page_url"`
	From            int              `json:"from"`
	To              int              `json:"to"`
	Data            []map[string]any `json:"data"`
	RowsPerPageItem []int            `json:"rows_per_page_item"`
	Columns         []map[string]any `json:"columns"`
	SortBy          []string         `json:"sort_by"`
	SortByDesc      []bool           `json:"sort_by_desc"`
	Search          *string          `json:"search"`
}

// Engine executes the full list pipeline: state reconciliation, predicate
// and sort compilation, count, slice and row shaping.
type Engine struct {
	db              Querier
	defaultPageSize int
	pageSizeOptions []int
}

func NewEngine(db Querier) *Engine {
	return &Engine{
		db:              db,
		defaultPageSize: 10,
		pageSizeOptions: []int{10, 25, 50, 100},
	}
}

func (e *Engine) PageSizeOptions() []int { return e.pageSizeOptions }

// ResolveRequest merges the submitted request with the view's persisted
// session state and applies the page-reset rules: a changed filter set or a
// changed search term snaps back to page one, an unchanged initial request
// restores the previously used page and page size. A non-empty search term
// makes structured filters inert for the request.
func (e *Engine) ResolveRequest(ctx context.Context, vm ViewModel, state *SessionState, req ListRequest) (ViewState, error) {
	var vs ViewState
	filterData := req.Filters
	if filterData == nil {
		filterData = map[string]any{}
	}
	searchTerm := req.Search

	filtersTheSame, err := state.SaveFilters(ctx, vm.Filters(), filterData)
	if err != nil {
		return vs, err
	}

	savedSearch, err := state.SearchTermEncoded(ctx)
	if err != nil {
		return vs, err
	}
	currentPage := req.Page
	if currentPage < 1 {
		currentPage = 1
	}
	if searchTerm == "" && req.Initial {
		if savedSearch != "" {
			if decoded, decodeErr := base64.StdEncoding.DecodeString(savedSearch); decodeErr == nil {
				searchTerm = string(decoded)
			}
		}
	} else {
		encoded := ""
		if searchTerm != "" {
			encoded = base64.StdEncoding.EncodeToString([]byte(searchTerm))
		}
		if encoded != savedSearch {
			if err := state.SaveSearchTerm(ctx, searchTerm); err != nil {
				return vs, err
			}
			currentPage = 1
		}
	}

	keywordSearch := false
	if searchTerm != "" {
		// Keyword search and structured filters are mutually exclusive per
		// request.
		filterData = map[string]any{}
		keywordSearch = true
	}

	if len(req.SortBy) > 0 || !req.Initial {
		if err := state.SaveSortBy(ctx, req.SortBy); err != nil {
			return vs, err
		}
	}
	sortBy, err := state.SortBy(ctx)
	if err != nil {
		return vs, err
	}
	if len(req.SortDesc) > 0 || !req.Initial {
		if err := state.SaveSortDesc(ctx, req.SortDesc); err != nil {
			return vs, err
		}
	}
	sortDesc, err := state.SortDesc(ctx)
	if err != nil {
		return vs, err
	}

	maxResults := req.RowsPerPage
	if !containsInt(e.pageSizeOptions, maxResults) {
		maxResults = e.defaultPageSize
	}
	if !filtersTheSame {
		currentPage = 1
	}
	if !req.IgnoreSessionPage {
		if filtersTheSame && req.Initial && !keywordSearch {
			saved, err := state.PagingInformation(ctx)
			if err != nil {
				return vs, err
			}
			if saved.CurrentPage > 0 {
				currentPage = saved.CurrentPage
			}
			if saved.MaxResults > 0 {
				maxResults = saved.MaxResults
			}
		}
		if err := state.SavePagingInformation(ctx, currentPage, maxResults); err != nil {
			return vs, err
		}
	}

	vs = ViewState{
		FilterData:    filterData,
		SearchTerm:    searchTerm,
		SortBy:        sortBy,
		SortDesc:      sortDesc,
		CurrentPage:   currentPage,
		MaxResults:    maxResults,
		FirstResult:   maxResults * (currentPage - 1),
		KeywordSearch: keywordSearch,
	}
	return vs, nil
}

// BuildQuery applies the view's filters, search and ordering to the given
// base builder. Exports pass their own select list here to reuse the exact
// query the visible list was showing.
func (e *Engine) BuildQuery(b sq.SelectBuilder, vm ViewModel, vs ViewState, user CurrentUser) (sq.SelectBuilder, error) {
	compiler := NewCompiler(vm.Alias(), user, vm.SoftDelete(), vm.Relations())
	compiler.SetKeywordSearch(vs.KeywordSearch)

	b, err := compiler.ApplyFilters(b, vm.Filters(), vs.FilterData)
	if err != nil {
		return b, err
	}
	b, err = compiler.ApplySearch(b, vm.SearchFields(), vs.SearchTerm, SearchOr)
	if err != nil {
		return b, err
	}
	return compiler.ApplyOrderBy(b, vs.SortBy, vs.SortDesc, vm.Columns()), nil
}

// List runs the whole pipeline for one view and returns the response
// envelope. url is the list endpoint path used for the next/prev links.
func (e *Engine) List(ctx context.Context, vm ViewModel, state *SessionState, req ListRequest, user CurrentUser, url string) (*Envelope, error) {
	vs, err := e.ResolveRequest(ctx, vm, state, req)
	if err != nil {
		return nil, err
	}
	if vs.MaxResults <= 0 {
		return nil, srvErrors.NewMissingLimitError()
	}

	b, err := e.BuildQuery(vm.BaseQuery(), vm, vs, user)
	if err != nil {
		return nil, err
	}

	querySQL, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM (" + querySQL + ") AS paginator_count"
	if err := e.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, err
	}

	dataSQL, dataArgs, err := b.Limit(uint64(vs.MaxResults)).Offset(uint64(vs.FirstResult)).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := e.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := make([]map[string]any, 0, vs.MaxResults)
	for rows.Next() {
		row, err := vm.ScanRow(rows)
		if err != nil {
			return nil, err
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return e.buildEnvelope(vm, vs, total, data, url), nil
}

func (e *Engine) buildEnvelope(vm ViewModel, vs ViewState, total int, data []map[string]any, url string) *Envelope {
	lastPage := (total + vs.MaxResults - 1) / vs.MaxResults
	to := vs.FirstResult + vs.MaxResults
	if to > total {
		to = total
	}
	var next, prev *string
	// The next link is absent only on the last page itself; a page beyond
	// the last still advertises a next link.
	if vs.CurrentPage != lastPage {
		n := fmt.Sprintf("%s?page=%d", url, vs.CurrentPage+1)
		next = &n
	}
	if vs.CurrentPage > 1 {
		p := fmt.Sprintf("%s?page=%d", url, vs.CurrentPage-1)
		prev = &p
	}
	var search *string
	if vs.SearchTerm != "" {
		s := vs.SearchTerm
		search = &s
	}
	sortBy := vs.SortBy
	if sortBy == nil {
		sortBy = []string{}
	}
	sortDesc := vs.SortDesc
	if sortDesc == nil {
		sortDesc = []bool{}
	}
	return &Envelope{
		Total:           total,
		PerPage:         vs.MaxResults,
		CurrentPage:     vs.CurrentPage,
		LastPage:        lastPage,
		NextPageURL:     next,
		PrevPageURL:     prev,
		From:            vs.FirstResult + 1,
		To:              to,
		Data:            data,
		RowsPerPageItem: e.pageSizeOptions,
		Columns:         SerializeColumns(vm.Columns()),
		SortBy:          sortBy,
		SortByDesc:      sortDesc,
		Search:          search,
	}
}

func containsInt(values []int, v int) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
