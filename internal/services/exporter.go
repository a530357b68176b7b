package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/mapping"
	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/store"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
	"github.com/retailops/backoffice/pkg/listing"
	"github.com/retailops/backoffice/pkg/spreadsheet"
)

// Exporter streams filtered store lists into spreadsheets. The export
// reuses the list view's compiled filters, search and ordering, so the
// file contains exactly what the user was looking at, without pagination.
type Exporter struct {
	db     listing.Querier
	engine *listing.Engine
	stores *store.StoresStore
	table  *mapping.Table[models.Store]
	logger *zap.SugaredLogger
}

func NewExporter(db listing.Querier, engine *listing.Engine, stores *store.StoresStore, brands mapping.BrandDiscoverer) (*Exporter, error) {
	table, err := mapping.StoreTable(brands)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		db:     db,
		engine: engine,
		stores: stores,
		table:  table,
		logger: zap.S().Named("services.exporter"),
	}, nil
}

// ExportStores builds the export workbook for the stores view. An export
// of zero rows is an error so the user never downloads an empty file.
func (e *Exporter) ExportStores(ctx context.Context, vm listing.ViewModel, state *listing.SessionState, req listing.ListRequest, user *models.User) (*spreadsheet.Writer, error) {
	vs, err := e.engine.ResolveRequest(ctx, vm, state, req)
	if err != nil {
		return nil, err
	}

	q, err := e.engine.BuildQuery(e.stores.ExportQuery(), vm, vs, user)
	if err != nil {
		return nil, err
	}

	querySQL, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var total int
	countSQL := "SELECT COUNT(*) FROM (" + querySQL + ") AS export_count"
	if err := e.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, srvErrors.NewEmptyResultError()
	}

	if limit := vm.ExportLimit(); limit > 0 {
		q = q.Limit(uint64(limit))
		querySQL, args, err = q.ToSql()
		if err != nil {
			return nil, err
		}
	}

	writer, err := spreadsheet.NewWriter("Stores", e.table.Headers(), spreadsheet.DocumentProperties{
		Title:   "Store export",
		Creator: user.FullName(),
	})
	if err != nil {
		return nil, err
	}

	rows, err := e.db.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exported := 0
	for rows.Next() {
		entity, err := store.ScanStoreRow(rows)
		if err != nil {
			return nil, err
		}
		if err := writer.AppendStrings(e.table.Export(entity)); err != nil {
			return nil, err
		}
		exported++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	e.logger.Infow("export finished", "rows", exported)
	return writer, nil
}
