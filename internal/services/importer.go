package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/mapping"
	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/store"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
	"github.com/retailops/backoffice/pkg/spreadsheet"
)

// Stores are flushed in batches of this size. Each batch commits on its
// own, so rows already flushed stay imported even when a later row fails.
const importBatchSize = 100

// ImportResult summarizes one spreadsheet import. When any row failed,
// ErrorReport holds a workbook of the failed rows with an extra Errors
// column describing what was wrong with each.
type ImportResult struct {
	Imported    int
	Failed      int
	ErrorReport *spreadsheet.Writer
}

type failedRow struct {
	cells  map[string]string
	errors string
}

// Importer ingests store spreadsheets. Rows are matched against existing
// stores by API ID; unmatched rows create new stores. Rows that fail a
// column setter or entity validation are skipped and reported, never saved.
type Importer struct {
	stores   *store.StoresStore
	table    *mapping.Table[models.Store]
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewImporter(stores *store.StoresStore, brands mapping.BrandDiscoverer) (*Importer, error) {
	table, err := mapping.StoreTable(brands)
	if err != nil {
		return nil, err
	}
	return &Importer{
		stores:   stores,
		table:    table,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   zap.S().Named("services.importer"),
	}, nil
}

// ImportStores reads an uploaded workbook and applies it to the store
// table. The user is only used to stamp the error report metadata.
func (i *Importer) ImportStores(ctx context.Context, user *models.User, path string) (*ImportResult, error) {
	headers, rows, err := spreadsheet.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	identifier := i.table.Identifier().Name
	result := &ImportResult{}
	var pending []*models.Store
	var failures []failedRow

	for _, row := range rows {
		entity, err := i.resolveStore(ctx, row.Get(identifier))
		if err != nil {
			return nil, err
		}

		if errs := i.table.Apply(ctx, entity, row.Cells); len(errs) > 0 {
			failures = append(failures, failedRow{cells: row.Cells, errors: i.describeSetterErrors(errs)})
			continue
		}
		if err := i.validate.Struct(entity); err != nil {
			failures = append(failures, failedRow{cells: row.Cells, errors: describeViolations(err)})
			continue
		}

		pending = append(pending, entity)
		result.Imported++

		if len(pending) == importBatchSize {
			if err := i.stores.SaveBatch(ctx, pending); err != nil {
				return nil, fmt.Errorf("saving import batch: %w", err)
			}
			pending = nil
		}
	}

	if err := i.stores.SaveBatch(ctx, pending); err != nil {
		return nil, fmt.Errorf("saving import batch: %w", err)
	}

	result.Failed = len(failures)
	if len(failures) > 0 {
		report, err := i.buildErrorReport(user, headers, failures)
		if err != nil {
			return nil, err
		}
		result.ErrorReport = report
	}

	i.logger.Infow("import finished", "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

// resolveStore finds the row's existing store or starts a new one. The
// fresh load also means a failing row never leaves stale changes behind.
func (i *Importer) resolveStore(ctx context.Context, apiID string) (*models.Store, error) {
	existing, err := i.stores.FindByAPIID(ctx, apiID)
	if err == nil {
		return existing, nil
	}
	if srvErrors.IsResourceNotFoundError(err) {
		return &models.Store{APIID: apiID}, nil
	}
	return nil, err
}

func (i *Importer) describeSetterErrors(failures map[string]error) string {
	parts := make([]string, 0, len(failures))
	for _, header := range i.table.Headers() {
		if err, ok := failures[header]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", header, err.Error()))
		}
	}
	return strings.Join(parts, "; ")
}

func (i *Importer) buildErrorReport(user *models.User, headers []string, failures []failedRow) (*spreadsheet.Writer, error) {
	columns := make([]string, 0, len(headers)+1)
	for _, h := range headers {
		if h != "" {
			columns = append(columns, h)
		}
	}
	columns = append(columns, "Errors")

	report, err := spreadsheet.NewWriter("Stores", columns, spreadsheet.DocumentProperties{
		Title:   "Store import errors",
		Creator: user.FullName(),
	})
	if err != nil {
		return nil, err
	}

	for _, f := range failures {
		row := make([]string, 0, len(columns))
		for _, c := range columns[:len(columns)-1] {
			row = append(row, f.cells[c])
		}
		row = append(row, f.errors)
		if err := report.AppendStrings(row); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func describeViolations(err error) string {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err.Error()
	}
	parts := make([]string, 0, len(violations))
	for _, violation := range violations {
		parts = append(parts, fmt.Sprintf("%s failed on the '%s' rule", violation.Field(), violation.Tag()))
	}
	return strings.Join(parts, "; ")
}
