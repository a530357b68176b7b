package errors

import (
	"errors"
	"fmt"
)

// FilterConfigurationError indicates a filter was declared without an
// expression. Filters with nothing to contribute must use ExpressionNone
// explicitly; an unset expression is a programming mistake.
type FilterConfigurationError struct {
	FilterName string
}

func NewFilterConfigurationError(filterName string) *FilterConfigurationError {
	return &FilterConfigurationError{FilterName: filterName}
}

func (e *FilterConfigurationError) Error() string {
	return fmt.Sprintf("filter %q has no expression configured", e.FilterName)
}

// IsFilterConfigurationError checks if the error is a FilterConfigurationError.
func IsFilterConfigurationError(err error) bool {
	var e *FilterConfigurationError
	return errors.As(err, &e)
}

// InvalidSearchModeError indicates an unsupported search combination mode.
type InvalidSearchModeError struct {
	Mode string
}

func NewInvalidSearchModeError(mode string) *InvalidSearchModeError {
	return &InvalidSearchModeError{Mode: mode}
}

func (e *InvalidSearchModeError) Error() string {
	return fmt.Sprintf("invalid search mode provided: %s", e.Mode)
}

func IsInvalidSearchModeError(err error) bool {
	var e *InvalidSearchModeError
	return errors.As(err, &e)
}

// EmptySearchFieldGroupError indicates a grouped search field spec with no
// member fields.
type EmptySearchFieldGroupError struct{}

func NewEmptySearchFieldGroupError() *EmptySearchFieldGroupError {
	return &EmptySearchFieldGroupError{}
}

func (e *EmptySearchFieldGroupError) Error() string {
	return "grouped search fields require at least one entry"
}

func IsEmptySearchFieldGroupError(err error) bool {
	var e *EmptySearchFieldGroupError
	return errors.As(err, &e)
}

// MissingLimitError indicates a paginated query was executed without an
// explicit row limit.
type MissingLimitError struct{}

func NewMissingLimitError() *MissingLimitError {
	return &MissingLimitError{}
}

func (e *MissingLimitError) Error() string {
	return "query is missing a limit"
}

func IsMissingLimitError(err error) bool {
	var e *MissingLimitError
	return errors.As(err, &e)
}

// ColumnMappingError indicates an import/export column mapping entry is
// incomplete, typically a missing getter or setter at registration time.
type ColumnMappingError struct {
	ColumnName string
	Reason     string
}

func NewColumnMappingError(columnName, reason string) *ColumnMappingError {
	return &ColumnMappingError{ColumnName: columnName, Reason: reason}
}

func (e *ColumnMappingError) Error() string {
	return fmt.Sprintf("column mapping %q: %s", e.ColumnName, e.Reason)
}

func IsColumnMappingError(err error) bool {
	var e *ColumnMappingError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
}

func NewResourceNotFoundError(kind string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// UnauthorizedError indicates the caller is not authenticated or lacks the
// required role.
type UnauthorizedError struct{}

func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{}
}

func (e *UnauthorizedError) Error() string {
	return "not authorized"
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

// EmptyResultError indicates an export was requested for a query matching no
// rows.
type EmptyResultError struct{}

func NewEmptyResultError() *EmptyResultError {
	return &EmptyResultError{}
}

func (e *EmptyResultError) Error() string {
	return "no rows matched the current filters"
}

func IsEmptyResultError(err error) bool {
	var e *EmptyResultError
	return errors.As(err, &e)
}
