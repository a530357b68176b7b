// Package errors provides custom error types for the backoffice service.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// Configuration mistakes (FilterConfigurationError, InvalidSearchModeError,
// EmptySearchFieldGroupError, MissingLimitError, ColumnMappingError) abort the
// request and surface as HTTP 500: they mean a view model or mapping table is
// wired wrong, not that the user sent bad input. ResourceNotFoundError maps to
// 404, UnauthorizedError to 401/403 and EmptyResultError to 404 on export.
//
// All Is* helpers follow the same pattern:
//
//	func IsMissingLimitError(err error) bool {
//	    var e *MissingLimitError
//	    return errors.As(err, &e)
//	}
//
// which allows checking wrapped errors:
//
//	wrapped := fmt.Errorf("paginate: %w", errors.NewMissingLimitError())
//	errors.IsMissingLimitError(wrapped) // returns true
package errors
