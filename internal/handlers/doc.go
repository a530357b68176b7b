// Package handlers implements the back-office HTTP API layer.
//
// Handlers delegate business logic to the services layer and focus on
// request parsing, response formatting, and HTTP semantics. All handlers are
// methods on a single Handler struct that holds the service dependencies and
// registers itself on a gin router group via RegisterRoutes.
//
// # API Endpoints
//
// Authentication (auth.go):
//
//	┌────────┬─────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint    │ Description                              │
//	├────────┼─────────────┼──────────────────────────────────────────┤
//	│ POST   │ /login      │ Exchange credentials for a bearer token  │
//	│ POST   │ /logout     │ No-op; tokens expire on their own        │
//	│ GET    │ /users/me   │ Authenticated user's profile             │
//	└────────┴─────────────┴──────────────────────────────────────────┘
//
// List views (stores.go, users.go):
//
//	┌──────────┬─────────────────┬────────────────────────────────────┐
//	│ Method   │ Endpoint        │ Description                        │
//	├──────────┼─────────────────┼────────────────────────────────────┤
//	│ GET/POST │ /stores/index   │ Paged store list                   │
//	│ GET/POST │ /stores/filters │ Store filters with saved values    │
//	│ GET      │ /filters/brands │ Brand filter options               │
//	│ GET/POST │ /users/index    │ Paged user list                    │
//	│ GET/POST │ /users/filters  │ User filters with saved values     │
//	└──────────┴─────────────────┴────────────────────────────────────┘
//
// The list endpoints accept the table request the frontend submits: filters
// as a JSON blob plus search, sortBy, sortDesc, page, rowsPerPage and
// initial. The response envelope carries the page of rows together with the
// column definitions and paging links the table renders from.
//
// Spreadsheet import and export (imports.go, stores.go):
//
//	┌────────┬─────────────────────────┬──────────────────────────────┐
//	│ Method │ Endpoint                │ Description                  │
//	├────────┼─────────────────────────┼──────────────────────────────┤
//	│ GET    │ /stores/temporary-folder│ New upload session folder    │
//	│ POST   │ /stores/import/upload   │ Multipart spreadsheet upload │
//	│ POST   │ /stores/import/process  │ Run the import               │
//	│ POST   │ /stores/export          │ Download the filtered list   │
//	└────────┴─────────────────────────┴──────────────────────────────┘
//
// An import that leaves failed rows answers with a workbook download of
// those rows plus an Errors column instead of the success alert.
//
// # Error Handling
//
// Handlers use a consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP status code mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Invalid request params       │
//	│ UnauthorizedError           │ 401    │ Bad credentials or token     │
//	│ Access denied               │ 403    │ View model rejects the user  │
//	│ EmptyResultError            │ 404    │ Export matched no rows       │
//	│ Missing upload              │ 412    │ Upload without files         │
//	│ Unreadable import file      │ 422    │ Import file cannot be parsed │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
package handlers
