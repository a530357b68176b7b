package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retailops/backoffice/pkg/listing"
	"github.com/retailops/backoffice/pkg/spreadsheet"
)

// formValue reads a parameter from the POST body, falling back to the query
// string so the list endpoints work over both methods.
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

// formArray reads a repeated parameter, accepting both the bare key and the
// bracketed form the frontend table component submits.
func formArray(c *gin.Context, key string) []string {
	if values := c.PostFormArray(key); len(values) > 0 {
		return values
	}
	if values := c.PostFormArray(key + "[]"); len(values) > 0 {
		return values
	}
	if values := c.QueryArray(key); len(values) > 0 {
		return values
	}
	return c.QueryArray(key + "[]")
}

// parseListRequest decodes the table request the frontend submits: a JSON
// blob of filter values plus flat search, sort and paging parameters.
func parseListRequest(c *gin.Context) listing.ListRequest {
	req := listing.ListRequest{
		Search:   formValue(c, "search"),
		SortBy:   formArray(c, "sortBy"),
		SortDesc: listing.ParseBoolList(formArray(c, "sortDesc")),
	}

	if raw := formValue(c, "filters"); raw != "" {
		var filters map[string]any
		if err := json.Unmarshal([]byte(raw), &filters); err == nil {
			req.Filters = filters
		}
	}

	if page, err := strconv.Atoi(formValue(c, "page")); err == nil {
		req.Page = page
	}
	if rows, err := strconv.Atoi(formValue(c, "rowsPerPage")); err == nil {
		req.RowsPerPage = rows
	}
	req.Initial, _ = strconv.ParseBool(formValue(c, "initial"))

	return req
}

// writeWorkbook streams a finished spreadsheet as a download. The exposed
// Content-Disposition header lets the frontend pick up the file name.
func writeWorkbook(c *gin.Context, workbook *spreadsheet.Writer, filename string) {
	c.Header("Access-Control-Expose-Headers", "Content-Disposition")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment;filename="+filename+".xlsx;")
	c.Header("Cache-Control", "maxage=1")
	c.Status(http.StatusOK)

	if err := workbook.WriteTo(c.Writer); err != nil {
		c.Abort()
	}
}
