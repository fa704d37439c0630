package utilities

import (
	"errors"
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Paginate normalizes page/limit and returns the row offset.
// Non-positive values fall back to page 1 and DefaultPageSize; limit is capped at MaxPageSize.
// A page too far out for the offset to fit in an int gets the largest offset
// that still leaves room for limit, which selects nothing.
func Paginate(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page-1 > (math.MaxInt-limit)/limit {
		return page, limit, math.MaxInt - limit
	}
	return page, limit, (page - 1) * limit
}

// QueryInt parses a query-string integer, returning 0 when absent or malformed.
func QueryInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// PathID parses a positive integer path parameter.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}
