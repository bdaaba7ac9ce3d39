package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/paging"
	"github.com/ncobase/example-api/utils/convert"
)

// ErrInvalidQuery is returned when a date filter cannot be parsed
var ErrInvalidQuery = errors.New("invalid query")

// NormalizeQuery turns a loosely typed QueryRequest into a Query.
//
// Page falls back to 1 when absent or not a positive integer. Size is read
// from Size, or from Limit when Size is absent, and falls back to 10 when
// missing, unparsable or not positive. There is no upper bound on Size.
func NormalizeQuery(req *structs.QueryRequest) (*structs.Query, error) {
	q := &structs.Query{Params: paging.Params{Page: paging.DefaultPage, Size: paging.DefaultSize}}
	if req == nil {
		return q, nil
	}

	if page, ok := positiveInt(req.Page); ok {
		q.Page = page
	}

	rawSize := req.Size
	if isAbsent(rawSize) {
		rawSize = req.Limit
	}
	if size, ok := positiveInt(rawSize); ok {
		q.Size = size
	}

	q.Status = req.Status
	q.Search = req.Search

	var err error
	if q.From, err = parseDate("from", req.From); err != nil {
		return nil, err
	}
	if q.To, err = parseDate("to", req.To); err != nil {
		return nil, err
	}

	return q, nil
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func positiveInt(v any) (int, bool) {
	if isAbsent(v) {
		return 0, false
	}
	n, err := convert.ToInt(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func parseDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := convert.ParseISOTime(*v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an ISO-8601 date", ErrInvalidQuery, field)
	}
	return &t, nil
}
