package api

import (
	"net/url"
	"strconv"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/store"
	"github.com/dmorales-dev/tienda-api/internal/validation"
)

// Listing defaults applied when the caller omits the query parameters.
const (
	defaultPage  = 1
	defaultLimit = 20
)

// listQuery carries the pagination parameters through schema validation so
// bound violations report the same {field, message, code} shape as body
// validation does.
type listQuery struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=100"`
}

// parsePage extracts and validates pagination from the query string.
// Omitted parameters take the defaults; non-numeric or out-of-bound values
// are a validation failure, never a silent clamp.
func parsePage(query url.Values) (store.Page, error) {
	q := listQuery{Page: defaultPage, Limit: defaultLimit}
	var fields []apperr.FieldError

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: "page", Message: "debe ser un número", Code: "number"})
		} else {
			q.Page = n
		}
	}
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: "limit", Message: "debe ser un número", Code: "number"})
		} else {
			q.Limit = n
		}
	}

	fields = append(fields, validation.Check(q)...)
	if len(fields) > 0 {
		return store.Page{}, apperr.Validation(fields)
	}

	return store.Page{Number: q.Page, Size: q.Limit}, nil
}
