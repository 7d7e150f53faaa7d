package catalog

import (
	"net/url"
	"strconv"

	"ProductAPI/pkg/kit"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

const msgBadPagination = "Page and limit must be positive integers."

func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	return q
}

// ParseListQuery reads category, search, page and limit. Present page and
// limit values must be positive integers.
func ParseListQuery(v url.Values) (ListQuery, error) {
	q := ListQuery{
		Category: v.Get("category"),
		Search:   v.Get("search"),
		Page:     defaultPage,
		Limit:    defaultLimit,
	}

	var err error
	if q.Page, err = positiveInt(v, "page", defaultPage); err != nil {
		return ListQuery{}, err
	}
	if q.Limit, err = positiveInt(v, "limit", defaultLimit); err != nil {
		return ListQuery{}, err
	}
	return q.normalize(), nil
}

func positiveInt(v url.Values, key string, def int) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, kit.Validation(msgBadPagination)
	}
	return n, nil
}
