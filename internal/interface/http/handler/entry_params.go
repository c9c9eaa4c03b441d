package handler

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

// Query parameter names understood by the list endpoint.
const (
	paramPage      = "page"
	paramLimit     = "limit"
	paramSortField = "sortField"
	paramSortOrder = "sortOrder"
	paramHobbies   = "hobbies"
)

const malformedHobbiesMessage = "Hobbies filter must be a list of strings"

// parseListQuery reads filter, sort and paging parameters. Numeric values
// that do not parse fall back to defaults later in Query.Normalize.
// A malformed hobbies value drops the hobby filter unless strict is set,
// in which case a validation error is returned.
func parseListQuery(c *fiber.Ctx, strict bool) (entity.Query, error) {
	q := entity.Query{
		Filter: entity.Filter{
			Name:   c.Query("name"),
			Email:  c.Query("email"),
			Phone:  c.Query("phone"),
			Place:  c.Query("place"),
			Gender: entity.Gender(c.Query("gender")),
		},
		Sort: entity.Sort{
			Field: entity.SortField(c.Query(paramSortField)),
			Order: entity.SortOrder(strings.ToLower(c.Query(paramSortOrder))),
		},
		Page:  c.QueryInt(paramPage, 0),
		Limit: c.QueryInt(paramLimit, 0),
	}

	args := c.Context().QueryArgs()
	var raw []string
	for _, key := range []string{paramHobbies, paramHobbies + "[]"} {
		for _, v := range args.PeekMulti(key) {
			raw = append(raw, string(v))
		}
	}

	hobbies, ok := parseHobbies(raw)
	switch {
	case ok:
		q.Filter.Hobbies = hobbies
	case strict:
		return entity.Query{}, entity.NewValidationError(paramHobbies, malformedHobbiesMessage)
	}

	return q, nil
}

// parseHobbies accepts repeated plain values and JSON array strings.
// It reports false when a value looks like a JSON array but is not one.
func parseHobbies(values []string) ([]string, bool) {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, "[") {
			if v != "" {
				out = append(out, v)
			}
			continue
		}

		var list []string
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			return nil, false
		}
		out = append(out, list...)
	}
	return out, true
}
