package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/wichananm65/entries-backend/internal/domain/entity"
)

// sortColumns whitelists the columns a list request may order by.
var sortColumns = map[entity.SortField]string{
	entity.SortByName:   "name",
	entity.SortByEmail:  "email",
	entity.SortByPhone:  "phone",
	entity.SortByPlace:  "place",
	entity.SortByGender: "gender",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// filterConditions translates f into SQL predicates joined with AND.
func filterConditions(f entity.Filter) sq.And {
	conds := sq.And{}

	text := []struct {
		column string
		value  string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"place", f.Place},
	}
	for _, t := range text {
		if t.value != "" {
			conds = append(conds, sq.ILike{t.column: containsPattern(t.value)})
		}
	}

	if f.Gender != "" {
		conds = append(conds, sq.Eq{"gender": string(f.Gender)})
	}
	if len(f.Hobbies) > 0 {
		// && is array overlap: match-any semantics.
		conds = append(conds, sq.Expr("hobbies && ?::text[]", pq.Array(f.Hobbies)))
	}

	return conds
}

func applyFilter(b sq.SelectBuilder, f entity.Filter) sq.SelectBuilder {
	if conds := filterConditions(f); len(conds) > 0 {
		return b.Where(conds)
	}
	return b
}

// orderBy returns the ORDER BY clauses for s; id breaks ties so pages are stable.
func orderBy(s entity.Sort) []string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = sortColumns[entity.SortByName]
	}
	dir := "ASC"
	if s.Order == entity.SortDesc {
		dir = "DESC"
	}
	return []string{column + " " + dir, "id ASC"}
}
