package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

var dialect = goqu.Dialect("postgres")

// listing describes which columns a listing may be searched and sorted on.
type listing struct {
	searchable  []string
	sortable    map[string]string
	defaultSort string
	defaultDesc bool
}

func (l listing) apply(ds *goqu.SelectDataset, q model.ListQuery) *goqu.SelectDataset {
	if term := strings.TrimSpace(q.Search); term != "" && len(l.searchable) > 0 {
		pattern := "%" + escapeLike(term) + "%"

		conditions := make([]exp.Expression, 0, len(l.searchable))
		for _, col := range l.searchable {
			conditions = append(conditions, goqu.I(col).ILike(pattern))
		}
		ds = ds.Where(goqu.Or(conditions...))
	}

	col, ok := l.sortable[q.Sort]
	if !ok {
		col = l.sortable[l.defaultSort]
	}

	desc := l.defaultDesc
	switch strings.ToLower(q.Order) {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}

	order := goqu.I(col).Asc()
	if desc {
		order = goqu.I(col).Desc()
	}

	return ds.Order(order)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
