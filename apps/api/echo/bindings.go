package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

var (
	orderingParam = "ordering"
	indexParam    = "index"
)

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// moduleIndex reads the `:index` path param.
func moduleIndex(ctx echo.Context) (int, error) {
	idx, err := strconv.Atoi(ctx.Param(indexParam))
	if err != nil {
		return 0, errHttpNotFound
	}
	return idx, nil
}
