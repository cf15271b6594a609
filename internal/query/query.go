package query

import (
	"fmt"
	"sort"

	"github.com/alejandrodnm/betbook/internal/domain"
)

// SortOrder es uno de los cuatro órdenes deterministas soportados.
type SortOrder string

const (
	SortDateDesc SortOrder = "date-desc"
	SortDateAsc  SortOrder = "date-asc"
	SortStatus   SortOrder = "status"
	SortWager    SortOrder = "wager"
)

// ParseSortOrder valida un orden recibido del usuario. Vacío = date-desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case "":
		return SortDateDesc, nil
	case SortDateDesc, SortDateAsc, SortStatus, SortWager:
		return o, nil
	default:
		return "", fmt.Errorf("query.ParseSortOrder: unknown order %q", s)
	}
}

// Result es la salida de Run con los contadores para la UI.
type Result struct {
	Wagers        []domain.Wager
	TotalCount    int
	FilteredCount int
	ActiveFilters int
}

// Run filtra y ordena sin mutar el slice de entrada.
func Run(wagers []domain.Wager, f Filters, order SortOrder) Result {
	out := make([]domain.Wager, 0, len(wagers))
	for _, w := range wagers {
		if f.Matches(w) {
			out = append(out, w)
		}
	}

	Sort(out, order)
	return Result{
		Wagers:        out,
		TotalCount:    len(wagers),
		FilteredCount: len(out),
		ActiveFilters: f.Active(),
	}
}

// Sort ordena in-place y de forma estable. Las fechas se comparan como strings
// YYYY-MM-DD, que ordenan igual que cronológicamente sin pasar por time.Time.
func Sort(wagers []domain.Wager, order SortOrder) {
	var less func(a, b domain.Wager) bool
	switch order {
	case SortDateAsc:
		less = func(a, b domain.Wager) bool { return a.Date < b.Date }
	case SortStatus:
		less = func(a, b domain.Wager) bool {
			if ra, rb := a.Status.Rank(), b.Status.Rank(); ra != rb {
				return ra < rb
			}
			return a.Date > b.Date
		}
	case SortWager:
		less = func(a, b domain.Wager) bool {
			if a.StakeAmount != b.StakeAmount {
				return a.StakeAmount > b.StakeAmount
			}
			return a.Date > b.Date
		}
	default:
		less = func(a, b domain.Wager) bool { return a.Date > b.Date }
	}
	sort.SliceStable(wagers, func(i, j int) bool { return less(wagers[i], wagers[j]) })
}
