package query

import (
	"strings"

	"github.com/alejandrodnm/betbook/internal/domain"
)

// Filters son predicados opcionales e independientes que se combinan con AND.
// El zero value no filtra nada.
type Filters struct {
	// Text busca un substring en la descripción, sin distinguir mayúsculas.
	Text string
	// Status exige igualdad de status.
	Status *domain.WagerStatus
	// DateFrom y DateTo son días YYYY-MM-DD inclusivos; DateTo cubre el día completo.
	DateFrom string
	DateTo   string
	// OddsMin y OddsMax acotan las odds americanas.
	OddsMin *int
	OddsMax *int
	// WagerMin y WagerMax acotan el stake.
	WagerMin *float64
	WagerMax *float64
}

// predicate es un filtro individual.
type predicate func(domain.Wager) bool

// Active devuelve cuántos filtros están activos (para feedback en la UI).
func (f Filters) Active() int {
	return len(f.predicates())
}

// Matches devuelve true si el wager pasa todos los filtros.
func (f Filters) Matches(w domain.Wager) bool {
	for _, p := range f.predicates() {
		if !p(w) {
			return false
		}
	}
	return true
}

// predicates construye la lista de filtros activos. Cada uno es independiente
// del resto, así que el orden de evaluación no cambia el resultado.
func (f Filters) predicates() []predicate {
	var ps []predicate

	if q := strings.ToLower(strings.TrimSpace(f.Text)); q != "" {
		ps = append(ps, func(w domain.Wager) bool {
			return strings.Contains(strings.ToLower(w.Description), q)
		})
	}
	if f.Status != nil {
		status := *f.Status
		ps = append(ps, func(w domain.Wager) bool { return w.Status == status })
	}
	if f.DateFrom != "" {
		from := domain.Day(f.DateFrom)
		ps = append(ps, func(w domain.Wager) bool { return domain.Day(w.Date) >= from })
	}
	if f.DateTo != "" {
		// comparar solo el día equivale a tomar DateTo como fin de día
		to := domain.Day(f.DateTo)
		ps = append(ps, func(w domain.Wager) bool { return domain.Day(w.Date) <= to })
	}
	if f.OddsMin != nil {
		lo := *f.OddsMin
		ps = append(ps, func(w domain.Wager) bool { return w.AmericanOdds >= lo })
	}
	if f.OddsMax != nil {
		hi := *f.OddsMax
		ps = append(ps, func(w domain.Wager) bool { return w.AmericanOdds <= hi })
	}
	if f.WagerMin != nil {
		lo := *f.WagerMin
		ps = append(ps, func(w domain.Wager) bool { return w.StakeAmount >= lo })
	}
	if f.WagerMax != nil {
		hi := *f.WagerMax
		ps = append(ps, func(w domain.Wager) bool { return w.StakeAmount <= hi })
	}
	return ps
}

// IntPtr y StatusPtr son helpers para construir filtros.
func IntPtr(v int) *int { return &v }

func StatusPtr(s domain.WagerStatus) *domain.WagerStatus { return &s }
