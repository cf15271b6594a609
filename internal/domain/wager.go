package domain

import "strings"

// WagerStatus es el estado de liquidación de una apuesta.
type WagerStatus string

const (
	StatusPending WagerStatus = "pending"
	StatusWon     WagerStatus = "won"
	StatusLost    WagerStatus = "lost"
	StatusPush    WagerStatus = "push"
)

// ParseWagerStatus normaliza un status recibido del usuario o de la DB.
func ParseWagerStatus(s string) (WagerStatus, bool) {
	switch st := WagerStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusWon, StatusLost, StatusPush:
		return st, true
	default:
		return "", false
	}
}

// IsCompleted devuelve true para apuestas ya liquidadas (won, lost o push).
func (s WagerStatus) IsCompleted() bool {
	return s == StatusWon || s == StatusLost || s == StatusPush
}

// Rank es la prioridad de ordenación por status: pending < won < lost < push.
func (s WagerStatus) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusWon:
		return 1
	case StatusLost:
		return 2
	case StatusPush:
		return 3
	default:
		return 4
	}
}

// Notebook agrupa apuestas bajo un nombre elegido por el usuario.
type Notebook struct {
	ID       string
	Name     string
	UnitSize float64 // 0 = usar el unit size global
	Position int     // orden manual en la lista de notebooks
}

// Wager es un registro inmutable de una apuesta.
//
// ProfitAmount solo se rellena cuando Status == StatusWon y representa
// únicamente la ganancia (sin el stake devuelto).
type Wager struct {
	ID           string
	NotebookID   string
	Date         string // YYYY-MM-DD, sin zona horaria
	Description  string
	AmericanOdds int
	StakeAmount  float64
	Status       WagerStatus
	ProfitAmount *float64
}

// Profit devuelve la ganancia registrada, 0 si no hay.
func (w Wager) Profit() float64 {
	if w.ProfitAmount == nil {
		return 0
	}
	return *w.ProfitAmount
}

// Net es el resultado de la apuesta: profit si ganó, -stake si perdió, 0 en push o pendiente.
func (w Wager) Net() float64 {
	switch w.Status {
	case StatusWon:
		return w.Profit()
	case StatusLost:
		return -w.StakeAmount
	default:
		return 0
	}
}

// Day devuelve el prefijo YYYY-MM-DD de la fecha.
// Tolera fechas con sufijo horario ("2024-03-01T00:00:00Z") heredadas de exports.
func Day(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// IsValidDay comprueba que date sea un día real en formato YYYY-MM-DD
// (2024-02-29 sí, 2023-02-29 y 2024-04-31 no) sin parsear a time.Time.
func IsValidDay(date string) bool {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return false
	}
	for i, c := range date {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	year := digits(date[0:4])
	month := digits(date[5:7])
	day := digits(date[8:10])
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth(year, month)
}

func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// daysInMonth usa el calendario gregoriano.
func daysInMonth(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// Float64Ptr es un helper para construir ProfitAmount y filtros opcionales.
func Float64Ptr(v float64) *float64 { return &v }
