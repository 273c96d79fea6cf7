// Package ledger contiene la aritmética de caja: periodos por día calendario,
// totales de ventas y egresos y el saldo de cierre.
package ledger

import (
	"fmt"
	"time"
)

// DateLayout formato de fecha de los periodos (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Range intervalo semiabierto [Start, End). Un Start cero no acota por abajo; un End cero no acota por arriba.
type Range struct {
	Start time.Time
	End   time.Time
}

// Day devuelve el día calendario de t en loc: [00:00, 00:00 del día siguiente).
func Day(t time.Time, loc *time.Location) Range {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// ParseDay interpreta una fecha YYYY-MM-DD como día calendario en loc.
func ParseDay(date string, loc *time.Location) (Range, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return Range{}, fmt.Errorf("fecha inválida %q: %w", date, err)
	}
	return Day(t, loc), nil
}

// Between construye el rango de días [from, to] (ambos inclusive). Fechas vacías dejan el extremo abierto.
func Between(from, to string, loc *time.Location) (Range, error) {
	var r Range
	if from != "" {
		d, err := ParseDay(from, loc)
		if err != nil {
			return Range{}, err
		}
		r.Start = d.Start
	}
	if to != "" {
		d, err := ParseDay(to, loc)
		if err != nil {
			return Range{}, err
		}
		r.End = d.End
	}
	if !r.Start.IsZero() && !r.End.IsZero() && !r.Start.Before(r.End) {
		return Range{}, fmt.Errorf("rango inválido: %s > %s", from, to)
	}
	return r, nil
}

// Contains indica si t cae dentro del rango.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// Date fecha YYYY-MM-DD del inicio del rango.
func (r Range) Date() string {
	if r.Start.IsZero() {
		return ""
	}
	return r.Start.Format(DateLayout)
}

// Label etiqueta legible del rango ("Inicio" / "Hoy" para extremos abiertos).
func (r Range) Label() string {
	from, to := "Inicio", "Hoy"
	if !r.Start.IsZero() {
		from = r.Start.Format("02/01/2006")
	}
	if !r.End.IsZero() {
		to = r.End.Add(-time.Nanosecond).Format("02/01/2006")
	}
	return from + " - " + to
}
