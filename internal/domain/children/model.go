package children

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nutri-admin/internal/ports/dashboard"
)

// Date es una fecha de nacimiento. El backend la manda como YYYY-MM-DD
// o como timestamp RFC 3339. Un valor que no se entiende queda en cero
// (se muestra como "—") y no invalida el resto del listado.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	d.Time = time.Time{}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// Mother es el resumen de la madre embebido en cada niño.
type Mother struct {
	ID    dashboard.ID `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
}

// Child es el registro plano que devuelve GET /dashboard/children.
// La edad no se guarda: se calcula con Age al momento de mostrar.
type Child struct {
	ID        dashboard.ID `json:"id"`
	Name      string       `json:"name"`
	BirthDate Date         `json:"birthDate"`
	Gender    string       `json:"gender"`
	Weight    float64      `json:"weight"` // kg
	Height    float64      `json:"height"` // cm
	Mother    Mother       `json:"mother"`
}

// Key identifica la fila en un listado.
func Key(c Child) string { return c.ID.String() }

// Age devuelve años y meses cumplidos a la fecha now.
func Age(birth, now time.Time) (years, months int) {
	if birth.IsZero() || now.Before(birth) {
		return 0, 0
	}
	total := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		total--
	}
	if total < 0 {
		total = 0
	}
	return total / 12, total % 12
}

// AgeLabel muestra meses para menores de dos años y años para el resto.
func AgeLabel(birth, now time.Time) string {
	if birth.IsZero() {
		return "—"
	}
	years, months := Age(birth, now)
	if years < 2 {
		total := years*12 + months
		if total == 1 {
			return "1 mes"
		}
		return fmt.Sprintf("%d meses", total)
	}
	return fmt.Sprintf("%d años", years)
}

// GenderLabel normaliza las variantes que usa el backend.
func GenderLabel(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "m", "male", "masculino", "niño":
		return "Masculino"
	case "f", "female", "femenino", "niña":
		return "Femenino"
	case "":
		return "—"
	default:
		return g
	}
}

// Measure formatea peso o talla; 0 o negativo se muestra como "—".
func Measure(v float64, unit string) string {
	if v <= 0 {
		return "—"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}

func OrDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
