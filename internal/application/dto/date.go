package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Date fecha de entrada que acepta "2006-01-02" (inputs de tipo date del frontend) o RFC3339.
type Date struct {
	time.Time
}

// UnmarshalJSON acepta string vacío o null como fecha cero.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: use YYYY-MM-DD o RFC3339", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON serializa como RFC3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Ptr devuelve nil para la fecha cero.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
