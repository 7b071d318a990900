package entity

import "time"

// Comment mensaje del buzón de sugerencias; Name nil = anónimo.
type Comment struct {
	ID        string
	Name      *string
	Message   string
	CreatedAt time.Time
}
