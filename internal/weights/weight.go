package weights

import "time"

// WeightEntry is one body weight report. Entries are append-only and keyed
// by date, a second report on the same date replaces the first.
type WeightEntry struct {
	UserID   string    `json:"-"`
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weightKg"`
}
