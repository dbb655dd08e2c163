package entity

import (
	"time"
)

type MovieInfo struct {
	ID          string    `bson:"_id" db:"id"`
	Name        string    `bson:"name" db:"name"`
	Year        int       `bson:"year" db:"year"`
	Cast        []string  `bson:"cast" db:"cast_members"`
	ReleaseDate time.Time `bson:"release_date" db:"release_date"`
}

// Clone returns a copy that shares no slices with m.
func (m *MovieInfo) Clone() *MovieInfo {
	c := *m
	c.Cast = append([]string(nil), m.Cast...)
	return &c
}
