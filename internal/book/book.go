package book

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isoMillis is the timestamp layout written to clients: UTC, millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a time.Time that marshals as an ISO-8601 string with milliseconds.
type Timestamp struct {
	time.Time
}

// MarshalJSON writes the time in UTC, e.g. "2024-01-15T10:30:00.000Z".
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.UTC().Format(isoMillis))), nil
}

// UnmarshalJSON accepts any RFC 3339 string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	t.Time = parsed
	return nil
}

// Book is a catalog record with reading progress.
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Author     string    `json:"author"`
	Summary    string    `json:"summary"`
	Publisher  string    `json:"publisher"`
	PageCount  int       `json:"pageCount"`
	ReadPage   int       `json:"readPage"`
	Finished   bool      `json:"finished"`
	Reading    bool      `json:"reading"`
	InsertedAt Timestamp `json:"insertedAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

// Payload is the caller-supplied part of a Book, used by create and update.
type Payload struct {
	Name      string `json:"name" validate:"required"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage" validate:"ltefield=PageCount"`
	Reading   bool   `json:"reading"`
}

// Projection is the reduced view returned by list.
type Projection struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

func newBook(id string, p Payload, now time.Time) Book {
	b := Book{ID: id, InsertedAt: Timestamp{now}}
	b.apply(p, now)
	return b
}

// apply replaces every caller-owned field, recomputes Finished and refreshes
// UpdatedAt. ID and InsertedAt are left alone.
func (b *Book) apply(p Payload, now time.Time) {
	b.Name = p.Name
	b.Year = p.Year
	b.Author = p.Author
	b.Summary = p.Summary
	b.Publisher = p.Publisher
	b.PageCount = p.PageCount
	b.ReadPage = p.ReadPage
	b.Reading = p.Reading
	b.Finished = p.ReadPage == p.PageCount
	b.UpdatedAt = Timestamp{now}
}

func (b Book) project() Projection {
	return Projection{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

// Flag is a boolean list filter parsed from a query parameter.
//
// An empty value leaves the filter unset. "1", "t" and "true" mean true and
// "0", "f" and "false" mean false, case-insensitively. Any other value is set
// but invalid and matches no book.
type Flag struct {
	set   bool
	valid bool
	value bool
}

// ParseFlag parses a raw query value.
func ParseFlag(raw string) Flag {
	if raw == "" {
		return Flag{}
	}
	switch strings.ToLower(raw) {
	case "1", "t", "true":
		return Flag{set: true, valid: true, value: true}
	case "0", "f", "false":
		return Flag{set: true, valid: true, value: false}
	default:
		return Flag{set: true}
	}
}

// FlagOf returns a set, valid flag holding v.
func FlagOf(v bool) Flag {
	return Flag{set: true, valid: true, value: v}
}

// IsSet reports whether the filter was supplied.
func (f Flag) IsSet() bool { return f.set }

// Matches reports whether a book field with value v passes the filter.
func (f Flag) Matches(v bool) bool {
	return f.valid && f.value == v
}

// Query selects books for list. Only one dimension applies, in the order
// Name, Reading, Finished.
type Query struct {
	Name     string
	Reading  Flag
	Finished Flag
}
