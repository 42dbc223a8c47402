package models

import (
	"strings"
	"time"
)

// Audience is the intended readership of a book.
type Audience string

const (
	AudienceChildren   Audience = "CHILDREN"
	AudienceYoungAdult Audience = "YOUNG_ADULT"
	AudienceAdult      Audience = "ADULT"
	AudienceAll        Audience = "ALL"
)

// ParseAudience normalizes s and reports whether it names a known audience.
// An empty string maps to AudienceAll.
func ParseAudience(s string) (Audience, bool) {
	a := Audience(strings.ToUpper(strings.TrimSpace(s)))
	switch a {
	case "":
		return AudienceAll, true
	case AudienceChildren, AudienceYoungAdult, AudienceAdult, AudienceAll:
		return a, true
	default:
		return "", false
	}
}

// Book is a catalog entry. PublishDate is nil when unknown.
type Book struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	Audience    Audience   `json:"audience"`
	AuthorID    int        `json:"author_id"`
	Author      *Author    `json:"author,omitempty"` // populated by joins
}

// PublishDateString formats the publish date as YYYY-MM-DD, or "" when unknown.
func (b Book) PublishDateString() string {
	if b.PublishDate == nil {
		return ""
	}
	return b.PublishDate.Format("2006-01-02")
}
