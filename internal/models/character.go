package models

import (
	"time"
)

// SpeakingStyle selects which template response pool and prompt phrasing
// apply to a character. The set is closed; anything else falls back to the
// neutral default pool.
type SpeakingStyle string

const (
	StylePolite    SpeakingStyle = "polite"
	StyleFormal    SpeakingStyle = "formal"
	StyleCasual    SpeakingStyle = "casual"
	StyleDreamy    SpeakingStyle = "dreamy"
	StyleTeacher   SpeakingStyle = "teacher"
	StyleEnergetic SpeakingStyle = "energetic"
	StyleKawaii    SpeakingStyle = "kawaii"
	StyleVictorian SpeakingStyle = "victorian"
)

// SpeakingStyles lists every valid style in declaration order.
var SpeakingStyles = []SpeakingStyle{
	StylePolite,
	StyleFormal,
	StyleCasual,
	StyleDreamy,
	StyleTeacher,
	StyleEnergetic,
	StyleKawaii,
	StyleVictorian,
}

// Valid reports whether s is one of the known speaking styles.
func (s SpeakingStyle) Valid() bool {
	switch s {
	case StylePolite, StyleFormal, StyleCasual, StyleDreamy,
		StyleTeacher, StyleEnergetic, StyleKawaii, StyleVictorian:
		return true
	}
	return false
}

// Label returns the Japanese display label for the style, used when
// composing persona prompts.
func (s SpeakingStyle) Label() string {
	switch s {
	case StylePolite:
		return "丁寧"
	case StyleFormal:
		return "フォーマル"
	case StyleCasual:
		return "カジュアル"
	case StyleDreamy:
		return "夢見がち"
	case StyleTeacher:
		return "先生風"
	case StyleEnergetic:
		return "エネルギッシュ"
	case StyleKawaii:
		return "かわいい"
	case StyleVictorian:
		return "ヴィクトリア朝"
	default:
		return string(s)
	}
}

// Character is a configured conversational persona. JSON field names match
// the userCreatedCharacters storage layout, so records round-trip through
// the local store unchanged.
type Character struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"not null"`
	Description   string        `json:"description" gorm:"not null"`
	Avatar        string        `json:"avatar"`
	Personality   string        `json:"personality" gorm:"not null"`
	Category      string        `json:"category" gorm:"not null"`
	Tags          []string      `json:"tags" gorm:"serializer:json"`
	Popularity    int           `json:"popularity"`
	Rating        float64       `json:"rating"`
	SpeakingStyle SpeakingStyle `json:"speakingStyle"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	IsActive      bool          `json:"isActive"`
}

// CreateCharacterRequest is the user-submitted draft. System-assigned fields
// (id, popularity, rating, timestamps, active flag) are set on insertion.
type CreateCharacterRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Personality   string   `json:"personality" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Tags          []string `json:"tags" validate:"min=1"`
	SpeakingStyle string   `json:"speakingStyle"`
	Avatar        string   `json:"avatar"`
}

// SearchFilters narrows and orders the catalog. All fields are optional and
// combine with logical AND.
type SearchFilters struct {
	Query     string   `json:"query,omitempty" form:"query"`
	Category  string   `json:"category,omitempty" form:"category"`
	Tags      []string `json:"tags,omitempty" form:"tags"`
	MinRating float64  `json:"minRating,omitempty" form:"minRating"`
	SortBy    SortKey  `json:"sortBy,omitempty" form:"sortBy"`
}

// SortKey orders search results. Empty means "leave the filtered order alone".
type SortKey string

const (
	SortPopularity   SortKey = "popularity"
	SortRating       SortKey = "rating"
	SortNewest       SortKey = "newest"
	SortAlphabetical SortKey = "alphabetical"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortPopularity, SortRating, SortNewest, SortAlphabetical:
		return true
	}
	return false
}
