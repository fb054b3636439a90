package models

import (
	"encoding/json"
	"math"
)

// MsgIssueRequired is returned when the issue field is missing, blank or not text
const MsgIssueRequired = "Issue is required and must be a string"

// VerseMatch represents one ranked verse returned by the search backend
type VerseMatch struct {
	ID        string  `json:"id"`
	Score     float64 `json:"score"`
	VerseAR   string  `json:"verse_ar"`
	VerseEN   string  `json:"verse_en"`
	Text      string  `json:"text,omitempty"`
	SurahName string  `json:"surah_name,omitempty"`
}

// EnglishText returns the English translation, falling back to the legacy text field
func (v VerseMatch) EnglishText() string {
	if v.VerseEN != "" {
		return v.VerseEN
	}
	return v.Text
}

// RelevancePercent returns the score as a whole percentage
func (v VerseMatch) RelevancePercent() int {
	return int(math.Round(v.Score * 100))
}

// SearchResult is the payload of a successful therapy search
type SearchResult struct {
	AIResponse  string       `json:"ai_response"`
	SearchQuery string       `json:"search_query"`
	Results     []VerseMatch `json:"results"`
}

// SearchRequest is the normalized request forwarded to the backend
type SearchRequest struct {
	Issue string `json:"issue"`
	K     int    `json:"k"`
}

// TherapySearchInput is the raw request body accepted by the relay.
// Fields stay undecoded so their JSON types can be checked.
type TherapySearchInput struct {
	Issue json.RawMessage `json:"issue"`
	K     json.RawMessage `json:"k"`
}

// BackendReply is a backend response relayed without reshaping
type BackendReply struct {
	Status int
	Body   json.RawMessage
}
