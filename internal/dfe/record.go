package dfe

import (
	"strings"
	"time"
)

// Record is the uniform output of extraction. A record either carries Error
// (plus the document kind when it is known) or carries business fields,
// never both. Empty strings stand for absent optional fields.
type Record struct {
	DocumentKind     string `json:"document_kind,omitempty"`
	AccessKey        string `json:"access_key,omitempty"`
	IssuerID         string `json:"issuer_id,omitempty"`
	RecipientID      string `json:"recipient_id,omitempty"`
	EmissionDate     string `json:"emission_date,omitempty"`
	Protocol         string `json:"protocol,omitempty"`
	IsEvent          bool   `json:"is_event,omitempty"`
	EventType        string `json:"event_type,omitempty"`
	EventSequence    string `json:"event_sequence,omitempty"`
	EventDescription string `json:"event_description,omitempty"`
	EventDate        string `json:"event_date,omitempty"`
	StatusCode       string `json:"status_code,omitempty"`
	StatusReason     string `json:"status_reason,omitempty"`
	Error            string `json:"error,omitempty"`
}

// OK reports whether the record carries business data.
func (r Record) OK() bool {
	return r.Error == ""
}

// timestampLayouts are tried in order. Emission and event timestamps arrive
// as ISO-8601 with an offset, without one, or (legacy documents) as a bare
// date.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// canonicalTimestamp is the fixed output shape for every date field.
const canonicalTimestamp = "2006-01-02 15:04:05"

// NormalizeTimestamp converts an ISO-8601-like timestamp into the canonical
// `YYYY-MM-DD HH:MM:SS` shape. The wall-clock time is kept as written; zone
// offsets are dropped, not converted. A bare date is zero-filled.
func NormalizeTimestamp(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(canonicalTimestamp), nil
		}
	}
	return "", malformedTimestamp(raw)
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
