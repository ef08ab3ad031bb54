package detector

import (
	"bytes"
	"time"

	"github.com/ccollicutt/linr/pkg/linr"
	"github.com/ccollicutt/linr/pkg/schema"
)

// Candidate is a field type a column can be detected as.
type Candidate struct {
	Name      string           // Human-readable name
	Type      schema.FieldType // Schema type emitted for the column
	Layout    string           // Go time layout, for time candidates
	Examples  []string         // Example values
	Ambiguous bool             // True if the layout has date ordering ambiguity (MM/DD vs DD/MM)

	match func(reg *linr.Registry, field []byte) bool
}

// Match reports whether field parses as the candidate type.
func (c *Candidate) Match(reg *linr.Registry, field []byte) bool {
	return c.match(reg, field)
}

// DefaultCandidates returns the built-in candidates in preference order:
// the first candidate that matches a column well enough wins, so narrower
// types come before wider ones.
func DefaultCandidates() []*Candidate {
	return []*Candidate{
		{
			Name:     "Integer",
			Type:     schema.TypeInt64,
			Examples: []string{"42", "-7"},
			match:    parses[int64],
		},
		{
			Name:     "Floating point",
			Type:     schema.TypeFloat64,
			Examples: []string{"3.14", "-1e9"},
			match:    parses[float64],
		},
		{
			Name:     "Duration",
			Type:     schema.TypeDuration,
			Examples: []string{"1m30s", "250ms"},
			match:    parses[time.Duration],
		},
		timeCandidate("RFC 3339", schema.DefaultTimeLayout, false,
			"2024-01-15T10:30:00Z", "2024-01-15T10:30:00.123+02:00"),
		timeCandidate("ISO 8601 without zone", "2006-01-02T15:04:05", false,
			"2024-01-15T10:30:00"),
		timeCandidate("Date", "2006-01-02", false,
			"2024-01-15"),
		timeCandidate("Time of day", "15:04:05", false,
			"10:30:00"),
		timeCandidate("Apache/NGINX CLF", "02/Jan/2006:15:04:05", false,
			"15/Jan/2024:10:30:00"),
		timeCandidate("US date format (MM/DD/YYYY)", "01/02/2006", true,
			"01/15/2024"),
		{
			Name:     "Boolean",
			Type:     schema.TypeBool,
			Examples: []string{"true", "FALSE"},
			match:    matchBoolWord,
		},
		{
			Name:     "Character",
			Type:     schema.TypeChar,
			Examples: []string{"y", "N"},
			match:    func(_ *linr.Registry, field []byte) bool { return len(field) == 1 },
		},
	}
}

// parses reports whether field converts to T through reg.
func parses[T any](reg *linr.Registry, field []byte) bool {
	return linr.Parse[T](reg, field).OK()
}

func timeCandidate(name, layout string, ambiguous bool, examples ...string) *Candidate {
	parse := linr.TimeParser(layout)
	return &Candidate{
		Name:      name,
		Type:      schema.TypeTime,
		Layout:    layout,
		Examples:  examples,
		Ambiguous: ambiguous,
		match: func(_ *linr.Registry, field []byte) bool {
			_, err := parse(field)
			return err == nil
		},
	}
}

// matchBoolWord accepts only the words true and false. The numeric forms
// the bool parser also takes are left to the integer candidate.
func matchBoolWord(reg *linr.Registry, field []byte) bool {
	if !bytes.EqualFold(field, []byte("true")) && !bytes.EqualFold(field, []byte("false")) {
		return false
	}
	return parses[bool](reg, field)
}
