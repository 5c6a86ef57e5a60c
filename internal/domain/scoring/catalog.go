// Package scoring compares two competitors' punch sequences against the
// combo they were asked to throw and decides who won the battle.
//
// Everything except Expander is pure. Expander reads combos through the
// PlanReader it is given; nothing keeps state between calls.
package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPunchCode is returned when a combo references a code the catalog does not map.
var ErrUnknownPunchCode = errors.New("unknown punch code")

// PunchCode identifies a punch kind in a combo definition ("1".."7", "DL", "DR").
type PunchCode string

// Label is the expected punch at one position of an expanded combo.
type Label string

// matchRule reports whether an actual punch label satisfies an expected label.
type matchRule func(expected Label, actual string) bool

// Catalog maps punch codes to expected labels and knows how to match them.
// BattleCatalog and AccuracyCatalog are not interchangeable.
type Catalog struct {
	name   string
	labels map[PunchCode]Label
	match  matchRule
}

// BattleCatalog is used for battle winner comparison. Labels are hand-specific
// and hand-ambiguous codes are slash-joined alternatives.
//
// Matching is a substring test of the actual label inside the alternatives
// string, so a left straight ("LS") also satisfies "LSH/RSH".
var BattleCatalog = Catalog{
	name: "battle",
	labels: map[PunchCode]Label{
		"1":  "LJ/RJ",
		"2":  "LS/RS",
		"3":  "LH",
		"4":  "RH",
		"5":  "LU",
		"6":  "RU",
		"7":  "LSH/RSH",
		"DL": "LD",
		"DR": "RD",
	},
	match: func(expected Label, actual string) bool {
		return actual != "" && strings.Contains(string(expected), actual)
	},
}

// AccuracyCatalog is used for accuracy (perfect repetition) counting.
// Jab, straight and shovel hook are hand-agnostic.
var AccuracyCatalog = Catalog{
	name: "accuracy",
	labels: map[PunchCode]Label{
		"1":  "J",
		"2":  "S",
		"3":  "LH",
		"4":  "RH",
		"5":  "LU",
		"6":  "RU",
		"7":  "SH",
		"DL": "LD",
		"DR": "RD",
	},
	match: func(expected Label, actual string) bool {
		return expected != "" && strings.Contains(actual, string(expected))
	},
}

// Name returns the catalog name.
func (c Catalog) Name() string {
	return c.name
}

// Label returns the expected label for code.
func (c Catalog) Label(code PunchCode) (Label, error) {
	label, ok := c.labels[PunchCode(strings.TrimSpace(string(code)))]
	if !ok {
		return "", fmt.Errorf("%w: %q in %s catalog", ErrUnknownPunchCode, code, c.name)
	}
	return label, nil
}

// Matches reports whether the actual punch label satisfies expected.
func (c Catalog) Matches(expected Label, actual string) bool {
	if c.match == nil {
		return false
	}
	return c.match(expected, actual)
}
