// Package types contains common enumerations used across the application
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned when parsing an enumeration from text fails.
var ErrUnknownValue = errors.New("unknown enumeration value")

// EventKind discriminates the GroupEvent variants in serialized form.
type EventKind string

const (
	KindTeamEvent   EventKind = "TeamEvent"
	KindLeagueEvent EventKind = "LeagueEvent"
)

// ParseEventKind maps the serialized "type" discriminator to an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case KindTeamEvent:
		return KindTeamEvent, nil
	case KindLeagueEvent:
		return KindLeagueEvent, nil
	}
	return "", fmt.Errorf("%w: event type %q", ErrUnknownValue, s)
}

// TipCategory labels a tip in the categorized scheme. The zero value means
// the tip is uncategorized (flat scheme).
type TipCategory string

const (
	CategoryGeneral TipCategory = "General"
	CategorySpeed   TipCategory = "Speed"
	CategoryBadge   TipCategory = "Badge"
)

// Categories lists every tip category in rendering order.
func Categories() []TipCategory {
	return []TipCategory{CategoryGeneral, CategorySpeed, CategoryBadge}
}

// ParseTipCategory maps a serialized tip "type" to a TipCategory.
func ParseTipCategory(s string) (TipCategory, error) {
	switch TipCategory(s) {
	case CategoryGeneral:
		return CategoryGeneral, nil
	case CategorySpeed:
		return CategorySpeed, nil
	case CategoryBadge:
		return CategoryBadge, nil
	}
	return "", fmt.Errorf("%w: tip type %q", ErrUnknownValue, s)
}

// TipScheme selects how tips are interpreted for a run.
type TipScheme string

const (
	SchemeFlat        TipScheme = "flat"
	SchemeCategorized TipScheme = "categorized"
)

// ParseTipScheme parses a scheme name, case-insensitively.
func ParseTipScheme(s string) (TipScheme, error) {
	switch TipScheme(strings.ToLower(strings.TrimSpace(s))) {
	case SchemeFlat:
		return SchemeFlat, nil
	case SchemeCategorized:
		return SchemeCategorized, nil
	}
	return "", fmt.Errorf("%w: tip scheme %q", ErrUnknownValue, s)
}
