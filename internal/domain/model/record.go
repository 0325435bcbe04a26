package model

import (
	"fmt"

	"github.com/okian/lfgmenu/internal/domain/types"
)

// Record is the serialized shape of a GroupEvent. Pointer fields let the
// decoder tell a missing field apart from a zero value.
type Record struct {
	Type             *string      `json:"type" yaml:"type"`
	Name             *string      `json:"name" yaml:"name"`
	LevelRequirement *uint8       `json:"level_requirement" yaml:"level_requirement"`
	Merits           *uint8       `json:"merits" yaml:"merits"`
	TeamSize         *uint8       `json:"team_size" yaml:"team_size"`
	Requirements     *string      `json:"requirements" yaml:"requirements"`
	Rewards          *string      `json:"rewards" yaml:"rewards"`
	LeagueSize       *uint8       `json:"league_size" yaml:"league_size"`
	Location         *string      `json:"location" yaml:"location"`
	Tips             *[]TipRecord `json:"tips" yaml:"tips"`
}

// TipRecord is the serialized shape of a Tip. Type is only present in the
// categorized scheme.
type TipRecord struct {
	Type    *string `json:"type" yaml:"type"`
	Name    *string `json:"name" yaml:"name"`
	Content *string `json:"content" yaml:"content"`
}

// Event converts the record into its GroupEvent variant, checking that every
// field of that variant is present and that tips follow the given scheme.
func (r Record) Event(scheme types.TipScheme) (GroupEvent, error) {
	if r.Type == nil {
		return nil, fmt.Errorf("%w: type", ErrMissingField)
	}
	kind, err := types.ParseEventKind(*r.Type)
	if err != nil {
		return nil, err
	}

	m := missing{}
	name := m.str("name", r.Name)
	location := m.str("location", r.Location)

	switch kind {
	case types.KindTeamEvent:
		ev := TeamEvent{
			Name:             name,
			LevelRequirement: m.u8("level_requirement", r.LevelRequirement),
			Merits:           m.u8("merits", r.Merits),
			TeamSize:         m.u8("team_size", r.TeamSize),
			Location:         location,
		}
		if err := m.err(); err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, name, err)
		}
		if ev.Tips, err = convertTips(r.Tips, scheme); err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, name, err)
		}
		return ev, nil
	case types.KindLeagueEvent:
		ev := LeagueEvent{
			Name:         name,
			Requirements: m.str("requirements", r.Requirements),
			Rewards:      m.str("rewards", r.Rewards),
			LeagueSize:   m.u8("league_size", r.LeagueSize),
			Location:     location,
		}
		if err := m.err(); err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, name, err)
		}
		if ev.Tips, err = convertTips(r.Tips, scheme); err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, name, err)
		}
		return ev, nil
	}
	return nil, fmt.Errorf("%w: event type %q", types.ErrUnknownValue, kind)
}

func convertTips(records *[]TipRecord, scheme types.TipScheme) ([]Tip, error) {
	if records == nil {
		return nil, fmt.Errorf("%w: tips", ErrMissingField)
	}
	tips := make([]Tip, 0, len(*records))
	for i, tr := range *records {
		m := missing{}
		tip := Tip{
			Name:    m.str("name", tr.Name),
			Content: m.str("content", tr.Content),
		}
		if err := m.err(); err != nil {
			return nil, fmt.Errorf("tip %d: %w", i, err)
		}
		switch scheme {
		case types.SchemeFlat:
			if tr.Type != nil {
				return nil, fmt.Errorf("%w: tip %q has type %q but tip scheme is flat", ErrInvalidTip, tip.Name, *tr.Type)
			}
		case types.SchemeCategorized:
			if tr.Type == nil {
				return nil, fmt.Errorf("%w: tip %q has no type but tip scheme is categorized", ErrInvalidTip, tip.Name)
			}
			cat, err := types.ParseTipCategory(*tr.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: tip %q: %w", ErrInvalidTip, tip.Name, err)
			}
			tip.Category = cat
		default:
			return nil, fmt.Errorf("%w: tip scheme %q", types.ErrUnknownValue, scheme)
		}
		tips = append(tips, tip)
	}
	return tips, nil
}

// missing collects absent required fields so one error names all of them.
type missing []string

func (m *missing) str(field string, v *string) string {
	if v == nil {
		*m = append(*m, field)
		return ""
	}
	return *v
}

func (m *missing) u8(field string, v *uint8) uint8 {
	if v == nil {
		*m = append(*m, field)
		return 0
	}
	return *v
}

func (m missing) err() error {
	if len(m) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrMissingField, []string(m))
}
