// Package model contains domain models passed between layers.
package model

import "github.com/okian/lfgmenu/internal/domain/types"

// GroupEvent is one of TeamEvent or LeagueEvent. The set of implementations
// is closed; consumers switch on the concrete type.
type GroupEvent interface {
	Kind() types.EventKind
	EventName() string
	EventTips() []Tip

	isGroupEvent()
}

// TeamEvent is a task force, strike force or trial run by a single team.
type TeamEvent struct {
	Name             string
	LevelRequirement uint8
	Merits           uint8
	TeamSize         uint8
	Location         string
	Tips             []Tip
}

// LeagueEvent is an incarnate trial or raid run by a league.
type LeagueEvent struct {
	Name         string
	Requirements string
	Rewards      string
	LeagueSize   uint8
	Location     string
	Tips         []Tip
}

// Tip is a short hint attached to an event. Category is empty in the flat
// tip scheme.
type Tip struct {
	Category types.TipCategory
	Name     string
	Content  string
}

func (TeamEvent) Kind() types.EventKind   { return types.KindTeamEvent }
func (e TeamEvent) EventName() string     { return e.Name }
func (e TeamEvent) EventTips() []Tip      { return e.Tips }
func (TeamEvent) isGroupEvent()           {}
func (LeagueEvent) Kind() types.EventKind { return types.KindLeagueEvent }
func (e LeagueEvent) EventName() string   { return e.Name }
func (e LeagueEvent) EventTips() []Tip    { return e.Tips }
func (LeagueEvent) isGroupEvent()         {}

// HasTips reports whether the event carries at least one tip.
func HasTips(e GroupEvent) bool {
	return len(e.EventTips()) > 0
}
