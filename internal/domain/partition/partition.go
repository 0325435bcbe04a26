// Package partition splits team events into level groups so that each
// generated menu stays a manageable size.
package partition

import (
	"errors"
	"fmt"

	"github.com/okian/lfgmenu/internal/domain/model"
)

// ErrInvalidVariant is returned when a non-team event reaches the partitioner.
var ErrInvalidVariant = errors.New("invalid event variant")

// DefaultThreshold is the level requirement that starts the second group.
const DefaultThreshold = 36

// ByLevel performs a stable partition of team events: an event is low iff its
// level requirement is strictly less than threshold. Any other variant in
// events fails the whole call.
func ByLevel(events []model.GroupEvent, threshold int) (low, high []model.TeamEvent, err error) {
	for i, ev := range events {
		switch e := ev.(type) {
		case model.TeamEvent:
			if int(e.LevelRequirement) < threshold {
				low = append(low, e)
			} else {
				high = append(high, e)
			}
		case model.LeagueEvent:
			return nil, nil, fmt.Errorf("%w: event %d %q is a %s", ErrInvalidVariant, i, e.Name, e.Kind())
		default:
			return nil, nil, fmt.Errorf("%w: event %d has type %T", ErrInvalidVariant, i, ev)
		}
	}
	return low, high, nil
}

// Events widens team events back to GroupEvent for composition.
func Events(teams []model.TeamEvent) []model.GroupEvent {
	out := make([]model.GroupEvent, len(teams))
	for i, t := range teams {
		out[i] = t
	}
	return out
}
