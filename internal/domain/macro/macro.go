// Package macro derives chat-macro definitions from event tips.
//
// A fragment is a list of "macro <identifier> say <content>" entries joined
// by Separator, with no trailing separator. The consuming client splits on
// Separator, so identifiers may not contain whitespace and content may not
// contain Separator.
package macro

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/okian/lfgmenu/internal/domain/model"
	"github.com/okian/lfgmenu/internal/domain/types"
)

// Separator joins macro entries inside one fragment.
const Separator = "$$"

// ErrInvalidTipName is returned when a tip name cannot become an identifier.
var ErrInvalidTipName = errors.New("invalid tip name")

// Identifier strips every whitespace rune from a tip name. Names holding a
// single or double quote are rejected.
func Identifier(name string) (string, error) {
	id := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	if id == "" {
		return "", fmt.Errorf("%w: %q has no identifier characters", ErrInvalidTipName, name)
	}
	if strings.ContainsAny(id, `"'`) {
		return "", fmt.Errorf("%w: %q contains a quote", ErrInvalidTipName, name)
	}
	return id, nil
}

// Entry formats a single tip without a separator.
func Entry(tip model.Tip) (string, error) {
	id, err := Identifier(tip.Name)
	if err != nil {
		return "", err
	}
	return "macro " + id + " say " + tip.Content, nil
}

// Format builds the fragment for tips in input order. An empty slice gives
// an empty fragment.
func Format(tips []model.Tip) (string, error) {
	var b strings.Builder
	for _, tip := range tips {
		entry, err := Entry(tip)
		if err != nil {
			return "", err
		}
		b.WriteString(entry)
		b.WriteString(Separator)
	}
	return strings.TrimSuffix(b.String(), Separator), nil
}

// Section is one non-empty category bucket of a categorized tip list.
type Section struct {
	Category types.TipCategory
	Tips     []model.Tip
	Macros   string
}

// Group buckets tips by category in the fixed order General, Speed, Badge,
// keeping input order inside each bucket. Empty buckets are dropped.
func Group(tips []model.Tip) ([]Section, error) {
	buckets := make(map[types.TipCategory][]model.Tip, len(types.Categories()))
	for _, tip := range tips {
		if _, err := types.ParseTipCategory(string(tip.Category)); err != nil {
			return nil, fmt.Errorf("tip %q: %w", tip.Name, err)
		}
		buckets[tip.Category] = append(buckets[tip.Category], tip)
	}

	var sections []Section
	for _, cat := range types.Categories() {
		bucket := buckets[cat]
		if len(bucket) == 0 {
			continue
		}
		frag, err := Format(bucket)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Category: cat, Tips: bucket, Macros: frag})
	}
	return sections, nil
}

// Flatten returns the tips of sections in section order.
func Flatten(sections []Section) []model.Tip {
	var out []model.Tip
	for _, s := range sections {
		out = append(out, s.Tips...)
	}
	return out
}
