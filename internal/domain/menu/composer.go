// Package menu composes rendered sub-menus into the final menu document.
//
// Rendering happens in two passes: every event is rendered into its own
// sub-menu text first, then the concatenated blocks are bound as opaque text
// into the top-level template. The client menu format has no include
// mechanism, so nesting is done by string composition.
package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/lfgmenu/internal/domain/dedupe"
	"github.com/okian/lfgmenu/internal/domain/macro"
	"github.com/okian/lfgmenu/internal/domain/model"
	"github.com/okian/lfgmenu/internal/domain/types"
	"github.com/okian/lfgmenu/pkg/logger"
	"github.com/okian/lfgmenu/pkg/metrics"
)

// Template context keys.
const (
	KeyContent      = "content"
	KeyTips         = "tips"
	KeyTipMacros    = "tip_macros"
	KeyTipSections  = "tip_sections"
	KeyType         = "type"
	KeyGroupOne     = "group_one"
	KeyGroupTwo     = "group_two"
	KeyLeagueEvents = "league_events"
)

// Default template names.
const (
	DefaultTopLevelTemplate   = "lfgmacros.mnu.tmpl"
	DefaultTeamTemplate       = "team_event.mnu.tmpl"
	DefaultLeagueTemplate     = "league_event.mnu.tmpl"
	DefaultTipSectionTemplate = "tip_section.mnu.tmpl"
)

// Renderer executes a named template against a binding map.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// Blocks are the three pre-rendered sections of the top-level document.
type Blocks struct {
	GroupOne     string
	GroupTwo     string
	LeagueEvents string
}

// Composer renders events through a Renderer.
type Composer struct {
	renderer           Renderer
	scheme             types.TipScheme
	topLevelTemplate   string
	tipSectionTemplate string
	foldNames          bool
	logger             logger.Logger
}

// New creates a Composer. The flat tip scheme and default template names
// are used unless overridden.
func New(r Renderer, opts ...Option) *Composer {
	c := &Composer{
		renderer:           r,
		scheme:             types.SchemeFlat,
		topLevelTemplate:   DefaultTopLevelTemplate,
		tipSectionTemplate: DefaultTipSectionTemplate,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

// Compose renders one sub-menu per event through templateName and returns
// them concatenated in input order. The first failure aborts the block.
func (c *Composer) Compose(ctx context.Context, events []model.GroupEvent, templateName string) (string, error) {
	var b strings.Builder
	names := dedupe.NewInMemoryDeduper(dedupe.WithCaseFolding(c.foldNames))
	for _, ev := range events {
		data, err := c.bind(ev)
		if err != nil {
			return "", err
		}
		out, err := c.renderer.Render(templateName, data)
		if err != nil {
			return "", fmt.Errorf("%w: %s %q with %s: %w", ErrTemplateRender, ev.Kind(), ev.EventName(), templateName, err)
		}
		metrics.RecordMenuRendered(templateName)
		if names.SeenAndRecord(ctx, ev.EventName()) {
			metrics.RecordDuplicateMenuName()
		}
		b.WriteString(out)
	}
	if dups := names.Duplicates(); len(dups) > 0 {
		c.logger.Warn(ctx, "duplicate menu names in block; the client will merge these sub-menus",
			logger.Any("names", dups), logger.String("template", templateName))
	}
	c.logger.Debug(ctx, "composed menu block",
		logger.String("template", templateName), logger.Int("events", len(events)),
		logger.Int("distinctNames", names.Size()), logger.Int("bytes", b.Len()))
	return b.String(), nil
}

// bind builds the template context for one event. Tip keys are only bound
// when the event has tips.
func (c *Composer) bind(ev model.GroupEvent) (map[string]any, error) {
	data := make(map[string]any, 4)
	switch e := ev.(type) {
	case model.TeamEvent:
		data[KeyContent] = e
	case model.LeagueEvent:
		data[KeyContent] = e
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEvent, ev)
	}

	tips := ev.EventTips()
	if len(tips) == 0 {
		return data, nil
	}
	data[KeyTips] = tips

	switch c.scheme {
	case types.SchemeFlat:
		frag, err := macro.Format(tips)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ev.Kind(), ev.EventName(), err)
		}
		metrics.RecordTipsFormatted("", len(tips))
		data[KeyTipMacros] = frag
	case types.SchemeCategorized:
		sections, err := macro.Group(tips)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ev.Kind(), ev.EventName(), err)
		}
		rendered, err := c.renderSections(sections)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ev.Kind(), ev.EventName(), err)
		}
		frag, err := macro.Format(macro.Flatten(sections))
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ev.Kind(), ev.EventName(), err)
		}
		data[KeyTipMacros] = frag
		data[KeyTipSections] = rendered
	default:
		return nil, fmt.Errorf("%w: tip scheme %q", types.ErrUnknownValue, c.scheme)
	}
	return data, nil
}

func (c *Composer) renderSections(sections []macro.Section) (string, error) {
	var b strings.Builder
	for _, s := range sections {
		out, err := c.renderer.Render(c.tipSectionTemplate, map[string]any{
			KeyType:      string(s.Category),
			KeyTips:      s.Tips,
			KeyTipMacros: s.Macros,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %s tips with %s: %w", ErrTemplateRender, s.Category, c.tipSectionTemplate, err)
		}
		metrics.RecordTipsFormatted(string(s.Category), len(s.Tips))
		b.WriteString(out)
	}
	return b.String(), nil
}

// Assemble renders the top-level document with the three blocks bound as
// pre-rendered text.
func (c *Composer) Assemble(ctx context.Context, blocks Blocks) (string, error) {
	out, err := c.renderer.Render(c.topLevelTemplate, map[string]any{
		KeyGroupOne:     blocks.GroupOne,
		KeyGroupTwo:     blocks.GroupTwo,
		KeyLeagueEvents: blocks.LeagueEvents,
	})
	if err != nil {
		return "", fmt.Errorf("%w: top-level %s: %w", ErrTemplateRender, c.topLevelTemplate, err)
	}
	metrics.RecordMenuRendered(c.topLevelTemplate)
	c.logger.Debug(ctx, "assembled menu document", logger.Int("bytes", len(out)))
	return out, nil
}
