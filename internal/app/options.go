package service

import (
	"time"

	"github.com/okian/lfgmenu/internal/adapters/output"
	"github.com/okian/lfgmenu/internal/adapters/repository"
	"github.com/okian/lfgmenu/internal/domain/menu"
	"github.com/okian/lfgmenu/internal/domain/types"
	"github.com/okian/lfgmenu/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the source of event collections.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRenderer sets the template renderer.
func WithRenderer(r menu.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithWriter sets the destination of the finished document.
func WithWriter(w output.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.writer = w
		}
	}
}

// WithThreshold sets the level requirement that starts the second team group.
func WithThreshold(threshold int) Option {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// WithTipScheme selects the tip scheme.
func WithTipScheme(scheme types.TipScheme) Option {
	return func(s *Service) {
		if scheme != "" {
			s.scheme = scheme
		}
	}
}

// WithTemplates sets the template names. Empty names keep their defaults.
func WithTemplates(topLevel, team, league, tipSection string) Option {
	return func(s *Service) {
		if topLevel != "" {
			s.topLevelTemplate = topLevel
		}
		if team != "" {
			s.teamTemplate = team
		}
		if league != "" {
			s.leagueTemplate = league
		}
		if tipSection != "" {
			s.tipSectionTemplate = tipSection
		}
	}
}

// WithCaseFoldedNames treats menu names differing only by case as duplicates.
func WithCaseFoldedNames(enabled bool) Option {
	return func(s *Service) {
		s.foldNames = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
