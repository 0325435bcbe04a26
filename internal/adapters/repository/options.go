package repository

import (
	"github.com/okian/lfgmenu/internal/domain/types"
	"github.com/okian/lfgmenu/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithTeamEventsPath sets the team collection file.
func WithTeamEventsPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.teamPath = path
		}
	}
}

// WithLeagueEventsPath sets the league collection file.
func WithLeagueEventsPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.leaguePath = path
		}
	}
}

// WithTipScheme sets the tip scheme enforced while decoding.
func WithTipScheme(scheme types.TipScheme) Option {
	return func(s *FileStore) {
		if scheme != "" {
			s.scheme = scheme
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}
