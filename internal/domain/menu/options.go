package menu

import (
	"github.com/okian/lfgmenu/internal/domain/types"
	"github.com/okian/lfgmenu/pkg/logger"
)

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithTipScheme selects how tips are grouped before formatting.
func WithTipScheme(scheme types.TipScheme) Option {
	return func(c *Composer) {
		if scheme != "" {
			c.scheme = scheme
		}
	}
}

// WithTopLevelTemplate sets the template used by Assemble.
func WithTopLevelTemplate(name string) Option {
	return func(c *Composer) {
		if name != "" {
			c.topLevelTemplate = name
		}
	}
}

// WithTipSectionTemplate sets the template rendered once per tip category.
func WithTipSectionTemplate(name string) Option {
	return func(c *Composer) {
		if name != "" {
			c.tipSectionTemplate = name
		}
	}
}

// WithCaseFoldedNames reports names differing only by case as duplicates.
func WithCaseFoldedNames(enabled bool) Option {
	return func(c *Composer) {
		c.foldNames = enabled
	}
}

// WithLogger sets a custom logger for the composer.
func WithLogger(l logger.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}
