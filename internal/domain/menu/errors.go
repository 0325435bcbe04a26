package menu

import "errors"

// Sentinel kinds for composition errors.
var (
	ErrTemplateRender   = errors.New("template render failed")
	ErrUnsupportedEvent = errors.New("unsupported event variant")
)
