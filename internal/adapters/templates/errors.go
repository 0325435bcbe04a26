package templates

import "errors"

// Sentinel kinds for template set errors.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateParse    = errors.New("template parse failed")
)
