package helpers

import (
	"io"

	"finitefield.org/campaign-site/internal/platform/markup"
)

// Markup is the HTML writer used by every back-office component.
type Markup = markup.Markup

// NewMarkup wraps w.
func NewMarkup(w io.Writer) *Markup {
	return markup.New(w)
}
