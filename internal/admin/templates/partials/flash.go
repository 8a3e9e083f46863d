package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/templates/helpers"
)

// Flash renders a one-shot notice. Empty messages render nothing.
func Flash(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		tone := kind
		if tone == "error" {
			tone = "danger"
		}
		m := helpers.NewMarkup(w)
		m.Raw(`<div role="status" data-flash`).Attr("data-flash-kind", kind).Attr("class", helpers.BadgeClass(tone)).Raw(`>`).
			Text(message).Raw(`</div>`)
		return m.Err()
	})
}
