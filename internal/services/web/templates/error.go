package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// ErrorPage renders a minimal error state for the public shell.
func ErrorPage(loc Localizer, statusCode int, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if message == "" {
			message = T(loc, "Something went wrong. Try again.")
		}
		_, err := fmt.Fprintf(w,
			`<section class="auth-card error-state"><h1>%d %s</h1><p>%s</p></section>`,
			statusCode,
			html.EscapeString(http.StatusText(statusCode)),
			html.EscapeString(message))
		return err
	})
}
