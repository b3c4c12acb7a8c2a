package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/formdesk/internal/services/web/routepath"
)

// SignedInPage renders the landing card for an authenticated viewer.
func SignedInPage(loc Localizer, name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		greeting := T(loc, "Welcome back")
		if name != "" {
			greeting = fmt.Sprintf("%s, %s", greeting, name)
		}
		_, err := fmt.Fprintf(w,
			`<section class="auth-card"><h1>%s</h1>`+
				`<a class="btn btn-primary" href="%s">%s</a>`+
				`<form method="post" action="%s"><button type="submit" class="btn btn-ghost">%s</button></form>`+
				`</section>`,
			html.EscapeString(greeting),
			routepath.DocumentWelcome,
			html.EscapeString(T(loc, "Download welcome document")),
			routepath.Logout,
			html.EscapeString(T(loc, "Sign Out")))
		return err
	})
}
