package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/formdesk/internal/services/web/routepath"
)

// ResetPasswordPage renders the choose-a-new-password form for a reset link.
func ResetPasswordPage(loc Localizer, tokenID string, notice Notice) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="auth-card"><h1>%s</h1>`,
			html.EscapeString(T(loc, "Choose a new password"))); err != nil {
			return err
		}
		if notice.Message != "" {
			kind := notice.Kind
			if kind == "" {
				kind = "info"
			}
			if _, err := fmt.Fprintf(w, `<p class="notice notice-%s" role="status">%s</p>`,
				html.EscapeString(kind), html.EscapeString(notice.Message)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="%s%s">`+
				`<label>%s<input type="password" name="password" autocomplete="new-password" required minlength="8"></label>`+
				`<button type="submit" class="btn btn-primary">%s</button>`+
				`</form></section>`,
			routepath.ResetPrefix,
			html.EscapeString(tokenID),
			html.EscapeString(T(loc, "New Password")),
			html.EscapeString(T(loc, "Save Password")))
		return err
	})
}

// ResetPasswordDone renders the post-reset confirmation.
func ResetPasswordDone(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="auth-card"><p class="notice notice-success" role="status">%s</p>`+
				`<a class="btn btn-primary" href="%s">%s</a></section>`,
			html.EscapeString(T(loc, "Your password has been updated. Sign in to continue.")),
			routepath.Login,
			html.EscapeString(T(loc, "Sign In")))
		return err
	})
}
