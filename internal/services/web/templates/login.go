package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/formdesk/internal/services/web/routepath"
)

// Notice is a short status line rendered above the action panel.
type Notice struct {
	Kind    string // "error" or "success"
	Message string
}

// LoginActions wraps the action panel with an optional notice.
//
// This is the HTMX swap target for both panel actions, so a post replaces the
// notice and the panel together.
func LoginActions(state ActionPanelState, notice Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="login-actions" class="login-actions">`); err != nil {
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
		if err := ActionPanel(state).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// DefaultActionPanelState returns the idle panel wired to the login routes.
func DefaultActionPanelState(loc Localizer) ActionPanelState {
	return ActionPanelState{
		PrimaryAction:   routepath.Login,
		SecondaryAction: routepath.ResetPassword,
		Loc:             loc,
	}
}

// LoginPage renders the sign-in form body.
func LoginPage(loc Localizer) templ.Component {
	return LoginPageWithNotice(loc, Notice{})
}

// LoginPageWithNotice renders the sign-in form with a notice above the panel.
func LoginPageWithNotice(loc Localizer, notice Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="auth-card"><h1>%s</h1>`,
			html.EscapeString(T(loc, "Welcome back"))); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`<form id="login-form" method="post" action="%s">`+
				`<label>%s<input type="email" name="email" autocomplete="email" required></label>`+
				`<label>%s<input type="password" name="password" autocomplete="current-password" required></label>`,
			routepath.Login,
			html.EscapeString(T(loc, "Email")),
			html.EscapeString(T(loc, "Password"))); err != nil {
			return err
		}
		if err := LoginActions(DefaultActionPanelState(loc), notice).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</form></section>`)
		return err
	})
}
