package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// ActionPanelState drives the sign-in form's two submit controls.
//
// The two in-flight flags are independent: both may be set at once, and the
// panel imposes no ordering between the actions. The panel itself holds no
// state; every render is a pure projection of this struct.
type ActionPanelState struct {
	PrimaryInFlight   bool
	SecondaryInFlight bool
	PrimaryAction     string
	SecondaryAction   string
	Loc               Localizer
}

// ActionPanel renders the sign-in form's submit and reset-password controls.
//
// A control whose in-flight flag is set is disabled and swaps its verb label
// for a progress label with a loading ring, so a pending request cannot be
// resubmitted from the same control.
func ActionPanel(state ActionPanelState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="action-panel" class="action-panel">`); err != nil {
			return err
		}
		if err := actionButton(ctx, w, actionButtonState{
			class:     "btn btn-primary",
			action:    state.PrimaryAction,
			inFlight:  state.PrimaryInFlight,
			idleLabel: T(state.Loc, "Sign In"),
			busyLabel: T(state.Loc, "Signing In..."),
		}); err != nil {
			return err
		}
		if err := actionButton(ctx, w, actionButtonState{
			class:      "btn btn-ghost",
			action:     state.SecondaryAction,
			inFlight:   state.SecondaryInFlight,
			idleLabel:  T(state.Loc, "Reset Password"),
			busyLabel:  T(state.Loc, "Sending Reset Email..."),
			novalidate: true,
		}); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

type actionButtonState struct {
	class      string
	action     string
	inFlight   bool
	idleLabel  string
	busyLabel  string
	novalidate bool
}

func actionButton(ctx context.Context, w io.Writer, state actionButtonState) error {
	if state.inFlight {
		if _, err := fmt.Fprintf(w, `<button type="submit" class="%s" disabled>`,
			html.EscapeString(state.class)); err != nil {
			return err
		}
		if err := Loading().Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, ` %s</button>`, html.EscapeString(state.busyLabel))
		return err
	}

	novalidate := ""
	if state.novalidate {
		novalidate = ` formnovalidate`
	}
	_, err := fmt.Fprintf(w,
		`<button type="submit" class="%s" hx-post="%s" hx-target="#login-actions" hx-swap="outerHTML"%s>%s</button>`,
		html.EscapeString(state.class),
		html.EscapeString(state.action),
		novalidate,
		html.EscapeString(state.idleLabel))
	return err
}
