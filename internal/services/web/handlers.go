// Package web serves the browser-facing sign-in and document routes.
package web

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/formdesk/internal/docgen"
	"github.com/louisbranch/formdesk/internal/platform/branding"
	apperrors "github.com/louisbranch/formdesk/internal/platform/errors"
	"github.com/louisbranch/formdesk/internal/services/auth"
	"github.com/louisbranch/formdesk/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/formdesk/internal/services/web/platform/i18n"
	"github.com/louisbranch/formdesk/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/formdesk/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/formdesk/internal/services/web/templates"
)

// AuthService is the auth boundary the web handlers depend on.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenID, newPassword string) error
	ValidateSession(token string) (auth.Session, error)
}

type handlers struct {
	auth AuthService
	docs *docgen.Renderer
}

func newHandlers(authSvc AuthService, docs *docgen.Renderer) handlers {
	return handlers{auth: authSvc, docs: docs}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		h.writeNotFound(w, r)
		return
	}
	if session, ok := h.viewerSession(r); ok {
		loc, lang := webi18n.ResolveLocalizer(r)
		h.writeAuthPage(w, r, http.StatusOK, lang,
			webtemplates.T(loc, "Welcome back"),
			webtemplates.SignedInPage(loc, session.Name))
		return
	}
	http.Redirect(w, r, routepath.Login, http.StatusFound)
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.viewerSession(r); ok {
		http.Redirect(w, r, routepath.Root, http.StatusFound)
		return
	}
	loc, lang := webi18n.ResolveLocalizer(r)
	h.writeAuthPage(w, r, http.StatusOK, lang,
		webtemplates.T(loc, "Sign In"),
		webtemplates.LoginPage(loc))
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	loc, lang := webi18n.ResolveLocalizer(r)
	if err := r.ParseForm(); err != nil {
		h.writeLoginOutcome(w, r, lang, http.StatusBadRequest, loc, webtemplates.Notice{
			Kind:    "error",
			Message: webtemplates.T(loc, "Something went wrong. Try again."),
		})
		return
	}

	session, err := h.auth.SignIn(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		status := apperrors.HTTPStatus(err)
		message := webtemplates.T(loc, "Email or password is incorrect.")
		if apperrors.KindOf(err) != apperrors.KindUnauthorized && apperrors.KindOf(err) != apperrors.KindInvalidInput {
			log.Printf("sign in: %v", err)
			message = webtemplates.T(loc, "Something went wrong. Try again.")
		}
		h.writeLoginOutcome(w, r, lang, status, loc, webtemplates.Notice{Kind: "error", Message: message})
		return
	}

	sessioncookie.Write(w, r, session.Token)
	if httpx.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", routepath.Root)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, routepath.Root, http.StatusSeeOther)
}

func (h handlers) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	loc, lang := webi18n.ResolveLocalizer(r)
	if err := r.ParseForm(); err != nil {
		h.writeLoginOutcome(w, r, lang, http.StatusBadRequest, loc, webtemplates.Notice{
			Kind:    "error",
			Message: webtemplates.T(loc, "Something went wrong. Try again."),
		})
		return
	}

	err := h.auth.RequestPasswordReset(r.Context(), r.PostFormValue("email"))
	if err != nil {
		status := apperrors.HTTPStatus(err)
		message := webtemplates.T(loc, "Something went wrong. Try again.")
		if apperrors.KindOf(err) == apperrors.KindInvalidInput {
			message = webtemplates.T(loc, "Email is required.")
		} else {
			log.Printf("request password reset: %v", err)
		}
		h.writeLoginOutcome(w, r, lang, status, loc, webtemplates.Notice{Kind: "error", Message: message})
		return
	}

	h.writeLoginOutcome(w, r, lang, http.StatusOK, loc, webtemplates.Notice{
		Kind:    "success",
		Message: webtemplates.T(loc, "If that email exists, a reset link is on its way."),
	})
}

func (h handlers) handleResetPage(w http.ResponseWriter, r *http.Request) {
	loc, lang := webi18n.ResolveLocalizer(r)
	tokenID := strings.TrimPrefix(r.URL.Path, routepath.ResetPrefix)
	if tokenID == "" {
		h.writeNotFound(w, r)
		return
	}
	h.writeAuthPage(w, r, http.StatusOK, lang,
		webtemplates.T(loc, "Choose a new password"),
		webtemplates.ResetPasswordPage(loc, tokenID, webtemplates.Notice{}))
}

func (h handlers) handleResetSubmit(w http.ResponseWriter, r *http.Request) {
	loc, lang := webi18n.ResolveLocalizer(r)
	tokenID := strings.TrimPrefix(r.URL.Path, routepath.ResetPrefix)
	if tokenID == "" {
		h.writeNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeNotFound(w, r)
		return
	}

	err := h.auth.ResetPassword(r.Context(), tokenID, r.PostFormValue("password"))
	if err != nil {
		status := apperrors.HTTPStatus(err)
		message := webtemplates.T(loc, "This reset link is invalid or has expired.")
		if apperrors.KindOf(err) == apperrors.KindInvalidInput {
			message = webtemplates.T(loc, "Passwords must be at least 8 characters.")
		} else if apperrors.KindOf(err) != apperrors.KindUnauthorized {
			log.Printf("reset password: %v", err)
			message = webtemplates.T(loc, "Something went wrong. Try again.")
		}
		h.writeAuthPage(w, r, status, lang,
			webtemplates.T(loc, "Choose a new password"),
			webtemplates.ResetPasswordPage(loc, tokenID, webtemplates.Notice{Kind: "error", Message: message}))
		return
	}

	h.writeAuthPage(w, r, http.StatusOK, lang,
		webtemplates.T(loc, "Choose a new password"),
		webtemplates.ResetPasswordDone(loc))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessioncookie.Clear(w, r)
	http.Redirect(w, r, routepath.Login, http.StatusFound)
}

func (h handlers) handleWelcomeDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := h.viewerSession(r)
	if !ok {
		http.Redirect(w, r, routepath.Login, http.StatusFound)
		return
	}

	loc, _ := webi18n.ResolveLocalizer(r)
	name := session.Name
	if name == "" {
		name = session.Email
	}
	doc := docgen.Document{
		Title: webtemplates.T(loc, "Welcome to formdesk"),
		Lines: []string{
			webtemplates.T(loc, "This document was generated for %s.", name),
			webtemplates.T(loc, "Keep it with your records."),
		},
		Footer: branding.AppName,
	}

	var buf bytes.Buffer
	if err := h.docs.RenderPNG(&buf, doc); err != nil {
		log.Printf("render welcome document: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteHTML(w, http.StatusOK, "ok")
}

// writeLoginOutcome renders the login actions fragment for HTMX posts and the
// full login page otherwise.
func (h handlers) writeLoginOutcome(w http.ResponseWriter, r *http.Request, lang string, status int, loc webtemplates.Localizer, notice webtemplates.Notice) {
	fragment := webtemplates.LoginActions(webtemplates.DefaultActionPanelState(loc), notice)
	full := authPage(webtemplates.T(loc, "Sign In"), lang, webtemplates.LoginPageWithNotice(loc, notice))
	if err := httpx.RenderPage(w, r, status, fragment, full); err != nil {
		log.Printf("render login outcome: %v", err)
	}
}

// authPage wraps a body component in the layout shell.
func authPage(title, lang string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ctx = templ.WithChildren(ctx, body)
		return webtemplates.AuthLayout(title, branding.Tagline, lang).Render(ctx, w)
	})
}

func (h handlers) writeAuthPage(w http.ResponseWriter, r *http.Request, status int, lang, title string, body templ.Component) {
	if err := httpx.WriteComponent(w, r, status, authPage(title, lang, body)); err != nil {
		log.Printf("render page: %v", err)
	}
}

func (h handlers) writeNotFound(w http.ResponseWriter, r *http.Request) {
	loc, lang := webi18n.ResolveLocalizer(r)
	h.writeAuthPage(w, r, http.StatusNotFound, lang,
		webtemplates.T(loc, "Page not found"),
		webtemplates.ErrorPage(loc, http.StatusNotFound, webtemplates.T(loc, "Page not found")))
}

func (h handlers) viewerSession(r *http.Request) (auth.Session, bool) {
	token, ok := sessioncookie.Read(r)
	if !ok {
		return auth.Session{}, false
	}
	session, err := h.auth.ValidateSession(token)
	if err != nil {
		return auth.Session{}, false
	}
	return session, true
}
