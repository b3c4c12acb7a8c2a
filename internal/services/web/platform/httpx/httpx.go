// Package httpx holds shared HTTP and HTMX helpers for web handlers.
package httpx

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// HTMXHeader is the HTMX request header used to detect partial updates.
const HTMXHeader = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(HTMXHeader), "true")
}

// RenderPage renders fragment for HTMX requests and full otherwise.
//
// If fragment is nil, full is used for both paths. Rendering happens into a
// buffer first so template failures surface as 500s instead of truncated
// pages.
func RenderPage(w http.ResponseWriter, r *http.Request, statusCode int, fragment templ.Component, full templ.Component) error {
	target := full
	if IsHTMXRequest(r) && fragment != nil {
		target = fragment
	}
	if target == nil {
		target = fragment
	}
	if target == nil {
		return nil
	}
	return WriteComponent(w, r, statusCode, target)
}

// WriteComponent renders a component as a complete HTML response.
func WriteComponent(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	var rendered bytes.Buffer
	if err := component.Render(r.Context(), &rendered); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(rendered.Bytes())
	return nil
}

// WriteHTML writes a raw HTML body.
func WriteHTML(w http.ResponseWriter, statusCode int, body string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write([]byte(body))
	return err
}
