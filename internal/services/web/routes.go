package web

import (
	"net/http"

	"github.com/louisbranch/formdesk/internal/docgen"
	"github.com/louisbranch/formdesk/internal/services/web/routepath"
	"github.com/louisbranch/formdesk/internal/services/web/static"
)

// NewHandler assembles the web routes on a fresh mux.
func NewHandler(authSvc AuthService, docs *docgen.Renderer) http.Handler {
	mux := http.NewServeMux()
	h := newHandlers(authSvc, docs)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))

	mux.HandleFunc(routepath.Root, h.handleRoot)
	mux.HandleFunc(routepath.Login, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.handleLoginPage(w, r)
		case http.MethodPost:
			h.handleLoginSubmit(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc(routepath.ResetPassword, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h.handleResetRequest(w, r)
	})
	mux.HandleFunc(routepath.ResetPrefix, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.handleResetPage(w, r)
		case http.MethodPost:
			h.handleResetSubmit(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc(routepath.Logout, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h.handleLogout(w, r)
	})
	mux.HandleFunc(routepath.DocumentWelcome, h.handleWelcomeDocument)
	mux.HandleFunc(routepath.Health, h.handleHealth)

	return mux
}
