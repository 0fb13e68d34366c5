// Package httpadapter exposes the application services as the JSON API
// consumed by the web client.
package httpadapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/neweraservicez/startup-os/internal/app/auth"
	"github.com/neweraservicez/startup-os/internal/app/blueprint"
	"github.com/neweraservicez/startup-os/internal/app/conversation"
	"github.com/neweraservicez/startup-os/internal/app/export"
	"github.com/neweraservicez/startup-os/internal/app/generation"
	"github.com/neweraservicez/startup-os/internal/app/waitlist"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the API is built from.
type Deps struct {
	Auth         *auth.Service
	Blueprints   *blueprint.Service
	Generation   *generation.Service
	Conversation *conversation.Service
	Export       *export.Service
	Waitlist     *waitlist.Service
	Store        Pinger

	APIPrefix    string
	CORSOrigins  []string
	CookieSecure bool
}

type Server struct {
	auth         *auth.Service
	blueprints   *blueprint.Service
	generation   *generation.Service
	conversation *conversation.Service
	export       *export.Service
	waitlist     *waitlist.Service
	store        Pinger

	cookieSecure bool
}

func NewServer(deps Deps) http.Handler {
	s := &Server{
		auth:         deps.Auth,
		blueprints:   deps.Blueprints,
		generation:   deps.Generation,
		conversation: deps.Conversation,
		export:       deps.Export,
		waitlist:     deps.Waitlist,
		store:        deps.Store,
		cookieSecure: deps.CookieSecure,
	}

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(withRequestContext)
	r.Use(withLogging)
	r.Use(chiMiddleware.Recoverer)
	r.Use(withCORS(origins))

	routes := func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Post("/auth/session", s.handleCreateSession)
		r.Get("/auth/me", s.handleMe)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/blueprint", s.handleGetBlueprint)
		r.Put("/blueprint/company-name", s.handleUpdateCompanyName)
		r.Put("/blueprint/layer", s.handleUpdateLayer)

		r.Post("/generate/layer-content", s.handleGenerateLayerContent)

		r.Post("/chat/mentor", s.handleMentorChat)
		r.Get("/chat/history", s.handleChatHistory)

		r.Get("/export/pdf", s.handleExportPDF)
		r.Get("/export/json", s.handleExportJSON)

		r.Post("/waitlist", s.handleJoinWaitlist)
	}

	if prefix := strings.Trim(deps.APIPrefix, "/"); prefix != "" {
		r.Route("/"+prefix, routes)
	} else {
		routes(r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// sessionMaxAge is the lifetime of the session cookie.
const sessionMaxAge = 7 * 24 * time.Hour
