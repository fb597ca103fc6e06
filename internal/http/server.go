package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"fundboard/internal/api"
	"fundboard/internal/config"
	"fundboard/internal/core"
	"fundboard/internal/log"
	"fundboard/internal/metrics"
	"fundboard/internal/session"
	appweb "fundboard/web"
)

// Server renders the dashboard screens and relays every data operation to
// the fund API with the session's bearer token.
type Server struct {
	http.Server
	templates    *template.Template
	api          *api.Client
	sessions     *session.Store
	collector    *metrics.Collector
	logger       *log.Logger
	rateLimiter  *rateLimiter
	cookieName   string
	cookieSecure bool
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(cfg *config.Config, apiClient *api.Client, sessions *session.Store, collector *metrics.Collector, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		api:          apiClient,
		sessions:     sessions,
		collector:    collector,
		logger:       logger,
		rateLimiter:  newRateLimiter(60),
		cookieName:   cfg.SessionCookieName,
		cookieSecure: cfg.CookieSecure,
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed parsing templates", log.FieldError, err.Error())
	}
	s.templates = t

	// Static assets served from the embedded FS.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Error("Failed to mount embedded static FS", log.FieldError, err.Error())
	}

	mux.HandleFunc("GET /{$}", s.withRequest("index", s.handleIndex))
	mux.HandleFunc("POST /login", s.withRequest("login", s.handleLogin))
	mux.HandleFunc("POST /logout", s.withRequest("logout", s.requireSession(s.handleLogout)))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	mux.HandleFunc("GET /dashboard", s.withRequest("dashboard", s.requireSession(s.handleDashboard)))
	mux.HandleFunc("GET /dashboard/ui/balances", s.withRequest("dashboard_balances", s.requireSession(s.handleBalances)))
	mux.HandleFunc("GET /dashboard/ui/account-summary", s.withRequest("account_summary", s.requireSession(s.handleAccountSummary)))

	mux.HandleFunc("GET /dashboard/audit", s.withRequest("audit", s.requireSession(s.handleAuditPage)))
	mux.HandleFunc("GET /dashboard/audit/table", s.withRequest("audit_table", s.requireSession(s.handleAuditTable)))

	for _, res := range s.resourceSpecs() {
		s.registerResource(mux, res)
	}

	return s
}

// registerResource wires the page, partial and mutation routes shared by
// every managed resource.
func (s *Server) registerResource(mux *http.ServeMux, res resourceSpec) {
	base := "/dashboard/" + res.Name
	mux.HandleFunc("GET "+base, s.withRequest(res.Name, s.requireSession(s.handleResourcePage(res))))
	mux.HandleFunc("GET "+base+"/table", s.withRequest(res.Name+"_table", s.requireSession(s.handleResourceTable(res))))
	mux.HandleFunc("GET "+base+"/form", s.withRequest(res.Name+"_form", s.requireSession(s.handleResourceForm(res))))
	mux.HandleFunc("POST "+base+"/save", s.withRequest(res.Name+"_save", s.requireSession(s.handleResourceSave(res))))
	mux.HandleFunc("GET "+base+"/confirm", s.withRequest(res.Name+"_confirm", s.requireSession(s.handleResourceConfirm(res))))
	mux.HandleFunc("POST "+base+"/delete", s.withRequest(res.Name+"_delete", s.requireSession(s.handleResourceDelete(res))))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"titleRole": func(r core.Role) string {
			switch r {
			case core.RoleAdmin:
				return "Administrator"
			case core.RoleAcct:
				return "Accountant"
			case core.RoleAudit:
				return "Auditor"
			default:
				return "User"
			}
		},
	}
}

// Shutdown stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
