package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/config"
	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/auth"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/cases"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/client"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/dashboard"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/doc"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/export"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/health"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, repos Repos, authDeps AuthDeps, storage domain.BlobStorage, cache domain.Cache) *Server {
	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	healthHandler := &health.Handler{Log: sub("health"), DB: repos.Profiles, Cache: cache, Storage: storage}

	signupHandler := &auth.HandlerSignup{Log: sub("auth"), Profiles: repos.Profiles, Hasher: authDeps.Hasher, Tokens: authDeps.Tokens}
	signinHandler := &auth.HandlerSignin{Log: sub("auth"), Profiles: repos.Profiles, Hasher: authDeps.Hasher, Tokens: authDeps.Tokens}
	signoutHandler := &auth.HandlerSignout{Log: sub("auth"), Tokens: authDeps.Tokens, Blacklist: authDeps.Blacklist}
	passwordHandler := &auth.HandlerPassword{
		Log: sub("auth"), Profiles: repos.Profiles, Hasher: authDeps.Hasher,
		Tokens: authDeps.Tokens, Blacklist: authDeps.Blacklist,
		Resets: authDeps.Resets, Mailer: authDeps.Mailer,
		PublicBaseURL: cfg.PublicBaseURL,
	}

	clientHandler := &client.Handler{Log: sub("client"), Workspaces: repos.Workspaces, Clients: repos.Clients}
	casesHandler := &cases.Handler{Log: sub("cases"), Workspaces: repos.Workspaces, Cases: repos.Cases}
	docHandler := &doc.Handler{Log: sub("doc"), Workspaces: repos.Workspaces, Cases: repos.Cases, Documents: repos.Documents, Storage: storage}
	dashHandler := &dashboard.Handler{Log: sub("dashboard"), Workspaces: repos.Workspaces, Dashboard: repos.Dashboard, Cases: repos.Cases}
	exportHandler := &export.Handler{Log: sub("export"), Workspaces: repos.Workspaces, Clients: repos.Clients}

	authMW := mw.AuthDeps{Tokens: authDeps.Tokens, Blacklist: authDeps.Blacklist}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			health:   healthHandler,
			signup:   signupHandler,
			signin:   signinHandler,
			signout:  signoutHandler,
			password: passwordHandler,
			client:   clientHandler,
			cases:    casesHandler,
			doc:      docHandler,
			dash:     dashHandler,
			export:   exportHandler,
			auth:     authMW,
			logger:   logger,
		}),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
