package web

import (
	"log"
	"net/http"

	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/auth"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/cases"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/client"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/dashboard"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/doc"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/export"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1/health"
)

type routerDeps struct {
	health   *health.Handler
	signup   *auth.HandlerSignup
	signin   *auth.HandlerSignin
	signout  *auth.HandlerSignout
	password *auth.HandlerPassword
	client   *client.Handler
	cases    *cases.Handler
	doc      *doc.Handler
	dash     *dashboard.Handler
	export   *export.Handler
	auth     mw.AuthDeps
	logger   *log.Logger
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.Handler {
		return mw.RequireAuth(d.auth, h)
	}

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// auth
	mux.HandleFunc("POST /v1/auth/signup", d.signup.Signup)
	mux.HandleFunc("POST /v1/auth/signin", d.signin.Signin)
	mux.HandleFunc("DELETE /v1/auth/signout", d.signout.Signout)
	mux.HandleFunc("POST /v1/auth/password-reset", d.password.RequestReset)
	// identity comes from the reset token or the session token in the body
	mux.HandleFunc("POST /v1/auth/password", d.password.UpdatePassword)

	// clients
	mux.Handle("GET /v1/clients", authed(d.client.List))
	mux.Handle("POST /v1/clients", authed(d.client.Create))
	mux.Handle("GET /v1/clients/stats", authed(d.client.Stats))
	mux.Handle("GET /v1/clients/{id}", authed(d.client.Get))
	mux.Handle("POST /v1/clients/{id}", authed(d.client.Update))
	mux.Handle("DELETE /v1/clients/{id}", authed(d.client.Delete))

	// cases
	mux.Handle("GET /v1/cases", authed(d.cases.List))
	mux.Handle("POST /v1/cases", authed(d.cases.Create))
	mux.Handle("GET /v1/cases/stats", authed(d.cases.Stats))
	mux.Handle("GET /v1/cases/{id}", authed(d.cases.Get))
	mux.Handle("POST /v1/cases/{id}", authed(d.cases.Update))
	mux.Handle("DELETE /v1/cases/{id}", authed(d.cases.Delete))

	// documents
	mux.Handle("POST /v1/documents", authed(limitBody(64<<20, d.doc.Upload)))
	mux.Handle("GET /v1/documents", authed(d.doc.List))
	mux.Handle("DELETE /v1/documents/{id}", authed(d.doc.Delete))

	// dashboard
	mux.Handle("GET /v1/dashboard/metrics", authed(d.dash.Metrics))
	mux.Handle("GET /v1/dashboard/alerts", authed(d.dash.Alerts))

	// export (download link path kept from the web app)
	mux.Handle("GET /api/export/clients", authed(d.export.ExportClients))

	return mw.WithRequestID(mw.Logging(d.logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
