package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type HandlerSignin struct {
	Log      *log.Logger
	Profiles domain.ProfilesRepo
	Hasher   domain.PasswordHasher
	Tokens   domain.TokenManager
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func (h *HandlerSignin) Signin(w http.ResponseWriter, r *http.Request) {
	const op = "auth.signin"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req signinRequest
	if !decodeBody(r, &req, func() {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}) {
		logx.Error(h.Log, reqID, op, "bad body", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		v1.WriteResult(w, r, domain.ResultFail("Informe email e senha."))
		return
	}

	p, err := h.Profiles.ProfileByEmail(r.Context(), req.Email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "profile not found", err, "email", req.Email)
		v1.WriteResult(w, r, domain.ResultFail("Email ou senha inválidos."))
		return
	}

	ok, err := h.Hasher.Verify(req.Password, string(p.PassHash))
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "email", req.Email)
		v1.WriteResult(w, r, domain.ResultFail("Email ou senha inválidos."))
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), p.ID, p.Email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "profile_id", p.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "profile_id", p.ID)
	v1.WriteOKResponse(w, r, signinResponse{Token: token, Email: p.Email})
}

// decodeBody accepts JSON or form bodies; the fallback fills fields from
// the parsed form.
func decodeBody(r *http.Request, dst any, formFallback func()) bool {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return json.NewDecoder(r.Body).Decode(dst) == nil
	}
	if err := r.ParseForm(); err != nil {
		return false
	}
	formFallback()
	return true
}
