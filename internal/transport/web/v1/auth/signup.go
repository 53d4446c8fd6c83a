package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

// HandlerSignup serves POST /v1/auth/signup.
type HandlerSignup struct {
	Log      *log.Logger
	Profiles domain.ProfilesRepo
	Hasher   domain.PasswordHasher
	Tokens   domain.TokenManager
}

type signupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signupResponse struct {
	domain.ActionResult
	Token string `json:"token,omitempty"`
	Email string `json:"email,omitempty"`
}

func (h *HandlerSignup) Signup(w http.ResponseWriter, r *http.Request) {
	const op = "auth.signup"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req signupRequest
	if !decodeBody(r, &req, func() {
		req.FullName = r.FormValue("fullName")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
		req.ConfirmPassword = r.FormValue("confirmPassword")
	}) {
		logx.Error(h.Log, reqID, op, "bad body", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		v1.WriteResult(w, r, domain.ResultFail("Informe um email válido."))
		return
	case !domain.ValidName(req.FullName):
		v1.WriteResult(w, r, domain.ResultFail("O nome é obrigatório e precisa ter pelo menos 3 caracteres."))
		return
	case !domain.ValidPassword(req.Password):
		v1.WriteResult(w, r, domain.ResultFail("A senha precisa ter pelo menos 6 caracteres."))
		return
	case req.Password != req.ConfirmPassword:
		v1.WriteResult(w, r, domain.ResultFail("As senhas não conferem."))
		return
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	workspaceName := "Escritório de " + req.FullName
	p, ws, err := h.Profiles.Provision(r.Context(), req.Email, req.FullName, []byte(hash), workspaceName)
	if err != nil {
		logx.Error(h.Log, reqID, op, "provision failed", err, "email", req.Email)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível criar a conta. Este email já está em uso?"))
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), p.ID, p.Email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "profile_id", p.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "profile_id", p.ID, "workspace_id", ws.ID)
	v1.WriteOKResponse(w, r, signupResponse{
		ActionResult: domain.ResultOK("Conta criada com sucesso."),
		Token:        token,
		Email:        p.Email,
	})
}
