package auth

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

// HandlerPassword serves the reset-request and the password update.
type HandlerPassword struct {
	Log       *log.Logger
	Profiles  domain.ProfilesRepo
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
	Resets    domain.ResetTokens
	Mailer    domain.Mailer

	// PublicBaseURL is the origin the reset link points back at.
	PublicBaseURL string
}

type resetRequest struct {
	Email string `json:"email"`
}

// RequestReset issues a single-use token and mails the link. The reply is
// identical whether or not the account exists.
func (h *HandlerPassword) RequestReset(w http.ResponseWriter, r *http.Request) {
	const op = "auth.password_reset"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req resetRequest
	if !decodeBody(r, &req, func() {
		req.Email = r.FormValue("email")
	}) {
		logx.Error(h.Log, reqID, op, "bad body", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		v1.WriteResult(w, r, domain.ResultFail("Informe o email da conta."))
		return
	}

	// uniform reply regardless of outcome; account enumeration is not leaked
	const reply = "Se a conta existir, enviamos um email com as instruções."

	p, err := h.Profiles.ProfileByEmail(r.Context(), req.Email)
	if err != nil {
		logx.Info(h.Log, reqID, op, "no such account", "email", req.Email)
		v1.WriteResult(w, r, domain.ResultOK(reply))
		return
	}

	token, err := h.Resets.Issue(r.Context(), p.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue reset token failed", err, "profile_id", p.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	link := strings.TrimRight(h.PublicBaseURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
	if err := h.Mailer.SendPasswordReset(r.Context(), p.Email, link); err != nil {
		logx.Error(h.Log, reqID, op, "send mail failed", err, "profile_id", p.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "profile_id", p.ID)
	v1.WriteResult(w, r, domain.ResultOK(reply))
}

type updatePasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdatePassword changes the password. The caller proves identity either by
// a single-use reset token or by a live session token.
func (h *HandlerPassword) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	const op = "auth.password_update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req updatePasswordRequest
	if !decodeBody(r, &req, func() {
		req.Token = r.FormValue("token")
		req.Password = r.FormValue("password")
		req.ConfirmPassword = r.FormValue("confirmPassword")
	}) {
		logx.Error(h.Log, reqID, op, "bad body", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if !domain.ValidPassword(req.Password) {
		v1.WriteResult(w, r, domain.ResultFail("A senha precisa ter pelo menos 6 caracteres."))
		return
	}
	if req.Password != req.ConfirmPassword {
		v1.WriteResult(w, r, domain.ResultFail("As senhas não conferem."))
		return
	}

	var profileID domain.ProfileID
	if req.Token != "" {
		id, err := h.Resets.Consume(r.Context(), req.Token)
		if err != nil {
			logx.Error(h.Log, reqID, op, "consume reset token failed", err)
			v1.WriteResult(w, r, domain.ResultFail("Link de redefinição inválido ou expirado."))
			return
		}
		profileID = id
	} else {
		raw := v1.TokenFromRequest(r)
		if raw == "" {
			v1.WriteDomainError(w, r, domain.ErrUnauth)
			return
		}
		claims, err := h.Tokens.Parse(r.Context(), raw)
		if err != nil {
			logx.Error(h.Log, reqID, op, "parse session token failed", err)
			v1.WriteDomainError(w, r, domain.ErrUnauth)
			return
		}
		// a signed-out session must not change the password
		revoked, err := h.Blacklist.IsRevoked(r.Context(), claims.JTI)
		if err != nil {
			logx.Error(h.Log, reqID, op, "blacklist lookup failed", err)
			v1.WriteDomainError(w, r, domain.ErrUnexpected)
			return
		}
		if revoked {
			logx.Error(h.Log, reqID, op, "revoked session token", domain.ErrUnauth, "jti", claims.JTI)
			v1.WriteDomainError(w, r, domain.ErrUnauth)
			return
		}
		profileID = claims.ProfileID
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	if err := h.Profiles.UpdatePassword(r.Context(), profileID, []byte(hash)); err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "profile_id", profileID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "profile_id", profileID)
	v1.WriteResult(w, r, domain.ResultOK("Senha atualizada com sucesso."))
}
