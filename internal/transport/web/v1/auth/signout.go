package auth

import (
	"log"
	"net/http"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type HandlerSignout struct {
	Log       *log.Logger
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

// Signout revokes the presented token's JTI until its natural expiry.
func (h *HandlerSignout) Signout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.signout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	raw := v1.TokenFromRequest(r)
	if raw == "" {
		logx.Error(h.Log, reqID, op, "missing token", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	claims, err := h.Tokens.Parse(r.Context(), raw)
	if err != nil {
		logx.Error(h.Log, reqID, op, "parse token failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := h.Blacklist.Revoke(r.Context(), claims.JTI, claims.ExpiresAt); err != nil {
		logx.Error(h.Log, reqID, op, "revoke failed", err, "jti", claims.JTI)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "jti", claims.JTI)
	v1.WriteResult(w, r, domain.ResultOK("Sessão encerrada."))
}
