package cases

import (
	"net/http"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "cases.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	search := domain.CaseSearch{Query: r.URL.Query().Get("query")}
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		id, ok := domain.ParseID(raw)
		if !ok {
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		search.ClientID = id
	}

	list, err := h.Cases.CasesList(r.Context(), ws.ID, search)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if list == nil {
		list = []domain.Case{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(list))
	v1.WriteOKData(w, r, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "cases.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.Cases.CaseByID(r.Context(), ws.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "case_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "case_id", c.ID)
	v1.WriteOKData(w, r, c)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "cases.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	stats, err := h.Cases.CaseStats(r.Context(), ws.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "stats failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, stats)
}
