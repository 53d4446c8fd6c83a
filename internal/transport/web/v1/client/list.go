package client

import (
	"net/http"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "client.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	clients, err := h.Clients.ClientsList(r.Context(), ws.ID, query)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(clients))
	v1.WriteOKData(w, r, clients)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "client.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.Clients.ClientByID(r.Context(), ws.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "client_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "client_id", c.ID)
	v1.WriteOKData(w, r, c)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "client.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	stats, err := h.Clients.ClientStats(r.Context(), ws.ID, time.Now())
	if err != nil {
		logx.Error(h.Log, reqID, op, "stats failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, stats)
}
