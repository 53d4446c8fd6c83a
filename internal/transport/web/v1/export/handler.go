// Package export serves the PDF download surface.
package export

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/report"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type Handler struct {
	Log        *log.Logger
	Workspaces domain.WorkspacesRepo
	Clients    domain.ClientsRepo
}

// ExportClients streams the client roster as a PDF attachment. Failures
// answer 500 with a plain-text body, not the JSON envelope: the caller is
// a download link, not an API client.
func (h *Handler) ExportClients(w http.ResponseWriter, r *http.Request) {
	const op = "report.export_clients"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	ws, err := h.Workspaces.WorkspaceByOwner(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "workspace lookup failed", err)
		writePlainError(w)
		return
	}

	clients, err := h.Clients.ClientsList(r.Context(), ws.ID, "")
	if err != nil {
		logx.Error(h.Log, reqID, op, "client list failed", err, "workspace_id", ws.ID)
		writePlainError(w)
		return
	}

	pdf, err := report.ClientsPDF(clients, time.Now())
	if err != nil {
		logx.Error(h.Log, reqID, op, "render failed", err, "count", len(clients))
		writePlainError(w)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(clients), "bytes", len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="relatorio-clientes.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func writePlainError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Erro ao gerar o relatório em PDF."))
}
