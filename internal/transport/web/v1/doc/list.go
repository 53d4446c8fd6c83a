package doc

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

// List returns the workspace's documents, or one case's when ?caseId= is
// given. Every row carries a presigned URL, minted concurrently.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "doc.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var (
		docs []domain.Document
		err  error
	)
	if raw := r.URL.Query().Get("caseId"); raw != "" {
		caseID, ok := domain.ParseID(raw)
		if !ok {
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		docs, err = h.Documents.DocumentsByCase(r.Context(), ws.ID, caseID)
	} else {
		docs, err = h.Documents.DocumentsByWorkspace(r.Context(), ws.ID)
	}
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	for i := range docs {
		g.Go(func() error {
			url, err := h.Storage.PresignGet(ctx, docs[i].Path, domain.SignedURLTTL)
			if err != nil {
				return err
			}
			docs[i].DownloadURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logx.Error(h.Log, reqID, op, "presign failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(docs))
	v1.WriteOKData(w, r, docs)
}
