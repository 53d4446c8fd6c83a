// Package doc serves the /v1/documents surface: metadata rows in Postgres,
// blobs in the documents bucket, download links minted per read.
package doc

import (
	"log"
	"net/http"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type Handler struct {
	Log        *log.Logger
	Workspaces domain.WorkspacesRepo
	Cases      domain.CasesRepo
	Documents  domain.DocumentsRepo
	Storage    domain.BlobStorage
}

func (h *Handler) workspace(w http.ResponseWriter, r *http.Request) (domain.Workspace, bool) {
	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return domain.Workspace{}, false
	}
	ws, err := h.Workspaces.WorkspaceByOwner(r.Context(), me.ID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return domain.Workspace{}, false
	}
	return ws, true
}
