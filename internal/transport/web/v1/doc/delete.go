package doc

import (
	"errors"
	"net/http"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

// Delete removes the blob first, the metadata row second. A storage
// failure aborts the operation so the row keeps pointing at a real object.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "doc.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	id, ok := domain.ParseID(r.PathValue("id"))
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	d, err := h.Documents.DocumentByID(r.Context(), ws.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "document_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Storage.Delete(r.Context(), d.Path); err != nil {
		logx.Error(h.Log, reqID, op, "storage delete failed", err, "key", d.Path)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível remover o documento."))
		return
	}

	if err := h.Documents.DocumentDelete(r.Context(), ws.ID, d.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "metadata delete failed", err, "document_id", d.ID)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível remover o documento."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "document_id", d.ID)
	v1.WriteResult(w, r, domain.ResultOK("Documento removido com sucesso."))
}
