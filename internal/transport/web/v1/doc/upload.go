package doc

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

// storageKey composes the object key. The epoch-millis prefix keeps
// same-named files in one case from colliding.
func storageKey(ws domain.WorkspaceID, caseID domain.CaseID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d-%s", ws, caseID, now.UnixMilli(), filename)
}

// Upload receives multipart fields caseId + file. The blob lands first;
// if the metadata insert then fails the blob is deleted again so storage
// and database cannot drift apart.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "doc.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form failed", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	caseID, ok := domain.ParseID(r.FormValue("caseId"))
	if !ok {
		v1.WriteResult(w, r, domain.ResultFail("Selecione um caso para anexar o documento."))
		return
	}

	// ownership check before touching storage
	if _, err := h.Cases.CaseByID(r.Context(), ws.ID, caseID); err != nil {
		logx.Error(h.Log, reqID, op, "case lookup failed", err, "case_id", caseID)
		v1.WriteDomainError(w, r, err)
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		v1.WriteResult(w, r, domain.ResultFail("Selecione um arquivo para enviar."))
		return
	}
	defer file.Close()

	if hdr.Size == 0 {
		v1.WriteResult(w, r, domain.ResultFail("O arquivo enviado está vazio."))
		return
	}

	contentType := hdr.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storageKey(ws.ID, caseID, hdr.Filename, time.Now())
	if err := h.Storage.Put(r.Context(), key, file, hdr.Size, contentType); err != nil {
		logx.Error(h.Log, reqID, op, "storage put failed", err, "key", key)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível enviar o documento."))
		return
	}

	d, err := h.Documents.DocumentCreate(r.Context(), domain.Document{
		WorkspaceID: ws.ID,
		CaseID:      caseID,
		Name:        hdr.Filename,
		Path:        key,
	})
	if err != nil {
		// compensate: metadata failed, take the blob back out
		if delErr := h.Storage.Delete(r.Context(), key); delErr != nil {
			logx.Error(h.Log, reqID, op, "compensating delete failed", delErr, "key", key)
		}
		logx.Error(h.Log, reqID, op, "metadata insert failed", err, "key", key)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível enviar o documento."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "document_id", d.ID, "key", key, "size", hdr.Size)
	v1.WriteResult(w, r, domain.ResultOK("Documento enviado com sucesso."))
}
