package cases

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type caseForm struct {
	ClientID    string `json:"clientId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CaseNumber  string `json:"caseNumber"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD, empty for none
}

func readCaseForm(r *http.Request) (caseForm, bool) {
	var f caseForm
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			return f, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return f, false
		}
		f.ClientID = r.FormValue("clientId")
		f.Title = r.FormValue("title")
		f.Description = r.FormValue("description")
		f.Status = r.FormValue("status")
		f.CaseNumber = r.FormValue("caseNumber")
		f.Deadline = r.FormValue("deadline")
	}
	f.Title = strings.TrimSpace(f.Title)
	f.CaseNumber = strings.TrimSpace(f.CaseNumber)
	return f, true
}

// parseDeadline accepts an empty value or a calendar date.
func parseDeadline(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "cases.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	f, ok := readCaseForm(r)
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidName(f.Title) {
		v1.WriteResult(w, r, domain.ResultFail("O título é obrigatório e precisa ter pelo menos 3 caracteres."))
		return
	}
	clientID, ok := domain.ParseID(f.ClientID)
	if !ok {
		v1.WriteResult(w, r, domain.ResultFail("Selecione um cliente para o caso."))
		return
	}
	status := domain.CaseStatus(f.Status)
	if f.Status == "" {
		status = domain.CaseOpen
	}
	if !domain.ValidCaseStatus(status) {
		v1.WriteResult(w, r, domain.ResultFail("Status do caso inválido."))
		return
	}
	deadline, ok := parseDeadline(f.Deadline)
	if !ok {
		v1.WriteResult(w, r, domain.ResultFail("Prazo inválido. Use o formato AAAA-MM-DD."))
		return
	}

	c, err := h.Cases.CaseCreate(r.Context(), domain.Case{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Title:       f.Title,
		Description: f.Description,
		Status:      status,
		CaseNumber:  f.CaseNumber,
		Deadline:    deadline,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "workspace_id", ws.ID)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível cadastrar o caso."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "case_id", c.ID)
	v1.WriteResult(w, r, domain.ResultOK("Caso cadastrado com sucesso."))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "cases.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f, ok := readCaseForm(r)
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidName(f.Title) {
		v1.WriteResult(w, r, domain.ResultFail("O título é obrigatório e precisa ter pelo menos 3 caracteres."))
		return
	}
	status := domain.CaseStatus(f.Status)
	if !domain.ValidCaseStatus(status) {
		v1.WriteResult(w, r, domain.ResultFail("Status do caso inválido."))
		return
	}
	deadline, ok := parseDeadline(f.Deadline)
	if !ok {
		v1.WriteResult(w, r, domain.ResultFail("Prazo inválido. Use o formato AAAA-MM-DD."))
		return
	}

	err := h.Cases.CaseUpdate(r.Context(), ws.ID, id, domain.Case{
		Title:       f.Title,
		Description: f.Description,
		Status:      status,
		CaseNumber:  f.CaseNumber,
		Deadline:    deadline,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "update failed", err, "case_id", id)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível atualizar o caso."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "case_id", id)
	v1.WriteResult(w, r, domain.ResultOK("Caso atualizado com sucesso."))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "cases.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Cases.CaseDelete(r.Context(), ws.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "delete failed", err, "case_id", id)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível remover o caso."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "case_id", id)
	v1.WriteResult(w, r, domain.ResultOK("Caso removido com sucesso."))
}
