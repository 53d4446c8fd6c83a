package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type clientForm struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"documentNumber"`
}

func readClientForm(r *http.Request) (clientForm, bool) {
	var f clientForm
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			return f, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return f, false
		}
		f.Name = r.FormValue("name")
		f.Email = r.FormValue("email")
		f.Phone = r.FormValue("phone")
		f.DocumentNumber = r.FormValue("documentNumber")
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.DocumentNumber = strings.TrimSpace(f.DocumentNumber)
	return f, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "client.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	f, ok := readClientForm(r)
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidName(f.Name) {
		v1.WriteResult(w, r, domain.ResultFail("O nome é obrigatório e precisa ter pelo menos 3 caracteres."))
		return
	}

	c, err := h.Clients.ClientCreate(r.Context(), domain.Client{
		WorkspaceID:    ws.ID,
		Name:           f.Name,
		Email:          f.Email,
		Phone:          f.Phone,
		DocumentNumber: f.DocumentNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocumentNumber) {
			v1.WriteResult(w, r, domain.ResultFail("Já existe um cliente cadastrado com este CPF/CNPJ."))
			return
		}
		logx.Error(h.Log, reqID, op, "create failed", err, "workspace_id", ws.ID)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível cadastrar o cliente."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "client_id", c.ID)
	v1.WriteResult(w, r, domain.ResultOK("Cliente cadastrado com sucesso."))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "client.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f, ok := readClientForm(r)
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidName(f.Name) {
		v1.WriteResult(w, r, domain.ResultFail("O nome é obrigatório e precisa ter pelo menos 3 caracteres."))
		return
	}

	err := h.Clients.ClientUpdate(r.Context(), ws.ID, id, domain.Client{
		Name:           f.Name,
		Email:          f.Email,
		Phone:          f.Phone,
		DocumentNumber: f.DocumentNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateDocumentNumber):
			v1.WriteResult(w, r, domain.ResultFail("Já existe um cliente cadastrado com este CPF/CNPJ."))
		case errors.Is(err, domain.ErrNotFound):
			v1.WriteDomainError(w, r, err)
		default:
			logx.Error(h.Log, reqID, op, "update failed", err, "client_id", id)
			v1.WriteResult(w, r, domain.ResultFail("Não foi possível atualizar o cliente."))
		}
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "client_id", id)
	v1.WriteResult(w, r, domain.ResultOK("Cliente atualizado com sucesso."))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "client.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Clients.ClientDelete(r.Context(), ws.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "delete failed", err, "client_id", id)
		v1.WriteResult(w, r, domain.ResultFail("Não foi possível remover o cliente."))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "client_id", id)
	v1.WriteResult(w, r, domain.ResultOK("Cliente removido com sucesso."))
}
