package doc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
)

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func authedRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, body)
	p := domain.Profile{ID: uuid.New(), Email: "dona@example.com"}
	return r.WithContext(mw.ContextWithUser(r.Context(), p))
}

func fixedWorkspace(id domain.WorkspaceID) *workspacesMock {
	return &workspacesMock{
		byOwner: func(context.Context, domain.ProfileID) (domain.Workspace, error) {
			return domain.Workspace{ID: id, Name: "Escritório"}, nil
		},
	}
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) domain.ActionResult {
	t.Helper()
	var env struct {
		Response domain.ActionResult `json:"response"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env.Response
}

func multipartBody(t *testing.T, caseID string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("caseId", caseID); err != nil {
		t.Fatal(err)
	}
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestDeleteFailsClosedOnStorageError(t *testing.T) {
	wsID := uuid.New()
	docID := uuid.New()
	metadataDeleted := false

	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Documents: &documentsMock{
			byID: func(_ context.Context, ws domain.WorkspaceID, id domain.DocumentID) (domain.Document, error) {
				if ws != wsID || id != docID {
					t.Fatalf("lookup got ws=%s id=%s", ws, id)
				}
				return domain.Document{ID: docID, WorkspaceID: wsID, Path: "k/p/1-a.pdf"}, nil
			},
			delete: func(context.Context, domain.WorkspaceID, domain.DocumentID) error {
				metadataDeleted = true
				return nil
			},
		},
		Storage: &storageMock{
			del: func(_ context.Context, key string) error {
				return errors.New("object store down")
			},
		},
	}

	r := authedRequest(t, http.MethodDelete, "/v1/documents/"+docID.String(), nil)
	r.SetPathValue("id", docID.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, r)

	if metadataDeleted {
		t.Fatal("metadata row deleted although blob removal failed")
	}
	res := decodeResult(t, rec)
	if res.Success {
		t.Fatalf("expected failure result, got %+v", res)
	}
}

func TestDeleteRemovesBlobThenRow(t *testing.T) {
	wsID := uuid.New()
	docID := uuid.New()
	var order []string

	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Documents: &documentsMock{
			byID: func(context.Context, domain.WorkspaceID, domain.DocumentID) (domain.Document, error) {
				return domain.Document{ID: docID, WorkspaceID: wsID, Path: "k/p/1-a.pdf"}, nil
			},
			delete: func(context.Context, domain.WorkspaceID, domain.DocumentID) error {
				order = append(order, "row")
				return nil
			},
		},
		Storage: &storageMock{
			del: func(_ context.Context, key string) error {
				order = append(order, "blob")
				return nil
			},
		},
	}

	r := authedRequest(t, http.MethodDelete, "/v1/documents/"+docID.String(), nil)
	r.SetPathValue("id", docID.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, r)

	if len(order) != 2 || order[0] != "blob" || order[1] != "row" {
		t.Fatalf("order = %v, want [blob row]", order)
	}
	if res := decodeResult(t, rec); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestUploadCompensatesWhenMetadataFails(t *testing.T) {
	wsID := uuid.New()
	caseID := uuid.New()
	var putKey, deletedKey string

	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Cases: &casesMock{
			byID: func(context.Context, domain.WorkspaceID, domain.CaseID) (domain.Case, error) {
				return domain.Case{ID: caseID, WorkspaceID: wsID}, nil
			},
		},
		Documents: &documentsMock{
			create: func(context.Context, domain.Document) (domain.Document, error) {
				return domain.Document{}, errors.New("insert failed")
			},
		},
		Storage: &storageMock{
			put: func(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
				putKey = key
				return nil
			},
			del: func(_ context.Context, key string) error {
				deletedKey = key
				return nil
			},
		},
	}

	body, ct := multipartBody(t, caseID.String(), "contrato.pdf", []byte("dummy"))
	r := authedRequest(t, http.MethodPost, "/v1/documents", body)
	r.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, r)

	if putKey == "" {
		t.Fatal("blob never uploaded")
	}
	if deletedKey != putKey {
		t.Fatalf("compensating delete key = %q, want %q", deletedKey, putKey)
	}
	if res := decodeResult(t, rec); res.Success {
		t.Fatalf("expected failure result, got %+v", res)
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	wsID := uuid.New()
	caseID := uuid.New()

	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Cases: &casesMock{
			byID: func(context.Context, domain.WorkspaceID, domain.CaseID) (domain.Case, error) {
				return domain.Case{ID: caseID, WorkspaceID: wsID}, nil
			},
		},
		Documents: &documentsMock{},
		Storage: &storageMock{
			put: func(context.Context, string, io.Reader, int64, string) error {
				t.Fatal("storage touched for empty file")
				return nil
			},
		},
	}

	body, ct := multipartBody(t, caseID.String(), "vazio.pdf", nil)
	r := authedRequest(t, http.MethodPost, "/v1/documents", body)
	r.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, r)

	if res := decodeResult(t, rec); res.Success {
		t.Fatalf("expected failure result, got %+v", res)
	}
}

func TestUploadKeyShape(t *testing.T) {
	ws := uuid.New()
	caseID := uuid.New()
	now := time.UnixMilli(1717243200123)

	key := storageKey(ws, caseID, "contrato social.pdf", now)
	want := ws.String() + "/" + caseID.String() + "/1717243200123-contrato social.pdf"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
	if !strings.HasPrefix(key, ws.String()+"/") {
		t.Fatalf("key not workspace-prefixed: %q", key)
	}
}

func TestListPresignsEveryRow(t *testing.T) {
	wsID := uuid.New()
	docs := []domain.Document{
		{ID: uuid.New(), Path: "a", Name: "a.pdf"},
		{ID: uuid.New(), Path: "b", Name: "b.pdf"},
	}

	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Documents: &documentsMock{
			byWorkspace: func(context.Context, domain.WorkspaceID) ([]domain.Document, error) {
				out := make([]domain.Document, len(docs))
				copy(out, docs)
				return out, nil
			},
		},
		Storage: &storageMock{
			presign: func(_ context.Context, key string, ttl time.Duration) (string, error) {
				if ttl != domain.SignedURLTTL {
					t.Errorf("ttl = %s, want %s", ttl, domain.SignedURLTTL)
				}
				return "https://signed/" + key, nil
			},
		},
	}

	r := authedRequest(t, http.MethodGet, "/v1/documents", nil)
	rec := httptest.NewRecorder()
	h.List(rec, r)

	var env struct {
		Data []domain.Document `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 2 {
		t.Fatalf("len = %d, want 2", len(env.Data))
	}
	for _, d := range env.Data {
		if d.DownloadURL != "https://signed/"+d.Path {
			t.Fatalf("download url = %q for path %q", d.DownloadURL, d.Path)
		}
	}
}
