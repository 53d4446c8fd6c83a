package client

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
)

type workspacesMock struct {
	byOwner func(ctx context.Context, owner domain.ProfileID) (domain.Workspace, error)
}

func (m *workspacesMock) WorkspaceByOwner(ctx context.Context, owner domain.ProfileID) (domain.Workspace, error) {
	return m.byOwner(ctx, owner)
}

type clientsMock struct {
	list   func(ctx context.Context, ws domain.WorkspaceID, query string) ([]domain.Client, error)
	byID   func(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID) (domain.Client, error)
	create func(ctx context.Context, c domain.Client) (domain.Client, error)
	update func(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID, c domain.Client) error
	del    func(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID) error
	stats  func(ctx context.Context, ws domain.WorkspaceID, now time.Time) (domain.ClientStats, error)
}

func (m *clientsMock) ClientsList(ctx context.Context, ws domain.WorkspaceID, query string) ([]domain.Client, error) {
	return m.list(ctx, ws, query)
}
func (m *clientsMock) ClientByID(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID) (domain.Client, error) {
	return m.byID(ctx, ws, id)
}
func (m *clientsMock) ClientCreate(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}
func (m *clientsMock) ClientUpdate(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID, c domain.Client) error {
	return m.update(ctx, ws, id, c)
}
func (m *clientsMock) ClientDelete(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID) error {
	return m.del(ctx, ws, id)
}
func (m *clientsMock) ClientStats(ctx context.Context, ws domain.WorkspaceID, now time.Time) (domain.ClientStats, error) {
	return m.stats(ctx, ws, now)
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, rd)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	p := domain.Profile{ID: uuid.New(), Email: "dona@example.com"}
	return r.WithContext(mw.ContextWithUser(r.Context(), p))
}

func fixedWorkspace(id domain.WorkspaceID) *workspacesMock {
	return &workspacesMock{
		byOwner: func(context.Context, domain.ProfileID) (domain.Workspace, error) {
			return domain.Workspace{ID: id}, nil
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

func TestCreateRejectsShortName(t *testing.T) {
	wsID := uuid.New()
	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Clients: &clientsMock{
			create: func(context.Context, domain.Client) (domain.Client, error) {
				t.Fatal("repository reached with invalid name")
				return domain.Client{}, nil
			},
		},
	}

	r := authedRequest(t, http.MethodPost, "/v1/clients", `{"name":"  ab "}`)
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	res := decodeResult(t, rec)
	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
	if !strings.Contains(res.Message, "pelo menos 3 caracteres") {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestCreateDuplicateDocumentNumber(t *testing.T) {
	wsID := uuid.New()
	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Clients: &clientsMock{
			create: func(context.Context, domain.Client) (domain.Client, error) {
				return domain.Client{}, domain.ErrDuplicateDocumentNumber
			},
		},
	}

	r := authedRequest(t, http.MethodPost, "/v1/clients", `{"name":"Maria Silva","documentNumber":"123.456.789-00"}`)
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	res := decodeResult(t, rec)
	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
	if !strings.Contains(res.Message, "CPF/CNPJ") {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestCreateScopesToWorkspace(t *testing.T) {
	wsID := uuid.New()
	var got domain.Client
	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Clients: &clientsMock{
			create: func(_ context.Context, c domain.Client) (domain.Client, error) {
				got = c
				c.ID = uuid.New()
				return c, nil
			},
		},
	}

	r := authedRequest(t, http.MethodPost, "/v1/clients", `{"name":"  Maria Silva  ","email":"m@x.com"}`)
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	if res := decodeResult(t, rec); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if got.WorkspaceID != wsID {
		t.Fatalf("workspace = %s, want %s", got.WorkspaceID, wsID)
	}
	if got.Name != "Maria Silva" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}
}

func TestGetMalformedIDIsNotFound(t *testing.T) {
	wsID := uuid.New()
	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Clients: &clientsMock{
			byID: func(context.Context, domain.WorkspaceID, domain.ClientID) (domain.Client, error) {
				t.Fatal("repository reached with malformed id")
				return domain.Client{}, nil
			},
		},
	}

	r := authedRequest(t, http.MethodGet, "/v1/clients/not-a-uuid", "")
	r.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	h.Get(rec, r)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListWithoutWorkspace(t *testing.T) {
	h := &Handler{
		Log: testLogger(),
		Workspaces: &workspacesMock{
			byOwner: func(context.Context, domain.ProfileID) (domain.Workspace, error) {
				return domain.Workspace{}, domain.ErrNoWorkspace
			},
		},
		Clients: &clientsMock{},
	}

	r := authedRequest(t, http.MethodGet, "/v1/clients", "")
	rec := httptest.NewRecorder()
	h.List(rec, r)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListPassesQueryThrough(t *testing.T) {
	wsID := uuid.New()
	var gotQuery string
	h := &Handler{
		Log:        testLogger(),
		Workspaces: fixedWorkspace(wsID),
		Clients: &clientsMock{
			list: func(_ context.Context, _ domain.WorkspaceID, query string) ([]domain.Client, error) {
				gotQuery = query
				return nil, nil
			},
		},
	}

	r := authedRequest(t, http.MethodGet, "/v1/clients?query=maria", "")
	rec := httptest.NewRecorder()
	h.List(rec, r)

	if gotQuery != "maria" {
		t.Fatalf("query = %q, want maria", gotQuery)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("empty list not rendered as []: %s", rec.Body.String())
	}
}
