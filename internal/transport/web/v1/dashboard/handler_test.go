package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
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

type dashboardMock struct {
	clients   int64
	cases     int64
	byStatus  map[domain.CaseStatus]int64
	documents int64
	deadlines int64
	recentCl  []domain.RecentEntry
	recentCs  []domain.RecentEntry
}

func (m *dashboardMock) CountClients(context.Context, domain.WorkspaceID) (int64, error) {
	return m.clients, nil
}
func (m *dashboardMock) CountCases(context.Context, domain.WorkspaceID) (int64, error) {
	return m.cases, nil
}
func (m *dashboardMock) CountCasesByStatus(_ context.Context, _ domain.WorkspaceID, s domain.CaseStatus) (int64, error) {
	return m.byStatus[s], nil
}
func (m *dashboardMock) CountDocuments(context.Context, domain.WorkspaceID) (int64, error) {
	return m.documents, nil
}
func (m *dashboardMock) CountDeadlinesBetween(context.Context, domain.WorkspaceID, time.Time, time.Time) (int64, error) {
	return m.deadlines, nil
}
func (m *dashboardMock) RecentClients(context.Context, domain.WorkspaceID, int) ([]domain.RecentEntry, error) {
	return m.recentCl, nil
}
func (m *dashboardMock) RecentCases(context.Context, domain.WorkspaceID, int) ([]domain.RecentEntry, error) {
	return m.recentCs, nil
}

type casesMock struct {
	overdue []domain.CaseRef
	stale   []domain.CaseRef
}

func (m *casesMock) CasesList(context.Context, domain.WorkspaceID, domain.CaseSearch) ([]domain.Case, error) {
	panic("unexpected CasesList")
}
func (m *casesMock) CaseByID(context.Context, domain.WorkspaceID, domain.CaseID) (domain.Case, error) {
	panic("unexpected CaseByID")
}
func (m *casesMock) CaseCreate(context.Context, domain.Case) (domain.Case, error) {
	panic("unexpected CaseCreate")
}
func (m *casesMock) CaseUpdate(context.Context, domain.WorkspaceID, domain.CaseID, domain.Case) error {
	panic("unexpected CaseUpdate")
}
func (m *casesMock) CaseDelete(context.Context, domain.WorkspaceID, domain.CaseID) error {
	panic("unexpected CaseDelete")
}
func (m *casesMock) CaseStats(context.Context, domain.WorkspaceID) (domain.CaseStats, error) {
	panic("unexpected CaseStats")
}
func (m *casesMock) OverdueCases(context.Context, domain.WorkspaceID, time.Time) ([]domain.CaseRef, error) {
	return m.overdue, nil
}
func (m *casesMock) StaleCases(context.Context, domain.WorkspaceID, time.Time) ([]domain.CaseRef, error) {
	return m.stale, nil
}

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	p := domain.Profile{ID: uuid.New(), Email: "dona@example.com"}
	return r.WithContext(mw.ContextWithUser(r.Context(), p))
}

func newHandler(dash *dashboardMock, cs *casesMock) *Handler {
	return &Handler{
		Log: log.New(io.Discard, "", 0),
		Workspaces: &workspacesMock{
			byOwner: func(context.Context, domain.ProfileID) (domain.Workspace, error) {
				return domain.Workspace{ID: uuid.New()}, nil
			},
		},
		Dashboard: dash,
		Cases:     cs,
	}
}

func TestMetricsAggregates(t *testing.T) {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	dash := &dashboardMock{
		clients:   12,
		cases:     8,
		byStatus:  map[domain.CaseStatus]int64{domain.CaseOpen: 5, domain.CaseClosed: 2},
		documents: 30,
		deadlines: 3,
		recentCl: []domain.RecentEntry{
			{Name: "Maria", CreatedAt: base, UpdatedAt: base},
		},
		recentCs: []domain.RecentEntry{
			{Name: "Inventário", CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
		},
	}

	rec := httptest.NewRecorder()
	newHandler(dash, &casesMock{}).Metrics(rec, authedRequest(t, "/v1/dashboard/metrics"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data metricsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	m := env.Data
	if m.TotalClients != 12 || m.TotalCases != 8 || m.OpenCases != 5 || m.ClosedCases != 2 {
		t.Fatalf("counts wrong: %+v", m)
	}
	if m.UpcomingDeadlines != 3 || m.TotalDocuments != 30 {
		t.Fatalf("counts wrong: %+v", m)
	}
	if m.SuccessRate != 25 { // round(2/8*100)
		t.Fatalf("successRate = %d, want 25", m.SuccessRate)
	}
	if len(m.RecentActivity) != 2 {
		t.Fatalf("activity len = %d, want 2", len(m.RecentActivity))
	}
	// the updated case outranks the freshly created client
	if m.RecentActivity[0].Type != "Caso atualizado" {
		t.Fatalf("first activity = %+v", m.RecentActivity[0])
	}
	if m.RecentActivity[1].Type != "Novo cliente" {
		t.Fatalf("second activity = %+v", m.RecentActivity[1])
	}
}

func TestMetricsZeroWorkspace(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&dashboardMock{byStatus: map[domain.CaseStatus]int64{}}, &casesMock{}).
		Metrics(rec, authedRequest(t, "/v1/dashboard/metrics"))

	var env struct {
		Data metricsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.SuccessRate != 0 {
		t.Fatalf("successRate = %d, want 0", env.Data.SuccessRate)
	}
	if env.Data.RecentActivity == nil || len(env.Data.RecentActivity) != 0 {
		t.Fatalf("activity = %#v, want empty slice", env.Data.RecentActivity)
	}
}

func TestAlertsOrderAndAllClear(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&dashboardMock{}, &casesMock{
		overdue: []domain.CaseRef{{ID: uuid.New(), Title: "A"}},
		stale:   []domain.CaseRef{{ID: uuid.New(), Title: "B"}},
	}).Alerts(rec, authedRequest(t, "/v1/dashboard/alerts"))

	var env struct {
		Data []domain.Alert `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 2 || env.Data[0].ID != "overdue_cases" || env.Data[1].ID != "inactive_cases" {
		t.Fatalf("alerts = %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	newHandler(&dashboardMock{}, &casesMock{}).Alerts(rec, authedRequest(t, "/v1/dashboard/alerts"))
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].ID != "all_ok" {
		t.Fatalf("alerts = %+v", env.Data)
	}
}
