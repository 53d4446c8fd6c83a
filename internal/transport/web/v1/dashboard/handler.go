// Package dashboard aggregates the workspace's headline numbers and the
// advisory alert list.
package dashboard

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/logx"
	"github.com/nelsferreir/meuescritoriodigital/internal/transport/web/mw"
	v1 "github.com/nelsferreir/meuescritoriodigital/internal/transport/web/v1"
)

type Handler struct {
	Log        *log.Logger
	Workspaces domain.WorkspacesRepo
	Dashboard  domain.DashboardRepo
	Cases      domain.CasesRepo
}

// recentFetchLimit rows per entity feed the merged activity list.
const recentFetchLimit = 3

// deadlineWindow is how far ahead the "upcoming deadlines" card looks.
const deadlineWindow = 7 * 24 * time.Hour

type metricsResponse struct {
	TotalClients      int64             `json:"totalClients"`
	TotalCases        int64             `json:"totalCases"`
	OpenCases         int64             `json:"openCases"`
	ClosedCases       int64             `json:"closedCases"`
	UpcomingDeadlines int64             `json:"upcomingDeadlines"`
	TotalDocuments    int64             `json:"totalDocuments"`
	SuccessRate       int               `json:"successRate"`
	RecentActivity    []domain.Activity `json:"recentActivity"`
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

// Metrics runs the eight scoped reads concurrently and assembles the page.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	const op = "dashboard.metrics"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	now := time.Now()
	var (
		resp          metricsResponse
		recentClients []domain.RecentEntry
		recentCases   []domain.RecentEntry
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		resp.TotalClients, err = h.Dashboard.CountClients(ctx, ws.ID)
		return
	})
	g.Go(func() (err error) {
		resp.TotalCases, err = h.Dashboard.CountCases(ctx, ws.ID)
		return
	})
	g.Go(func() (err error) {
		resp.OpenCases, err = h.Dashboard.CountCasesByStatus(ctx, ws.ID, domain.CaseOpen)
		return
	})
	g.Go(func() (err error) {
		resp.ClosedCases, err = h.Dashboard.CountCasesByStatus(ctx, ws.ID, domain.CaseClosed)
		return
	})
	g.Go(func() (err error) {
		resp.UpcomingDeadlines, err = h.Dashboard.CountDeadlinesBetween(ctx, ws.ID, now, now.Add(deadlineWindow))
		return
	})
	g.Go(func() (err error) {
		resp.TotalDocuments, err = h.Dashboard.CountDocuments(ctx, ws.ID)
		return
	})
	g.Go(func() (err error) {
		recentClients, err = h.Dashboard.RecentClients(ctx, ws.ID, recentFetchLimit)
		return
	})
	g.Go(func() (err error) {
		recentCases, err = h.Dashboard.RecentCases(ctx, ws.ID, recentFetchLimit)
		return
	})
	if err := g.Wait(); err != nil {
		logx.Error(h.Log, reqID, op, "aggregate failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	resp.SuccessRate = domain.SuccessRate(resp.ClosedCases, resp.TotalCases)

	clientActs := make([]domain.Activity, len(recentClients))
	for i, e := range recentClients {
		clientActs[i] = domain.ClientActivity(e)
	}
	caseActs := make([]domain.Activity, len(recentCases))
	for i, e := range recentCases {
		caseActs[i] = domain.CaseActivity(e)
	}
	resp.RecentActivity = domain.MergeActivities(clientActs, caseActs)
	if resp.RecentActivity == nil {
		resp.RecentActivity = []domain.Activity{}
	}

	logx.Info(h.Log, reqID, op, "ok", "workspace_id", ws.ID)
	v1.WriteOKData(w, r, resp)
}

// Alerts evaluates the two scoped scans and renders the fixed-order list.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	const op = "dashboard.alerts"
	reqID := mw.RequestIDFromCtx(r.Context())

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	now := time.Now()
	var overdue, stale []domain.CaseRef

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		overdue, err = h.Cases.OverdueCases(ctx, ws.ID, now)
		return
	})
	g.Go(func() (err error) {
		stale, err = h.Cases.StaleCases(ctx, ws.ID, now.AddDate(0, 0, -domain.StaleAfterDays))
		return
	})
	if err := g.Wait(); err != nil {
		logx.Error(h.Log, reqID, op, "scan failed", err, "workspace_id", ws.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	alerts := domain.BuildAlerts(overdue, stale)

	logx.Info(h.Log, reqID, op, "ok", "count", len(alerts))
	v1.WriteOKData(w, r, alerts)
}
