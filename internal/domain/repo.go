package domain

import (
	"context"
	"time"
)

// ClientStats backs the client list header cards.
type ClientStats struct {
	TotalClients        int64 `json:"totalClients"`
	NewClientsThisMonth int64 `json:"newClientsThisMonth"`
	ActiveClients       int64 `json:"activeClients"`
}

// CaseStats: one scoped count per status value.
type CaseStats struct {
	OpenCases    int64 `json:"openCases"`
	PendingCases int64 `json:"pendingCases"`
	ClosedCases  int64 `json:"closedCases"`
}

// CaseSearch filters the case list. Query semantics: a comma-bearing query is
// a list of exact-title substrings to OR-match; otherwise title, case_number
// and client-name substrings are OR-matched. ClientID = uuid.Nil means all.
type CaseSearch struct {
	Query    string
	ClientID ClientID
}

// CaseRef is the projection the alert evaluator works on.
type CaseRef struct {
	ID    CaseID
	Title string
}

// RecentEntry feeds the dashboard activity classifier.
type RecentEntry struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProfilesRepo interface {
	Close()
	Ping(context.Context) error
	ProfileByEmail(ctx context.Context, email string) (Profile, error)
	ProfileByID(ctx context.Context, id ProfileID) (Profile, error)
	// Provision creates profile, workspace and owner membership in a single
	// transaction: either the account exists fully or not at all.
	Provision(ctx context.Context, email, fullName string, passHash []byte, workspaceName string) (Profile, Workspace, error)
	UpdatePassword(ctx context.Context, id ProfileID, passHash []byte) error
}

type WorkspacesRepo interface {
	// WorkspaceByOwner resolves the single workspace owned by the profile.
	// Returns ErrNoWorkspace when no row matches.
	WorkspaceByOwner(ctx context.Context, owner ProfileID) (Workspace, error)
}

type ClientsRepo interface {
	// ClientsList returns newest-first; query (optional) substring-matches
	// name OR email OR phone, case-insensitively.
	ClientsList(ctx context.Context, ws WorkspaceID, query string) ([]Client, error)
	ClientByID(ctx context.Context, ws WorkspaceID, id ClientID) (Client, error)
	// ClientCreate returns ErrDuplicateDocumentNumber when the document
	// number is already registered in the workspace.
	ClientCreate(ctx context.Context, c Client) (Client, error)
	ClientUpdate(ctx context.Context, ws WorkspaceID, id ClientID, c Client) error
	ClientDelete(ctx context.Context, ws WorkspaceID, id ClientID) error
	ClientStats(ctx context.Context, ws WorkspaceID, now time.Time) (ClientStats, error)
}

type CasesRepo interface {
	CasesList(ctx context.Context, ws WorkspaceID, f CaseSearch) ([]Case, error)
	CaseByID(ctx context.Context, ws WorkspaceID, id CaseID) (Case, error)
	CaseCreate(ctx context.Context, c Case) (Case, error)
	CaseUpdate(ctx context.Context, ws WorkspaceID, id CaseID, c Case) error
	CaseDelete(ctx context.Context, ws WorkspaceID, id CaseID) error
	CaseStats(ctx context.Context, ws WorkspaceID) (CaseStats, error)
	// OverdueCases: status in {open,pending} and deadline < now.
	OverdueCases(ctx context.Context, ws WorkspaceID, now time.Time) ([]CaseRef, error)
	// StaleCases: open cases with updated_at < before.
	StaleCases(ctx context.Context, ws WorkspaceID, before time.Time) ([]CaseRef, error)
}

type DocumentsRepo interface {
	DocumentCreate(ctx context.Context, d Document) (Document, error)
	DocumentByID(ctx context.Context, ws WorkspaceID, id DocumentID) (Document, error)
	DocumentsByCase(ctx context.Context, ws WorkspaceID, caseID CaseID) ([]Document, error)
	DocumentsByWorkspace(ctx context.Context, ws WorkspaceID) ([]Document, error)
	DocumentDelete(ctx context.Context, ws WorkspaceID, id DocumentID) error
}

// DashboardRepo: the eight independent scoped reads behind the metrics page.
type DashboardRepo interface {
	CountClients(ctx context.Context, ws WorkspaceID) (int64, error)
	CountCases(ctx context.Context, ws WorkspaceID) (int64, error)
	CountCasesByStatus(ctx context.Context, ws WorkspaceID, s CaseStatus) (int64, error)
	CountDocuments(ctx context.Context, ws WorkspaceID) (int64, error)
	CountDeadlinesBetween(ctx context.Context, ws WorkspaceID, from, to time.Time) (int64, error)
	RecentClients(ctx context.Context, ws WorkspaceID, limit int) ([]RecentEntry, error)
	RecentCases(ctx context.Context, ws WorkspaceID, limit int) ([]RecentEntry, error)
}
