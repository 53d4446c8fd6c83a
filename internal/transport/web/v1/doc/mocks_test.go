package doc

import (
	"context"
	"io"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

type workspacesMock struct {
	byOwner func(ctx context.Context, owner domain.ProfileID) (domain.Workspace, error)
}

func (m *workspacesMock) WorkspaceByOwner(ctx context.Context, owner domain.ProfileID) (domain.Workspace, error) {
	return m.byOwner(ctx, owner)
}

type casesMock struct {
	byID func(ctx context.Context, ws domain.WorkspaceID, id domain.CaseID) (domain.Case, error)
}

func (m *casesMock) CasesList(context.Context, domain.WorkspaceID, domain.CaseSearch) ([]domain.Case, error) {
	panic("unexpected CasesList")
}
func (m *casesMock) CaseByID(ctx context.Context, ws domain.WorkspaceID, id domain.CaseID) (domain.Case, error) {
	return m.byID(ctx, ws, id)
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
	panic("unexpected OverdueCases")
}
func (m *casesMock) StaleCases(context.Context, domain.WorkspaceID, time.Time) ([]domain.CaseRef, error) {
	panic("unexpected StaleCases")
}

type documentsMock struct {
	create      func(ctx context.Context, d domain.Document) (domain.Document, error)
	byID        func(ctx context.Context, ws domain.WorkspaceID, id domain.DocumentID) (domain.Document, error)
	byCase      func(ctx context.Context, ws domain.WorkspaceID, caseID domain.CaseID) ([]domain.Document, error)
	byWorkspace func(ctx context.Context, ws domain.WorkspaceID) ([]domain.Document, error)
	delete      func(ctx context.Context, ws domain.WorkspaceID, id domain.DocumentID) error
}

func (m *documentsMock) DocumentCreate(ctx context.Context, d domain.Document) (domain.Document, error) {
	return m.create(ctx, d)
}
func (m *documentsMock) DocumentByID(ctx context.Context, ws domain.WorkspaceID, id domain.DocumentID) (domain.Document, error) {
	return m.byID(ctx, ws, id)
}
func (m *documentsMock) DocumentsByCase(ctx context.Context, ws domain.WorkspaceID, caseID domain.CaseID) ([]domain.Document, error) {
	return m.byCase(ctx, ws, caseID)
}
func (m *documentsMock) DocumentsByWorkspace(ctx context.Context, ws domain.WorkspaceID) ([]domain.Document, error) {
	return m.byWorkspace(ctx, ws)
}
func (m *documentsMock) DocumentDelete(ctx context.Context, ws domain.WorkspaceID, id domain.DocumentID) error {
	return m.delete(ctx, ws, id)
}

type storageMock struct {
	put     func(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	presign func(ctx context.Context, key string, ttl time.Duration) (string, error)
	del     func(ctx context.Context, key string) error
}

func (m *storageMock) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.put(ctx, key, r, size, contentType)
}
func (m *storageMock) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return m.presign(ctx, key, ttl)
}
func (m *storageMock) Delete(ctx context.Context, key string) error { return m.del(ctx, key) }
func (m *storageMock) Ping(context.Context) error                   { return nil }
