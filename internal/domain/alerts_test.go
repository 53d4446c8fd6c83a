package domain

import (
	"testing"

	"github.com/google/uuid"
)

func ref(title string) CaseRef { return CaseRef{ID: uuid.New(), Title: title} }

func TestBuildAlertsAllClear(t *testing.T) {
	got := BuildAlerts(nil, nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "all_ok" || got[0].Type != "success" {
		t.Fatalf("unexpected alert: %+v", got[0])
	}
	if got[0].Link != "" {
		t.Fatalf("all-clear must not carry a link, got %q", got[0].Link)
	}
}

func TestBuildAlertsOverdueLink(t *testing.T) {
	got := BuildAlerts([]CaseRef{ref("Ação A"), ref("Ação B")}, nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	a := got[0]
	if a.ID != "overdue_cases" || a.Type != "warning" {
		t.Fatalf("unexpected alert: %+v", a)
	}
	if a.Message != "Você tem 2 caso(s) com o prazo vencido." {
		t.Fatalf("message = %q", a.Message)
	}
	if a.Link != "/dashboard/casos?query=Ação A,Ação B" {
		t.Fatalf("link = %q", a.Link)
	}
}

func TestBuildAlertsStaleLink(t *testing.T) {
	got := BuildAlerts(nil, []CaseRef{ref("Um"), ref("Dois")})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	a := got[0]
	if a.ID != "inactive_cases" || a.Type != "info" {
		t.Fatalf("unexpected alert: %+v", a)
	}
	if a.Link != "/dashboard/casos?query=Um Dois" {
		t.Fatalf("link = %q", a.Link)
	}
}

func TestBuildAlertsOrder(t *testing.T) {
	got := BuildAlerts([]CaseRef{ref("x")}, []CaseRef{ref("y")})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "overdue_cases" || got[1].ID != "inactive_cases" {
		t.Fatalf("order wrong: %q then %q", got[0].ID, got[1].ID)
	}
}
