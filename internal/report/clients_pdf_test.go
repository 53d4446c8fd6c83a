package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

func TestTotalPages(t *testing.T) {
	perPage := rowsPerPage() - 1
	if perPage < 1 {
		t.Fatalf("rowsPerPage() = %d, table cannot fit a data row", rowsPerPage())
	}

	cases := []struct {
		rows, want int
	}{
		{0, 1},
		{1, 1},
		{perPage, 1},
		{perPage + 1, 2},
		{3 * perPage, 3},
		{3*perPage + 1, 4},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.rows); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.rows, got, tc.want)
		}
	}
}

func sampleClients(n int) []domain.Client {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	out := make([]domain.Client, n)
	for i := range out {
		out[i] = domain.Client{
			Name:      "Cliente",
			Email:     "c@example.com",
			Phone:     "11 99999-0000",
			CreatedAt: now,
		}
	}
	return out
}

func TestClientsPDFRenders(t *testing.T) {
	b, err := ClientsPDF(sampleClients(5), time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ClientsPDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF, got %q", b[:8])
	}
}

func TestClientsPDFEmptyRoster(t *testing.T) {
	b, err := ClientsPDF(nil, time.Now())
	if err != nil {
		t.Fatalf("ClientsPDF: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty output for empty roster")
	}
}

func TestClientsPDFBlankFieldsDoNotFail(t *testing.T) {
	clients := []domain.Client{{Name: "Sem Contato", CreatedAt: time.Now()}}
	if _, err := ClientsPDF(clients, time.Now()); err != nil {
		t.Fatalf("ClientsPDF: %v", err)
	}
}

func TestClientsPDFMultiPage(t *testing.T) {
	perPage := rowsPerPage() - 1
	b, err := ClientsPDF(sampleClients(perPage*2+1), time.Now())
	if err != nil {
		t.Fatalf("ClientsPDF: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("no output")
	}
}
