package domain

import (
	"fmt"
	"strings"
)

// Alert is one advisory entry, ordered overdue → stale → all-clear.
type Alert struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // warning | info | success
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// StaleAfterDays: open cases untouched this long are flagged.
const StaleAfterDays = 30

// BuildAlerts assembles the advisory list from the two scoped scans.
// Each group collapses into a single aggregate entry whose link re-renders
// the case list pre-filtered by the matching titles (comma-joined titles are
// parsed back as exact-title tokens by the case search).
func BuildAlerts(overdue, stale []CaseRef) []Alert {
	var alerts []Alert

	if len(overdue) > 0 {
		alerts = append(alerts, Alert{
			ID:      "overdue_cases",
			Type:    "warning",
			Message: fmt.Sprintf("Você tem %d caso(s) com o prazo vencido.", len(overdue)),
			Link:    "/dashboard/casos?query=" + joinTitles(overdue, ","),
		})
	}

	if len(stale) > 0 {
		alerts = append(alerts, Alert{
			ID:      "inactive_cases",
			Type:    "info",
			Message: fmt.Sprintf("%d caso(s) não são atualizados há mais de 30 dias.", len(stale)),
			Link:    "/dashboard/casos?query=" + joinTitles(stale, " "),
		})
	}

	if len(alerts) == 0 {
		alerts = append(alerts, Alert{
			ID:      "all_ok",
			Type:    "success",
			Message: "Nenhum alerta crítico para o sistema.",
		})
	}
	return alerts
}

func joinTitles(refs []CaseRef, sep string) string {
	titles := make([]string, len(refs))
	for i, r := range refs {
		titles[i] = r.Title
	}
	return strings.Join(titles, sep)
}
