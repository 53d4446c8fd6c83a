package domain

import (
	"math"
	"sort"
	"time"
)

// Activity is one entry of the dashboard's recent-activity feed.
type Activity struct {
	Type   string    `json:"type"`
	Name   string    `json:"name"`
	Time   time.Time `json:"time"`
	Entity string    `json:"entity"` // "client" | "case"
}

// A row whose updated_at trails created_at by more than this is an update;
// anything inside the gap is the insert itself touching both columns.
const activityUpdateGap = 1000 * time.Millisecond

// RecentActivityLimit caps the merged feed.
const RecentActivityLimit = 4

func ClientActivity(e RecentEntry) Activity {
	typ := "Novo cliente"
	if e.UpdatedAt.Sub(e.CreatedAt) > activityUpdateGap {
		typ = "Cliente atualizado"
	}
	return Activity{Type: typ, Name: e.Name, Time: e.UpdatedAt, Entity: "client"}
}

func CaseActivity(e RecentEntry) Activity {
	typ := "Novo caso"
	if e.UpdatedAt.Sub(e.CreatedAt) > activityUpdateGap {
		typ = "Caso atualizado"
	}
	return Activity{Type: typ, Name: e.Name, Time: e.UpdatedAt, Entity: "case"}
}

// MergeActivities sorts descending by time and truncates to the feed limit.
func MergeActivities(lists ...[]Activity) []Activity {
	var all []Activity
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Time.After(all[j].Time) })
	if len(all) > RecentActivityLimit {
		all = all[:RecentActivityLimit]
	}
	return all
}

// SuccessRate is round(closed/total*100); 0 when there are no cases.
func SuccessRate(closed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(closed) / float64(total) * 100))
}
