package alerts

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Alert is one feed entry handed to the presentation layer.
type Alert struct {
	ID          string    `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	Kind        Kind      `json:"kind"`
	Status      Status    `json:"status,omitempty"`
	Label       string    `json:"label"`
	Detail      string    `json:"detail,omitempty"`
	Due         string    `json:"due"`
	MinutesLate int       `json:"minutes_late,omitempty"`
	MinutesLeft int       `json:"minutes_left,omitempty"`
}

// Feed is the ordered alert feed for one patient at one sampled now.
type Feed struct {
	Emergencies []Alert `json:"emergencies"`
	Alerts      []Alert `json:"alerts"`
	// TotalComputed counts every notification-worthy entry before
	// dismissal filtering, emergencies included.
	TotalComputed  int `json:"total_computed"`
	DismissedCount int `json:"dismissed_count"`
}

// BuildFeed merges classified schedule events and emergency events into one
// ordered feed: emergencies first, then missed most-overdue first, then due
// now, then upcoming soonest first. Upcoming entries outside the near-due
// window are not notification-worthy and stay out of the feed. Dismissed
// entries are dropped after counting; emergencies are never dismissible.
func BuildFeed(classified []Classified, emergencies []Event, dismissed map[string]bool, nearDueWindow time.Duration) Feed {
	feed := Feed{Emergencies: []Alert{}, Alerts: []Alert{}}

	var entries []Classified
	for _, c := range classified {
		switch c.Status {
		case StatusCompleted:
			continue
		case StatusUpcoming:
			if time.Duration(c.SecondsDelta)*time.Second > nearDueWindow {
				continue
			}
		}
		entries = append(entries, c)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := statusRank(entries[i].Status), statusRank(entries[j].Status)
		if ri != rj {
			return ri < rj
		}
		// Within missed this puts the most negative delta first; within
		// upcoming, the soonest.
		return entries[i].SecondsDelta < entries[j].SecondsDelta
	})

	for _, ev := range emergencies {
		feed.Emergencies = append(feed.Emergencies, Alert{
			ID:        AlertID(ev.PatientID, ev.Label, ev.Due),
			PatientID: ev.PatientID,
			Kind:      ev.Kind,
			Label:     ev.Label,
			Detail:    ev.Detail,
			Due:       FormatClock(ev.Due),
		})
	}
	feed.TotalComputed = len(feed.Emergencies) + len(entries)

	for _, c := range entries {
		id := AlertID(c.PatientID, c.Label, c.Due)
		if dismissed[id] {
			feed.DismissedCount++
			continue
		}
		feed.Alerts = append(feed.Alerts, Alert{
			ID:          id,
			PatientID:   c.PatientID,
			Kind:        c.Kind,
			Status:      c.Status,
			Label:       c.Label,
			Detail:      c.Detail,
			Due:         FormatClock(c.Due),
			MinutesLate: c.MinutesLate(),
			MinutesLeft: c.MinutesLeft,
		})
	}
	return feed
}

func statusRank(s Status) int {
	switch s {
	case StatusMissed:
		return 0
	case StatusDueNow:
		return 1
	case StatusUpcoming:
		return 2
	default:
		return 3
	}
}
