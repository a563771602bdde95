package meeting

import (
	"strings"
	"time"
)

// ActionFilter is the dashboard filter set. Empty fields mean "no
// constraint" and are left out of the query string.
type ActionFilter struct {
	Owner     string       `url:"owner,omitempty"`
	Priority  Priority     `url:"priority,omitempty"`
	Status    ActionStatus `url:"status,omitempty"`
	MeetingID string       `url:"meeting_id,omitempty"`
}

// IsZero reports whether no constraint is set.
func (f ActionFilter) IsZero() bool {
	return f == ActionFilter{}
}

// Matches reports whether a satisfies every set constraint. Owner compares
// case-insensitively, matching the server.
func (f ActionFilter) Matches(a ActionItem) bool {
	if f.Owner != "" && !strings.EqualFold(strings.TrimSpace(a.Owner), strings.TrimSpace(f.Owner)) {
		return false
	}
	if f.Priority != "" && a.Priority != f.Priority {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.MeetingID != "" && a.MeetingID != f.MeetingID {
		return false
	}
	return true
}

// ActionPatch is a partial update; nil fields are not sent.
type ActionPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Owner       *string       `json:"owner,omitempty"`
	DueDate     *string       `json:"due_date,omitempty"`
	Priority    *Priority     `json:"priority,omitempty"`
	Status      *ActionStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the patch carries no field.
func (p ActionPatch) IsEmpty() bool {
	return p == ActionPatch{}
}

// StatusPatch builds the single-field update sent by the completion toggle.
func StatusPatch(s ActionStatus) ActionPatch {
	return ActionPatch{Status: &s}
}

// Draft holds the editable fields of one row while it is in edit mode.
type Draft struct {
	Owner    string
	DueDate  string
	Priority Priority
	Status   ActionStatus
}

// DraftFrom seeds a draft from the current item.
func DraftFrom(a ActionItem) Draft {
	return Draft{
		Owner:    a.Owner,
		DueDate:  a.DueDate,
		Priority: a.Priority,
		Status:   a.Status,
	}
}

// Patch sends exactly the four draft fields.
func (d Draft) Patch() ActionPatch {
	owner, due, priority, status := d.Owner, d.DueDate, d.Priority, d.Status
	return ActionPatch{
		Owner:    &owner,
		DueDate:  &due,
		Priority: &priority,
		Status:   &status,
	}
}

// Stats are derived from the list currently on screen.
type Stats struct {
	Total    int
	Done     int
	HighOpen int
	Overdue  int
}

// ComputeStats counts totals, completed items, open high-priority items and
// overdue items as of now.
func ComputeStats(items []ActionItem, now time.Time) Stats {
	s := Stats{Total: len(items)}
	for _, a := range items {
		if a.IsDone() {
			s.Done++
			continue
		}
		if a.Priority == PriorityHigh {
			s.HighOpen++
		}
		if a.IsOverdue(now) {
			s.Overdue++
		}
	}
	return s
}

// OwnerOptions returns the distinct non-empty owners of items in first-seen
// order. Callers pass the already-filtered list, so the options follow the
// active filter.
func OwnerOptions(items []ActionItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, a := range items {
		if a.Owner == "" {
			continue
		}
		if _, ok := seen[a.Owner]; ok {
			continue
		}
		seen[a.Owner] = struct{}{}
		out = append(out, a.Owner)
	}
	return out
}

// ActionsFor returns the items of all whose meeting_id equals meetingID, in
// their original order.
func ActionsFor(meetingID string, all []ActionItem) []ActionItem {
	var out []ActionItem
	for _, a := range all {
		if a.MeetingID == meetingID {
			out = append(out, a)
		}
	}
	return out
}

// RemoveAction returns items without the entry whose ID is id.
func RemoveAction(items []ActionItem, id string) []ActionItem {
	out := make([]ActionItem, 0, len(items))
	for _, a := range items {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}
