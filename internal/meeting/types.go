package meeting

import (
	"strings"
	"time"
)

// MeetingType 会议类型
// MeetingType is the kind of meeting a transcript came from
type MeetingType string

const (
	TypeStandup       MeetingType = "Standup"
	TypePlanning      MeetingType = "Planning"
	TypeReview        MeetingType = "Review"
	TypeRetrospective MeetingType = "Retrospective"
	TypeKickoff       MeetingType = "Kickoff"
	TypeGeneral       MeetingType = "General"
)

// MeetingTypes lists the selectable types in display order.
var MeetingTypes = []MeetingType{
	TypeStandup,
	TypePlanning,
	TypeReview,
	TypeRetrospective,
	TypeKickoff,
	TypeGeneral,
}

type MeetingStatus string

const (
	StatusPending   MeetingStatus = "pending"
	StatusProcessed MeetingStatus = "processed"
)

type Sentiment string

const (
	SentimentProductive  Sentiment = "Productive"
	SentimentNeutral     Sentiment = "Neutral"
	SentimentChallenging Sentiment = "Challenging"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the known priorities, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Known reports whether p is one of the closed set of priorities.
func (p Priority) Known() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type ActionStatus string

const (
	ActionPending    ActionStatus = "Pending"
	ActionInProgress ActionStatus = "In Progress"
	ActionDone       ActionStatus = "Done"
)

// ActionStatuses lists the known action statuses in workflow order.
var ActionStatuses = []ActionStatus{ActionPending, ActionInProgress, ActionDone}

// Known reports whether s is one of the closed set of statuses.
func (s ActionStatus) Known() bool {
	switch s {
	case ActionPending, ActionInProgress, ActionDone:
		return true
	}
	return false
}

// Toggled returns the status a completion checkbox flips to: Done becomes
// Pending, anything else becomes Done.
func (s ActionStatus) Toggled() ActionStatus {
	if s == ActionDone {
		return ActionPending
	}
	return ActionDone
}

// Meeting 后端返回的会议记录
// Meeting is a meeting record as returned by the API
type Meeting struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Transcript      string        `json:"transcript"`
	MeetingType     MeetingType   `json:"meeting_type"`
	Participants    []string      `json:"participants"`
	Status          MeetingStatus `json:"status"`
	AISummary       string        `json:"ai_summary,omitempty"`
	KeyDecisions    []string      `json:"key_decisions,omitempty"`
	TopicsDiscussed []string      `json:"topics_discussed,omitempty"`
	Sentiment       Sentiment     `json:"meeting_sentiment,omitempty"`
	CreatedAt       string        `json:"created_at"`
	ProcessedAt     string        `json:"processed_at,omitempty"`
}

// IsPending reports whether AI-derived fields are still missing.
func (m Meeting) IsPending() bool {
	return m.Status == StatusPending
}

// CreatedDate formats created_at like "Jan 2, 2026"; unparseable values are
// returned unchanged.
func (m Meeting) CreatedDate() string {
	t, ok := ParseTimestamp(m.CreatedAt)
	if !ok {
		return m.CreatedAt
	}
	return t.Format("Jan 2, 2006")
}

// ActionItem 会议产生的行动项
// ActionItem is a task extracted from a processed meeting
type ActionItem struct {
	ID          string       `json:"_id"`
	MeetingID   string       `json:"meeting_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Owner       string       `json:"owner,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	Priority    Priority     `json:"priority"`
	Status      ActionStatus `json:"status"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
}

// IsDone reports whether the item is completed.
func (a ActionItem) IsDone() bool {
	return a.Status == ActionDone
}

// IsOverdue reports whether the item has a due date strictly before now and
// is not done. Unparseable dates are never overdue.
func (a ActionItem) IsOverdue(now time.Time) bool {
	if a.IsDone() || strings.TrimSpace(a.DueDate) == "" {
		return false
	}
	due, ok := ParseTimestamp(a.DueDate)
	if !ok {
		return false
	}
	return due.Before(now)
}

// OwnerLabel returns the owner or "Unassigned" when empty.
func (a ActionItem) OwnerLabel() string {
	if strings.TrimSpace(a.Owner) == "" {
		return "Unassigned"
	}
	return a.Owner
}

// NewMeeting is the create payload.
type NewMeeting struct {
	Title        string      `json:"title"`
	Transcript   string      `json:"transcript"`
	MeetingType  MeetingType `json:"meeting_type"`
	Participants []string    `json:"participants"`
}

// Created is the create response payload.
type Created struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
}

// Processed is the process response. AISuccess=false means the backend fell
// back to demo output; ErrorMessage carries the reason.
type Processed struct {
	AISuccess    bool   `json:"ai_success"`
	ErrorMessage string `json:"error_message,omitempty"`
	Data         struct {
		Summary         string       `json:"summary"`
		KeyDecisions    []string     `json:"key_decisions"`
		TopicsDiscussed []string     `json:"topics_discussed"`
		Sentiment       Sentiment    `json:"meeting_sentiment"`
		ActionItems     []ActionItem `json:"action_items"`
	} `json:"data"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the date and datetime forms the backend emits.
// Values without a zone are read as UTC, the way date-only strings are
// interpreted by browsers.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
