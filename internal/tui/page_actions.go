package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meetingmind/internal/dashboard"
	"meetingmind/internal/meeting"
)

const (
	editOwner = iota
	editDue
	editPriority
	editStatus
	editFieldCount
)

// actionsPage 行动项页的光标与编辑控件
// actionsPage holds the dashboard cursor and edit widgets
type actionsPage struct {
	cursor    int
	editingID string
	editField int
	owner     textinput.Model
	due       textinput.Model
}

func newActionsPage() actionsPage {
	owner := textinput.New()
	owner.CharLimit = 100
	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 32
	return actionsPage{owner: owner, due: due}
}

func (p *actionsPage) clamp(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *actionsPage) setEditField(i int) {
	p.editField = (i + editFieldCount) % editFieldCount
	p.owner.Blur()
	p.due.Blur()
	switch p.editField {
	case editOwner:
		p.owner.Focus()
	case editDue:
		p.due.Focus()
	}
}

// cycle 返回 options 中 current 的下一个值
// cycle returns the option after current, wrapping around
func cycle[T comparable](options []T, current T) T {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (a App) mutate(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: fn()}
	}
}

func (a App) setFilter(f meeting.ActionFilter) tea.Cmd {
	board, ctx := a.board, a.ctx
	return func() tea.Msg {
		return loadedMsg{page: PageActions, err: board.SetFilter(ctx, f)}
	}
}

func (a App) updateActionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := a.board.Snapshot()
	board, ctx := a.board, a.ctx

	if snap.PendingDelete != "" {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			return a, a.mutate(func() error { return board.ConfirmDelete(ctx) })
		case key.Matches(msg, a.keys.Cancel):
			board.CancelDelete()
		}
		return a, nil
	}

	if a.actions.editingID != "" {
		return a.updateActionEdit(msg)
	}

	var current *dashboard.Row
	if a.actions.cursor < len(snap.Rows) {
		current = &snap.Rows[a.actions.cursor]
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		a.actions.cursor--
		a.actions.clamp(len(snap.Rows))
	case key.Matches(msg, a.keys.Down):
		a.actions.cursor++
		a.actions.clamp(len(snap.Rows))
	case key.Matches(msg, a.keys.Toggle):
		if current != nil {
			id := current.ID
			return a, a.mutate(func() error { return board.ToggleDone(ctx, id) })
		}
	case key.Matches(msg, a.keys.Edit):
		if current != nil && board.BeginEdit(current.ID) {
			d := meeting.DraftFrom(current.ActionItem)
			a.actions.editingID = current.ID
			a.actions.owner.SetValue(d.Owner)
			a.actions.due.SetValue(d.DueDate)
			a.actions.setEditField(editOwner)
		}
	case key.Matches(msg, a.keys.Delete):
		if current != nil {
			board.RequestDelete(current.ID)
		}
	case key.Matches(msg, a.keys.Filter):
		f := snap.Filter
		switch msg.String() {
		case "o":
			f.Owner = cycle(append([]string{""}, snap.Owners...), f.Owner)
		case "p":
			f.Priority = cycle(append([]meeting.Priority{""}, meeting.Priorities...), f.Priority)
		case "s":
			f.Status = cycle(append([]meeting.ActionStatus{""}, meeting.ActionStatuses...), f.Status)
		}
		a.actions.cursor = 0
		return a, a.setFilter(f)
	case key.Matches(msg, a.keys.Reset):
		a.actions.cursor = 0
		return a, a.setFilter(meeting.ActionFilter{})
	}
	return a, nil
}

func (a App) updateActionEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board, ctx, id := a.board, a.ctx, a.actions.editingID

	switch {
	case msg.Type == tea.KeyEsc:
		board.CancelEdit(id)
		a.actions.editingID = ""
		return a, nil
	case key.Matches(msg, a.keys.Save):
		a.actions.editingID = ""
		return a, a.mutate(func() error { return board.SaveEdit(ctx, id) })
	case key.Matches(msg, a.keys.NextPage), key.Matches(msg, a.keys.NextField):
		a.actions.setEditField(a.actions.editField + 1)
		return a, nil
	case key.Matches(msg, a.keys.PrevPage), key.Matches(msg, a.keys.PrevField):
		a.actions.setEditField(a.actions.editField - 1)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.actions.editField {
	case editOwner:
		a.actions.owner, cmd = a.actions.owner.Update(msg)
		owner := a.actions.owner.Value()
		board.EditDraft(id, func(d *meeting.Draft) { d.Owner = owner })
	case editDue:
		a.actions.due, cmd = a.actions.due.Update(msg)
		due := a.actions.due.Value()
		board.EditDraft(id, func(d *meeting.Draft) { d.DueDate = due })
	case editPriority:
		if key.Matches(msg, a.keys.Left) || key.Matches(msg, a.keys.Right) {
			board.EditDraft(id, func(d *meeting.Draft) { d.Priority = cycle(meeting.Priorities, d.Priority) })
		}
	case editStatus:
		if key.Matches(msg, a.keys.Left) || key.Matches(msg, a.keys.Right) {
			board.EditDraft(id, func(d *meeting.Draft) { d.Status = cycle(meeting.ActionStatuses, d.Status) })
		}
	}
	return a, cmd
}

func (a App) viewActions() string {
	snap := a.board.Snapshot()
	t := a.theme

	stat := func(label string, n int, color lipgloss.Color) string {
		return t.StatStyle.Render(fmt.Sprintf("%s\n%s", t.MutedStyle.Render(label), lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprint(n))))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat(a.locale.T("actions.stat.total"), snap.Stats.Total, t.Text),
		stat(a.locale.T("actions.stat.done"), snap.Stats.Done, t.Success),
		stat(a.locale.T("actions.stat.high"), snap.Stats.HighOpen, t.Danger),
		stat(a.locale.T("actions.stat.overdue"), snap.Stats.Overdue, t.Warning),
	)

	all := a.locale.T("actions.filter.all")
	filterValue := func(v string, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	filters := t.MutedStyle.Render(fmt.Sprintf("%s: %s · %s: %s · %s: %s",
		a.locale.T("actions.filter.owner"), filterValue(snap.Filter.Owner, a.locale.T("actions.filter.all_owners")),
		a.locale.T("actions.filter.priority"), filterValue(string(snap.Filter.Priority), all),
		a.locale.T("actions.filter.status"), filterValue(string(snap.Filter.Status), all),
	))

	parts := []string{
		t.TitleStyle.Render(a.locale.T("actions.heading")),
		t.MutedStyle.Render(a.locale.T("actions.subheading")),
		stats,
		filters,
		"",
	}

	switch {
	case snap.Loading && !snap.Loaded:
		parts = append(parts, a.spin.View()+" "+a.locale.T("status.loading"))
	case len(snap.Rows) == 0:
		parts = append(parts,
			t.MutedStyle.Render(a.locale.T("actions.empty")),
			t.MutedStyle.Render(a.locale.T("actions.empty_hint")))
	default:
		for i, row := range snap.Rows {
			parts = append(parts, a.renderActionRow(i, row, snap.PendingDelete == row.ID))
		}
	}
	return strings.Join(parts, "\n")
}

func (a App) renderActionRow(i int, row dashboard.Row, confirming bool) string {
	t := a.theme
	line := RenderActionLine(row.ActionItem, t, a.locale.T("actions.unassigned"))
	if row.Overdue {
		line += " " + t.Badge(a.locale.T("actions.overdue"), t.Danger)
	}
	if i == a.actions.cursor {
		line = t.SelectedStyle.Render("› ") + line
	} else {
		line = "  " + line
	}

	if confirming {
		line += "\n    " + t.DangerStyle.Render(a.locale.T("actions.confirm_delete")) + " " + t.MutedStyle.Render(a.locale.T("keys.confirm"))
	}
	if row.Editing && row.ID == a.actions.editingID {
		field := func(idx int, label, value string) string {
			if a.actions.editField == idx {
				return t.TitleStyle.Render(label+": ") + value
			}
			return t.MutedStyle.Render(label+": ") + value
		}
		line += "\n    " + strings.Join([]string{
			field(editOwner, a.locale.T("actions.filter.owner"), a.actions.owner.View()),
			field(editDue, a.locale.T("actions.field.due"), a.actions.due.View()),
			field(editPriority, a.locale.T("actions.filter.priority"), t.Badge(string(row.Draft.Priority), t.PriorityColor(row.Draft.Priority))),
			field(editStatus, a.locale.T("actions.filter.status"), t.Badge(string(row.Draft.Status), t.StatusColor(row.Draft.Status))),
		}, "\n    ")
	}
	return line
}
