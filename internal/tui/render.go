package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"meetingmind/internal/meeting"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// RenderBullets 渲染字符串列表为 markdown 列表
// RenderBullets renders a string list as markdown bullets
func RenderBullets(items []string, width int) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return RenderMarkdown(b.String(), width)
}

// RenderActionLine 渲染单个行动项摘要行
// RenderActionLine renders a one-line action item summary
func RenderActionLine(a meeting.ActionItem, theme Theme, unassigned string) string {
	check := "[ ]"
	if a.IsDone() {
		check = "[x]"
	}
	owner := a.Owner
	if strings.TrimSpace(owner) == "" {
		owner = unassigned
	}
	parts := []string{
		check,
		a.Title,
		theme.MutedStyle.Render(owner),
		theme.Badge(string(a.Priority), theme.PriorityColor(a.Priority)),
		theme.Badge(string(a.Status), theme.StatusColor(a.Status)),
	}
	if a.DueDate != "" {
		parts = append(parts, theme.MutedStyle.Render(a.DueDate))
	}
	return strings.Join(parts, " ")
}
