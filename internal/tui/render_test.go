package tui

import (
	"strings"
	"testing"

	"meetingmind/internal/meeting"
)

func TestRenderMarkdown_Basic(t *testing.T) {
	input := "# Hello\n\nThis is **bold** text."
	result := RenderMarkdown(input, 80)
	if result == "" {
		t.Fatal("RenderMarkdown returned empty")
	}
	// Glamour 应该渲染了标题 / Glamour should have rendered the heading
	if !strings.Contains(result, "Hello") {
		t.Fatalf("result should contain 'Hello': %q", result)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if RenderMarkdown("", 80) != "" {
		t.Fatal("empty input should return empty")
	}
	if RenderMarkdown("  ", 80) != "" {
		t.Fatal("whitespace input should return empty")
	}
}

func TestRenderBullets(t *testing.T) {
	if RenderBullets(nil, 80) != "" {
		t.Fatal("no items should render empty")
	}
	got := RenderBullets([]string{"Ship v2", "Hire QA"}, 80)
	if !strings.Contains(got, "Ship v2") || !strings.Contains(got, "Hire QA") {
		t.Fatalf("bullets missing items: %q", got)
	}
}

func TestRenderActionLine(t *testing.T) {
	theme := DarkTheme()
	tests := []struct {
		item   meeting.ActionItem
		expect []string
	}{
		{meeting.ActionItem{Title: "Ship", Owner: "Bob", Priority: meeting.PriorityHigh, Status: meeting.ActionDone}, []string{"[x]", "Ship", "Bob", "High", "Done"}},
		{meeting.ActionItem{Title: "Plan", Priority: "Urgent", Status: "Blocked", DueDate: "2026-01-02"}, []string{"[ ]", "Unassigned", "Urgent", "Blocked", "2026-01-02"}},
	}
	for _, tt := range tests {
		got := RenderActionLine(tt.item, theme, "Unassigned")
		for _, want := range tt.expect {
			if !strings.Contains(got, want) {
				t.Errorf("RenderActionLine(%q) should contain %q, got %q", tt.item.Title, want, got)
			}
		}
	}
}

func TestThemeFallbackColors(t *testing.T) {
	theme := DarkTheme()
	if theme.PriorityColor("Urgent") != theme.Muted {
		t.Fatal("unknown priority should use the muted color")
	}
	if theme.StatusColor("Blocked") != theme.Border {
		t.Fatal("unknown status should use the fallback color")
	}
	if theme.PriorityColor(meeting.PriorityHigh) != theme.Danger {
		t.Fatal("high priority should be danger colored")
	}
}
