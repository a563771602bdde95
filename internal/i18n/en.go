package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// Tabs
	"tab.upload":  "New Meeting",
	"tab.actions": "Action Items",
	"tab.history": "History",

	// Status bar
	"status.ready":   "Ready",
	"status.loading": "Loading...",
	"status.api":     "API",

	// Upload page
	"upload.heading":                  "New Meeting",
	"upload.subheading":               "Paste your notes or import a transcript. The backend extracts everything automatically.",
	"upload.field.title":              "Meeting Title (optional)",
	"upload.field.type":               "Meeting Type",
	"upload.field.participants":       "Participants (comma-separated)",
	"upload.field.transcript":         "Meeting Notes / Transcript",
	"upload.placeholder.title":        "e.g. Q2 Sprint Planning",
	"upload.placeholder.participants": "Alice, Bob, Carol",
	"upload.placeholder.transcript":   "Paste your meeting transcript here...",
	"upload.tokens":                   "%d chars · ≈%d tokens",
	"upload.step.saving":              "Saving meeting...",
	"upload.step.processing":          "Analyzing your meeting...",
	"upload.success":                  "Meeting analyzed successfully!",
	"upload.demo":                     "Demo mode: %s",
	"upload.sample_loaded":            "Sample transcript loaded",
	"upload.file_loaded":              "Loaded %s",
	"upload.cleared":                  "Form cleared",
	"upload.draft_restored":           "Restored unsaved draft",
	"upload.err.transcript_required":  "Transcript is required",
	"upload.err.file_too_large":       "File too large (max %dKB)",
	"upload.err.file_read":            "Could not read file: %s",
	"upload.file_prompt":              "File path: ",
	"upload.analyze":                  "Analyze Meeting",

	// Actions page
	"actions.heading":           "Action Items",
	"actions.subheading":        "Track and manage all tasks extracted from meetings",
	"actions.stat.total":        "Total Items",
	"actions.stat.done":         "Completed",
	"actions.stat.high":         "High Priority",
	"actions.stat.overdue":      "Overdue",
	"actions.filter.owner":      "Owner",
	"actions.filter.priority":   "Priority",
	"actions.filter.status":     "Status",
	"actions.filter.all":        "All",
	"actions.filter.all_owners": "All Owners",
	"actions.field.due":         "Due Date",
	"actions.empty":             "No action items",
	"actions.empty_hint":        "Process a meeting to extract tasks automatically",
	"actions.updated":           "Updated",
	"actions.deleted":           "Deleted",
	"actions.confirm_delete":    "Delete this action item?",
	"actions.unassigned":        "Unassigned",
	"actions.overdue":           "Overdue",
	"actions.due":               "Due %s",
	"actions.editing":           "Editing",

	// History page
	"history.heading":      "Meeting History",
	"history.subheading":   "Browse all past meetings and their AI-generated summaries",
	"history.search":       "Search meetings, summaries, transcripts...",
	"history.count":        "%d meeting(s)",
	"history.empty":        "No meetings yet",
	"history.empty_hint":   "Upload your first meeting to get started",
	"history.pending":      "Not Processed",
	"history.action_count": "%d action(s)",
	"history.summary":      "AI Summary",
	"history.decisions":    "Key Decisions",
	"history.topics":       "Topics",
	"history.action_items": "Action Items",
	"history.no_actions":   "No action items",
	"history.participants": "Participants",

	// Keys (TUI help)
	"keys.tab":     "tab/shift+tab page",
	"keys.quit":    "ctrl+c quit",
	"keys.submit":  "ctrl+s analyze",
	"keys.sample":  "ctrl+e sample",
	"keys.clear":   "ctrl+r clear",
	"keys.file":    "ctrl+o import file",
	"keys.toggle":  "space done",
	"keys.edit":    "e edit",
	"keys.delete":  "d delete",
	"keys.filter":  "o/p/s filters",
	"keys.reset":   "x reset",
	"keys.expand":  "enter expand",
	"keys.search":  "/ search",
	"keys.confirm": "y confirm · n cancel",
	"keys.save":    "enter save · esc cancel",
	"keys.field":   "ctrl+n/ctrl+p field",
	"keys.move":    "↑/↓ move",
	"keys.cycle":   "←/→ change",

	// Plain mode
	"repl.welcome":        "MeetingMind · %s",
	"repl.help":           "Commands:\n  /sample  /title <t>  /type <t>  /participants <a, b>  /file <path>\n  /transcript (then lines, end with a single '.')  /show  /submit  /clear\n  /actions [owner=..] [priority=..] [status=..]  /reset  /done <n>  /edit <n> field=value...  /delete <n>\n  /history [search]  /open <n>  /recent\n  /help  /quit",
	"repl.unknown":        "Unknown command: %s (try /help)",
	"repl.usage":          "Usage: %s",
	"repl.bad_index":      "No row %s",
	"repl.transcript_end": "Enter transcript, end with a single '.' line:",
	"repl.bye":            "Bye",
	"repl.redirect":       "Opening history for meeting %s",
	"repl.recent_empty":   "No submissions recorded yet",
	"repl.confirm_prompt": "%s [y/N] ",
	"repl.demo":           "demo",
	"repl.cancelled":      "Cancelled",

	// Generic
	"error.generic": "Something went wrong",
}
