package source

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quietloop/lifeboard/internal/model"
)

const (
	maxAwaitingTitle  = 80
	maxAwaitingStatus = 60
)

var (
	awaitingItemRe    = regexp.MustCompile(`^- \[ \] \[([^\]]*)\] \[([^\]]*)\]\s*(.*)$`)
	awaitingCheckedRe = regexp.MustCompile(`^\*\*Checked ([^*]+)\*\*:\s*(.*)$`)
)

// ParseAwaiting extracts the "Active" section of the awaiting-responses
// checklist. A new item starts at "- [ ] [date] [channel] title"; lines
// before the next item attach as continuation fields ("Where to check:"
// and "**Checked <label>**: <status>").
func ParseAwaiting(text string, logger *slog.Logger) []model.AwaitingItem {
	section := ExtractSection(text, "Active")
	if section == "" {
		if strings.TrimSpace(text) != "" {
			logger.Warn("awaiting checklist has no Active section")
		}
		return nil
	}

	var items []model.AwaitingItem
	var current *model.AwaitingItem

	flush := func() {
		if current != nil {
			items = append(items, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := awaitingItemRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			current = &model.AwaitingItem{
				Date:    m[1],
				Channel: m[2],
				Title:   truncate(strings.TrimSpace(m[3]), maxAwaitingTitle),
			}
			continue
		}
		if current == nil {
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "Where to check:"); ok {
			current.WhereToCheck = strings.TrimSpace(rest)
			continue
		}
		if m := awaitingCheckedRe.FindStringSubmatch(trimmed); m != nil {
			current.LastChecked = strings.TrimSpace(m[1])
			current.Status = truncate(strings.TrimSpace(m[2]), maxAwaitingStatus)
		}
	}
	flush()

	return items
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
