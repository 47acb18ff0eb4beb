package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quietloop/lifeboard/internal/model"
	"github.com/quietloop/lifeboard/internal/source"
)

var clockRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// FormatSchedule rewrites a 24-hour or relative schedule into a short
// human display: "14:30" → "2:30pm", "09:00" → "9am", "every 30m" →
// "30m". Anything unrecognized passes through verbatim.
func FormatSchedule(schedule string) string {
	s := strings.TrimSpace(schedule)

	if rest, ok := strings.CutPrefix(s, "every "); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(s, "@every "); ok {
		return rest
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	hour, _ := strconv.Atoi(m[1])
	minute := m[2]

	suffix := "am"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "pm"
	case hour > 12:
		hour -= 12
		suffix = "pm"
	}
	if minute == "00" {
		return fmt.Sprintf("%d%s", hour, suffix)
	}
	return fmt.Sprintf("%d:%s%s", hour, minute, suffix)
}

// FormatAge renders an age in minutes as a compact display string.
func FormatAge(minutes int) string {
	switch {
	case minutes == source.UnknownAge:
		return "?"
	case minutes <= 0:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < 1440:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dd", minutes/1440)
	}
}

// sessionIcon maps a session type to its display glyph.
func sessionIcon(t model.SessionType) string {
	switch t {
	case model.SessionMain:
		return "🖥"
	case model.SessionSubagent:
		return "🤖"
	case model.SessionCron:
		return "⏰"
	case model.SessionSlack:
		return "💬"
	default:
		return "❔"
	}
}
