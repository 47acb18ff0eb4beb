package source

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/quietloop/lifeboard/internal/model"
)

var tableRowRe = regexp.MustCompile(`^\|(.+)\|\s*$`)

// ExtractSection returns the body of the markdown section whose heading
// contains title (case-insensitive), up to the next heading at the same
// or a higher level. Empty string when the heading is not found.
func ExtractSection(text, title string) string {
	headingRe := regexp.MustCompile(`(?mi)^(#{1,6})[ \t]+.*` + regexp.QuoteMeta(title) + `.*$`)
	loc := headingRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	level := loc[3] - loc[2]
	body := text[loc[1]:]

	closeRe := regexp.MustCompile(fmt.Sprintf(`(?m)^#{1,%d}[ \t]+`, level))
	if end := closeRe.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	return body
}

// ParseRocks scans the "Rocks" section for table rows with a leading
// positive integer column. Row order follows the source; the number is
// the rock's stable identity. "done" is true when the status cell holds
// a check mark or the words yes/done.
func ParseRocks(text string, logger *slog.Logger) []model.Rock {
	section := ExtractSection(text, "Rocks")
	if section == "" {
		if strings.TrimSpace(text) != "" {
			logger.Warn("goals document has no Rocks section")
		}
		return nil
	}

	var rocks []model.Rock
	for _, cells := range tableRows(section) {
		if len(cells) < 2 {
			continue
		}
		number, err := strconv.Atoi(cells[0])
		if err != nil || number <= 0 {
			continue
		}
		rock := model.Rock{
			Number:      number,
			Description: cells[1],
		}
		if len(cells) > 2 {
			rock.Owner = cells[2]
		}
		if len(cells) > 3 {
			rock.Done = isDone(cells[3])
		}
		rocks = append(rocks, rock)
	}
	return rocks
}

// ParseScorecard scans the "Scorecard" section for name/target/actual
// rows.
func ParseScorecard(text string, logger *slog.Logger) []model.ScorecardMetric {
	section := ExtractSection(text, "Scorecard")
	if section == "" {
		return nil
	}

	var metrics []model.ScorecardMetric
	for _, cells := range tableRows(section) {
		if len(cells) < 3 || cells[0] == "" {
			continue
		}
		metrics = append(metrics, model.ScorecardMetric{
			Name:   cells[0],
			Target: cells[1],
			Actual: cells[2],
		})
	}
	return metrics
}

// tableRows returns the trimmed cells of every pipe-table data row in
// the section, skipping header and separator rows.
func tableRows(section string) [][]string {
	var rows [][]string
	sawHeader := false
	for _, line := range strings.Split(section, "\n") {
		m := tableRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		cells := strings.Split(m[1], "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if isSeparatorRow(cells) {
			continue
		}
		if !sawHeader {
			// First non-separator row is the header.
			sawHeader = true
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if c == "" {
			continue
		}
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

func isDone(cell string) bool {
	s := strings.ToLower(strings.TrimSpace(cell))
	if strings.Contains(s, "✓") || strings.Contains(s, "✅") {
		return true
	}
	return strings.Contains(s, "yes") || strings.Contains(s, "done")
}
