package patch

import (
	"fmt"
	"strings"
	"time"

	"github.com/quietloop/lifeboard/internal/model"
)

// Renderers are pure functions from records to a document fragment. All
// untrusted text passes through Esc before embedding. Every renderer is
// deterministic for fixed input, which is what makes the rule sequence
// idempotent.

// RenderCronGrid renders the top-N cron jobs with their health color.
func RenderCronGrid(jobs []model.CronJob, limit int) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"cron-grid\">\n")
	for _, job := range top(jobs, limit) {
		sb.WriteString(fmt.Sprintf(
			"  <li class=\"cron-%s\"><span class=\"cron-name\">%s</span> <span class=\"cron-schedule\">%s</span> <span class=\"cron-status\">%s</span></li>\n",
			job.Health(), Esc(job.Name), Esc(FormatSchedule(job.Schedule)), Esc(job.Status)))
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderTaskList renders the top-N tasks of the active-work list.
func RenderTaskList(tasks []model.Task, limit int) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"task-list\">\n")
	for _, task := range top(tasks, limit) {
		sb.WriteString("  <li>" + Esc(task.Title))
		if task.Project != "" {
			sb.WriteString(" <span class=\"task-project\">" + Esc(task.Project) + "</span>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderAgentList renders the top-N agent sessions with type icon, age,
// and optional context usage.
func RenderAgentList(sessions []model.AgentSession, limit int) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"agent-list\">\n")
	for _, s := range top(sessions, limit) {
		cls := "agent-idle"
		if s.Active() {
			cls = "agent-active"
		}
		sb.WriteString(fmt.Sprintf("  <li class=%q>%s %s <span class=\"agent-age\">%s</span>",
			cls, sessionIcon(s.Type), Esc(s.Name), FormatAge(s.AgeMinutes)))
		if s.Tokens != nil {
			sb.WriteString(fmt.Sprintf(" <span class=\"agent-ctx\">%d%%</span>", s.Tokens.Percent))
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderActivityFeed renders the top-N activity entries with a local
// time display.
func RenderActivityFeed(entries []model.ActivityEntry, limit int) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"activity-feed\">\n")
	for _, e := range top(entries, limit) {
		sb.WriteString(fmt.Sprintf(
			"  <li><span class=\"activity-time\">%s</span> %s",
			e.Timestamp.Local().Format("Jan 2, 3:04 PM"), Esc(e.Action)))
		if e.Details != "" {
			sb.WriteString(" <span class=\"activity-details\">" + Esc(e.Details) + "</span>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderGoalBars renders one percentage-width progress bar per goal
// category.
func RenderGoalBars(goals []model.GoalProgress) string {
	var sb strings.Builder
	sb.WriteString("\n<div class=\"goal-bars\">\n")
	for _, g := range goals {
		sb.WriteString(fmt.Sprintf(
			"  <div class=\"goal\"><span class=\"goal-label\">%s</span><div class=\"bar\"><div class=\"bar-fill\" style=\"width: %d%%\"></div></div><span class=\"goal-pct\">%d%%</span></div>\n",
			Esc(g.Category), g.Percent, g.Percent))
	}
	sb.WriteString("</div>\n")
	return sb.String()
}

// RenderRocks renders the quarterly rocks checklist in source order.
func RenderRocks(rocks []model.Rock) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"rocks\">\n")
	for _, r := range rocks {
		box := "☐"
		if r.Done {
			box = "☑"
		}
		sb.WriteString(fmt.Sprintf("  <li>%s %d. %s", box, r.Number, Esc(r.Description)))
		if r.Owner != "" {
			sb.WriteString(" <span class=\"rock-owner\">" + Esc(r.Owner) + "</span>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderScorecard renders the scorecard table rows.
func RenderScorecard(metrics []model.ScorecardMetric) string {
	var sb strings.Builder
	sb.WriteString("\n<table class=\"scorecard\">\n")
	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("  <tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			Esc(m.Name), Esc(m.Target), Esc(m.Actual)))
	}
	sb.WriteString("</table>\n")
	return sb.String()
}

// RenderAttention renders the aggregated needs-attention list.
func RenderAttention(items []model.AttentionItem) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"attention\">\n")
	for _, item := range items {
		sb.WriteString("  <li>" + Esc(item.Title))
		if item.Detail != "" {
			sb.WriteString(" <span class=\"attention-detail\">" + Esc(item.Detail) + "</span>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderAwaiting renders the awaiting-responses list.
func RenderAwaiting(items []model.AwaitingItem) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"awaiting\">\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  <li><span class=\"awaiting-channel\">%s</span> %s",
			Esc(item.Channel), Esc(item.Title)))
		if item.Status != "" {
			sb.WriteString(" <span class=\"awaiting-status\">" + Esc(item.Status) + "</span>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderApprovals renders the pending-approval queue.
func RenderApprovals(items []model.ApprovalItem) string {
	var sb strings.Builder
	sb.WriteString("\n<ul class=\"approvals\">\n")
	for _, item := range items {
		sb.WriteString("  <li>" + Esc(item.Title))
		if item.Description != "" {
			sb.WriteString(" <span class=\"approval-desc\">" + Esc(item.Description) + "</span>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

// RenderBodyMetrics renders the wearable summary block.
func RenderBodyMetrics(b model.BodyMetrics) string {
	var sb strings.Builder
	sb.WriteString("\n<dl class=\"body-metrics\">\n")
	sb.WriteString("  <dt>Resilience</dt><dd>" + Esc(b.ResilienceLevel) + "</dd>\n")
	sb.WriteString("  <dt>Sleep recovery</dt><dd>" + Esc(b.SleepRecovery) + "</dd>\n")
	sb.WriteString("  <dt>Daytime recovery</dt><dd>" + Esc(b.DaytimeRecovery) + "</dd>\n")
	sb.WriteString(fmt.Sprintf("  <dt>Stress</dt><dd>%s, %dm stress / %dm recovery</dd>\n",
		Esc(b.StressSummary), b.StressMinutes, b.RecoveryMinutes))
	sb.WriteString(fmt.Sprintf("  <dt>VO2 max</dt><dd>%d %s</dd>\n", b.VO2Current, b.VO2Trend))
	sb.WriteString("</dl>\n")
	return sb.String()
}

// RenderDaysLeft renders the deadline countdown scalar.
func RenderDaysLeft(days int) string {
	return fmt.Sprintf("%d", days)
}

// RenderLastUpdated renders the refresh timestamp scalar.
func RenderLastUpdated(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// RenderRocksSummary renders the overall completion scalar ("3/8").
func RenderRocksSummary(done, total int) string {
	return fmt.Sprintf("%d/%d", done, total)
}

func top[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
