package patch

import (
	"regexp"

	"github.com/quietloop/lifeboard/internal/config"
	"github.com/quietloop/lifeboard/internal/model"
)

// Insertion anchors for blocks the document may not contain yet. The
// block is inserted right after the matching heading; on the next run
// its own markers locate it instead.
var (
	activityHeadingRe  = regexp.MustCompile(`(?i)<h2[^>]*>\s*Recent Activity\s*</h2>`)
	attentionHeadingRe = regexp.MustCompile(`(?i)<h2[^>]*>\s*Needs Attention\s*</h2>`)
)

// Rules builds the full ordered rewrite sequence for one dashboard
// state. The order is fixed and load-bearing: scalar field rules run
// first, list and block rules after, so a block rule that covers a
// region always supersedes any earlier field rule inside it.
func Rules(d *model.Dashboard, display config.DisplayConfig) []Rule {
	return []Rule{
		// Scalar fields.
		{ID: "days-left", Kind: KindElement, Render: func() string { return RenderDaysLeft(d.DaysRemaining) }},
		{ID: "rocks-summary", Kind: KindElement, Render: func() string { return RenderRocksSummary(d.RocksDone, d.RocksTotal) }},
		{ID: "last-updated", Kind: KindElement, Render: func() string { return RenderLastUpdated(d.LastUpdated) }},

		// Managed blocks.
		{ID: "cron-grid", Kind: KindBlock, Render: func() string { return RenderCronGrid(d.CronJobs, display.CronLimit) }},
		{ID: "active-work", Kind: KindBlock, Render: func() string { return RenderTaskList(d.Tasks, display.TaskLimit) }},
		{ID: "priority-work", Kind: KindBlock, Render: func() string { return RenderTaskList(d.PriorityTasks, display.TaskLimit) }},
		{ID: "agent-status", Kind: KindBlock, Render: func() string { return RenderAgentList(d.Sessions, display.SessionLimit) }},
		{ID: "goal-bars", Kind: KindBlock, Render: func() string { return RenderGoalBars(d.Goals) }},
		{ID: "rocks-list", Kind: KindBlock, Render: func() string { return RenderRocks(d.Rocks) }},
		{ID: "scorecard", Kind: KindBlock, Render: func() string { return RenderScorecard(d.Scorecard) }},
		{ID: "body-metrics", Kind: KindBlock, Render: func() string { return RenderBodyMetrics(d.Body) }},
		{ID: "awaiting-list", Kind: KindBlock, Render: func() string { return RenderAwaiting(d.Awaiting) }},
		{ID: "approvals-list", Kind: KindBlock, Render: func() string { return RenderApprovals(d.Approvals) }},

		// Blocks with insertion fallbacks: these first appeared after
		// the document was hand-authored, so drifted copies may lack
		// their markers.
		{
			ID:          "activity-feed",
			Kind:        KindBlock,
			Render:      func() string { return RenderActivityFeed(d.Activity, display.ActivityLimit) },
			InsertAfter: activityHeadingRe,
		},
		{
			ID:          "needs-attention",
			Kind:        KindBlock,
			Render:      func() string { return RenderAttention(d.Attention) },
			InsertAfter: attentionHeadingRe,
		},
	}
}
