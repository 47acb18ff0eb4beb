package patch

import (
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/quietloop/lifeboard/internal/config"
	"github.com/quietloop/lifeboard/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleDocument = `<!DOCTYPE html>
<html>
<head><title>My Dashboard</title><style>.cron-red { color: red }</style></head>
<body>
<h1>Quarter Board</h1>
<p class="hand-authored">Notes I typed by hand. Do not touch.</p>

<p>Days left: <span id="days-left">??</span> · Rocks: <span id="rocks-summary">?/?</span></p>

<h2>Cron</h2>
<!-- lb:cron-grid -->placeholder<!-- /lb:cron-grid -->

<h2>Active Work</h2>
<!-- lb:active-work -->placeholder<!-- /lb:active-work -->

<h2>Recent Activity</h2>

<footer>Updated <span id="last-updated">never</span></footer>
</body>
</html>
`

func sampleDashboard() *model.Dashboard {
	return &model.Dashboard{
		CronJobs: []model.CronJob{
			{ID: "j1", Name: "morning-brief", Schedule: "07:30", LastRun: "today", Status: "ok"},
			{ID: "j2", Name: "backup", Schedule: "02:00", LastRun: "-", Status: "idle"},
		},
		Tasks: []model.Task{
			{ID: "t1", Title: "Write report", Project: "Work"},
		},
		Activity: []model.ActivityEntry{
			{Timestamp: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), Action: "dashboard refresh"},
		},
		RocksDone:     1,
		RocksTotal:    3,
		DaysRemaining: 32,
		LastUpdated:   time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
	}
}

func TestApplyRewritesOnlyDataSpans(t *testing.T) {
	d := sampleDashboard()
	out, res := Apply(sampleDocument, Rules(d, config.DefaultConfig().Display), testLogger())

	if !strings.Contains(out, "Notes I typed by hand. Do not touch.") {
		t.Error("hand-authored content must survive")
	}
	if !strings.Contains(out, `<span id="days-left">32</span>`) {
		t.Error("days-left span not rewritten")
	}
	if !strings.Contains(out, `<span id="rocks-summary">1/3</span>`) {
		t.Error("rocks-summary span not rewritten")
	}
	if strings.Contains(out, "placeholder") {
		t.Error("block placeholders should be replaced")
	}
	if !strings.Contains(out, "morning-brief") || !strings.Contains(out, "cron-green") {
		t.Error("cron grid not rendered")
	}
	if !strings.Contains(out, "cron-orange") {
		t.Error("never-run job should render orange")
	}

	if len(res.Applied) == 0 {
		t.Error("expected applied rules")
	}
}

func TestApplyIdempotent(t *testing.T) {
	d := sampleDashboard()
	rules := Rules(d, config.DefaultConfig().Display)

	once, _ := Apply(sampleDocument, rules, testLogger())
	twice, _ := Apply(once, rules, testLogger())

	if once != twice {
		t.Errorf("second pass must be a no-op\n--- pass 1 ---\n%s\n--- pass 2 ---\n%s", once, twice)
	}
}

func TestApplyInsertsMissingBlockOnce(t *testing.T) {
	d := sampleDashboard()
	rules := Rules(d, config.DefaultConfig().Display)

	once, res := Apply(sampleDocument, rules, testLogger())
	inserted := false
	for _, id := range res.Inserted {
		if id == "activity-feed" {
			inserted = true
		}
	}
	if !inserted {
		t.Fatal("activity-feed should be inserted after its heading on first run")
	}
	if !strings.Contains(once, "<!-- lb:activity-feed -->") {
		t.Fatal("inserted block must carry its own markers")
	}

	twice, res2 := Apply(once, rules, testLogger())
	for _, id := range res2.Inserted {
		if id == "activity-feed" {
			t.Fatal("previously inserted block must be found, not duplicated")
		}
	}
	if strings.Count(twice, "<!-- lb:activity-feed -->") != 1 {
		t.Error("block duplicated across runs")
	}
}

func TestApplySkipsMissingAnchors(t *testing.T) {
	d := sampleDashboard()
	out, res := Apply("just some text, no anchors", Rules(d, config.DefaultConfig().Display), testLogger())

	if len(res.Skipped) == 0 {
		t.Error("drifted document should skip rules, not fail")
	}
	if !strings.Contains(out, "just some text") {
		t.Error("unmatched document must pass through")
	}
}

func TestApplyEscapesUntrustedText(t *testing.T) {
	d := sampleDashboard()
	d.Tasks = []model.Task{{ID: "t1", Title: `<script>&" attack`}}

	out, _ := Apply(sampleDocument, Rules(d, config.DefaultConfig().Display), testLogger())
	if strings.Contains(out, "<script>") {
		t.Error("raw script tag leaked into document")
	}
	if !strings.Contains(out, "&lt;script&gt;&amp;&quot; attack") {
		t.Error("all four characters should be escaped")
	}
}

func TestRuleOrderLaterWins(t *testing.T) {
	doc := `<!-- lb:field --><span>old</span><!-- /lb:field -->`
	rules := []Rule{
		{ID: "field", Kind: KindBlock, Render: func() string { return "first" }},
		{ID: "field", Kind: KindBlock, Render: func() string { return "second" }},
	}
	out, _ := Apply(doc, rules, testLogger())
	if !strings.Contains(out, "second") || strings.Contains(out, "first") {
		t.Errorf("later rule must supersede earlier one, got %q", out)
	}
}

func TestEsc(t *testing.T) {
	in := `a & b < c > d "e"`
	want := `a &amp; b &lt; c &gt; d &quot;e&quot;`
	if got := Esc(in); got != want {
		t.Errorf("Esc() = %q, want %q", got, want)
	}
}

func TestFormatSchedule(t *testing.T) {
	tests := []struct{ in, want string }{
		{"14:30", "2:30pm"},
		{"09:00", "9am"},
		{"00:15", "12:15am"},
		{"12:00", "12pm"},
		{"every 30m", "30m"},
		{"@every 1h", "1h"},
		{"*/5 * * * *", "*/5 * * * *"},
	}
	for _, tt := range tests {
		if got := FormatSchedule(tt.in); got != tt.want {
			t.Errorf("FormatSchedule(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "just now"},
		{45, "45m"},
		{120, "2h"},
		{2880, "2d"},
		{9999, "?"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.in); got != tt.want {
			t.Errorf("FormatAge(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestElementLocatorLeavesTagAttributesAlone(t *testing.T) {
	doc := `<span class="big" id="days-left" data-x="1">old</span>`
	rules := []Rule{{ID: "days-left", Kind: KindElement, Render: func() string { return "7" }}}
	out, _ := Apply(doc, rules, testLogger())
	if out != `<span class="big" id="days-left" data-x="1">7</span>` {
		t.Errorf("attributes must be preserved, got %q", out)
	}
}

func TestElementLocatorReplacesNestedPlaceholder(t *testing.T) {
	doc := `<p>Days left: <span id="days-left"><strong>?</strong></span> remain</p>`
	rules := []Rule{{ID: "days-left", Kind: KindElement, Render: func() string { return "32" }}}

	out, res := Apply(doc, rules, testLogger())
	if out != `<p>Days left: <span id="days-left">32</span> remain</p>` {
		t.Errorf("nested placeholder must replace cleanly, got %q", out)
	}
	if len(res.Applied) != 1 {
		t.Errorf("expected one applied rule, got %+v", res)
	}
}

func TestElementLocatorTracksSameTagNesting(t *testing.T) {
	doc := `<div id="agent-status"><div class="row">idle</div><div class="row">idle</div></div><div>after</div>`
	rules := []Rule{{ID: "agent-status", Kind: KindElement, Render: func() string { return "fresh" }}}

	out, _ := Apply(doc, rules, testLogger())
	if out != `<div id="agent-status">fresh</div><div>after</div>` {
		t.Errorf("same-tag nesting mishandled, got %q", out)
	}
}

func TestInsertAfterCustomAnchor(t *testing.T) {
	doc := "<h2>Needs Attention</h2>\n<p>tail</p>"
	rules := []Rule{{
		ID:          "needs-attention",
		Kind:        KindBlock,
		Render:      func() string { return "\ncontent\n" },
		InsertAfter: regexp.MustCompile(`(?i)<h2[^>]*>\s*Needs Attention\s*</h2>`),
	}}

	out, res := Apply(doc, rules, testLogger())
	if len(res.Inserted) != 1 {
		t.Fatalf("expected insertion, got %+v", res)
	}
	idx := strings.Index(out, "<!-- lb:needs-attention -->")
	if idx < strings.Index(out, "</h2>") {
		t.Errorf("block should sit after the heading, got %q", out)
	}
}
