// Package orchestrator sequences one refresh pass: fetch every source,
// compute derived metrics, merge the snapshot, patch the document, and
// persist the results. The pass is best-effort throughout — a run with
// every source dark still completes and writes valid output.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/quietloop/lifeboard/internal/activity"
	"github.com/quietloop/lifeboard/internal/config"
	"github.com/quietloop/lifeboard/internal/history"
	"github.com/quietloop/lifeboard/internal/metrics"
	"github.com/quietloop/lifeboard/internal/model"
	"github.com/quietloop/lifeboard/internal/patch"
	"github.com/quietloop/lifeboard/internal/provider"
	"github.com/quietloop/lifeboard/internal/snapshot"
	"github.com/quietloop/lifeboard/internal/source"
)

// Providers bundles the injected data sources for one pass. Nil entries
// behave like unavailable sources.
type Providers struct {
	Tasks         provider.Provider
	PriorityTasks provider.Provider
	Cron          provider.Provider
	Body          provider.Provider
	Sessions      provider.Provider
	SessionLabels provider.Provider
	Awaiting      provider.Provider
	Goals         provider.Provider
	Queue         provider.Provider
}

// FromConfig builds the real provider set: commands for the process
// sources, file reads for the document sources.
func FromConfig(cfg *config.Config) Providers {
	timeout := cfg.Providers.Timeout()
	command := func(name, cmdline string) provider.Provider {
		if cmdline == "" {
			return nil
		}
		return provider.NewCommand(name, provider.SplitCommand(cmdline), timeout)
	}
	file := func(name, path string) provider.Provider {
		if path == "" {
			return nil
		}
		return provider.NewFile(name, path)
	}

	return Providers{
		Tasks:         command("tasks", cfg.Providers.TasksCommand),
		PriorityTasks: command("priority-tasks", cfg.Providers.PriorityTasksCommand),
		Cron:          command("cron", cfg.Providers.CronCommand),
		Body:          command("body", cfg.Providers.BodyCommand),
		Sessions:      file("sessions", cfg.Providers.SessionsPath),
		SessionLabels: file("session-labels", cfg.Providers.SessionLabelsPath),
		Awaiting:      file("awaiting", cfg.Providers.AwaitingPath),
		Goals:         file("goals", cfg.Providers.GoalsPath),
		Queue:         file("queue", cfg.Providers.QueuePath),
	}
}

// Summary reports what one pass did.
type Summary struct {
	Dashboard *model.Dashboard
	Cron      model.CronSummary
	Patch     patch.Result
	DryRun    bool
	Duration  time.Duration
}

// Orchestrator runs refresh passes.
type Orchestrator struct {
	cfg       *config.Config
	providers Providers
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an orchestrator with the given provider set.
func New(cfg *config.Config, providers Providers, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, providers: providers, logger: logger, now: time.Now}
}

// Refresh executes one full pass. With dryRun set the identical
// computation runs but the document, snapshot, activity log, and run
// history writes are all suppressed.
func (o *Orchestrator) Refresh(ctx context.Context, dryRun bool) *Summary {
	started := o.now()

	// Source adapters. Each failure domain is isolated: a dark source
	// contributes its documented default.
	d := &model.Dashboard{
		Tasks:         source.ParseTaskExport(o.fetch(ctx, o.providers.Tasks), o.logger),
		PriorityTasks: source.ParseTaskExport(o.fetch(ctx, o.providers.PriorityTasks), o.logger),
		CronJobs:      source.ParseCronReport(o.fetch(ctx, o.providers.Cron), o.logger),
		Body:          source.ParseBodyMetrics(o.fetch(ctx, o.providers.Body), o.logger),
		Awaiting:      source.ParseAwaiting(o.fetch(ctx, o.providers.Awaiting), o.logger),
		Approvals:     source.ParseApprovalQueue(o.fetch(ctx, o.providers.Queue), o.logger),
	}
	d.Sessions = source.ParseSessions(
		o.fetch(ctx, o.providers.Sessions),
		o.fetch(ctx, o.providers.SessionLabels),
		o.logger)
	goalsText := o.fetch(ctx, o.providers.Goals)
	d.Rocks = source.ParseRocks(goalsText, o.logger)
	d.Scorecard = source.ParseScorecard(goalsText, o.logger)

	// Derived metrics.
	d.Goals = metrics.GoalProgress(d.Rocks, o.cfg.Goals.Categories)
	d.RocksDone = metrics.RocksDone(d.Rocks)
	d.RocksTotal = len(d.Rocks)
	d.RocksPercent = metrics.RocksPercent(d.Rocks)
	d.DaysRemaining = metrics.DaysRemaining(o.cfg.Goals.DeadlineTime(), started)
	d.LastUpdated = started
	cronSum := model.SummarizeCron(d.CronJobs)

	// Snapshot: load, merge the attention list, merge everything else.
	snapStore := snapshot.NewStore(o.cfg.Workspace.Snapshot, o.logger)
	prior := snapStore.Load()
	d.Attention = mergeAttention(prior["needsAttention"], freshAttention(d), o.cfg.Display.AttentionLimit)

	merged, err := snapshot.Merge(prior, map[string]any{
		"cronJobs":       d.CronJobs,
		"cronSummary":    cronSum,
		"tasks":          d.Tasks,
		"priorityTasks":  d.PriorityTasks,
		"sessions":       d.Sessions,
		"awaiting":       d.Awaiting,
		"approvals":      d.Approvals,
		"rocks":          d.Rocks,
		"scorecard":      d.Scorecard,
		"body":           d.Body,
		"goals":          d.Goals,
		"needsAttention": d.Attention,
		"daysRemaining":  d.DaysRemaining,
		"lastUpdated":    d.LastUpdated,
	})
	if err != nil {
		o.logger.Warn("snapshot merge failed, keeping prior state", "error", err)
		merged = prior
	}

	// Activity feed renders from the log as it stood before this run.
	log := activity.Open(o.cfg.Workspace.Activity, o.logger)
	d.Activity = log.Entries(0)

	// Document patching.
	document := o.readDocument()
	patched, patchRes := patch.Apply(document, patch.Rules(d, o.cfg.Display), o.logger)

	// Persistence: three independent whole-file writes, no transaction.
	if !dryRun {
		o.writeDocument(patched)

		if err := snapStore.Save(merged, false); err != nil {
			o.logger.Warn("snapshot not saved", "error", err)
		}

		log.Append(model.ActivityEntry{
			Timestamp: started,
			Action:    "dashboard refresh",
			Details: fmt.Sprintf("cron %d/%d healthy, %d tasks, %d agents",
				cronSum.Healthy, cronSum.Total, len(d.Tasks), len(d.Sessions)),
			Source: "lifeboard",
		})
		if err := log.Save(); err != nil {
			o.logger.Warn("activity log not saved", "error", err)
		}

		o.recordRun(started, dryRun, cronSum, d)
	}

	return &Summary{
		Dashboard: d,
		Cron:      cronSum,
		Patch:     patchRes,
		DryRun:    dryRun,
		Duration:  o.now().Sub(started),
	}
}

// fetch returns the provider's text, or empty string when the provider
// is unset or unavailable.
func (o *Orchestrator) fetch(ctx context.Context, p provider.Provider) string {
	if p == nil {
		return ""
	}
	text, err := p.Fetch(ctx)
	if err != nil {
		o.logger.Warn("source unavailable", "provider", p.Name(), "error", err)
		return ""
	}
	return text
}

func (o *Orchestrator) readDocument() string {
	data, err := os.ReadFile(o.cfg.Workspace.Document)
	if err != nil {
		if !os.IsNotExist(err) {
			o.logger.Warn("document unreadable, starting empty", "error", err)
		}
		return ""
	}
	return string(data)
}

func (o *Orchestrator) writeDocument(content string) {
	if err := os.MkdirAll(filepath.Dir(o.cfg.Workspace.Document), 0755); err != nil {
		o.logger.Warn("document dir not created", "error", err)
		return
	}
	if err := os.WriteFile(o.cfg.Workspace.Document, []byte(content), 0644); err != nil {
		o.logger.Warn("document not saved", "error", err)
	}
}

func (o *Orchestrator) recordRun(started time.Time, dryRun bool, cronSum model.CronSummary, d *model.Dashboard) {
	if o.cfg.Workspace.HistoryDB == "" {
		return
	}
	store, err := history.Open(o.cfg.Workspace.HistoryDB)
	if err != nil {
		o.logger.Warn("run history unavailable", "error", err)
		return
	}
	defer store.Close()

	run := &history.Run{
		DurationMs:  o.now().Sub(started).Milliseconds(),
		DryRun:      dryRun,
		CronHealthy: cronSum.Healthy,
		CronTotal:   cronSum.Total,
		TaskCount:   len(d.Tasks),
		AgentCount:  len(d.Sessions),
		Summary: fmt.Sprintf("cron %d/%d healthy, %d tasks, %d agents",
			cronSum.Healthy, cronSum.Total, len(d.Tasks), len(d.Sessions)),
	}
	if err := store.RecordRun(run); err != nil {
		o.logger.Warn("run not recorded", "error", err)
	}
}

// freshAttention derives this pass's high-priority items: cron jobs in
// error, stale awaiting entries, and the pending-approval queue.
func freshAttention(d *model.Dashboard) []model.AttentionItem {
	var items []model.AttentionItem
	for _, job := range d.CronJobs {
		if job.Health() == model.HealthRed {
			items = append(items, model.AttentionItem{
				Title:  job.Name + " failing",
				Detail: "cron job in error state",
				Source: "cron",
			})
		}
	}
	for _, item := range d.Approvals {
		items = append(items, model.AttentionItem{
			Title:  item.Title,
			Detail: "awaiting approval",
			Source: "queue",
		})
	}
	for _, task := range d.PriorityTasks {
		items = append(items, model.AttentionItem{
			Title:  task.Title,
			Detail: "priority task",
			Source: "tasks",
		})
	}
	return items
}

// mergeAttention keeps the previously persisted items first and appends
// fresh ones after, deduplicated by title and capped. The asymmetry
// (existing items win over new ones) is deliberate and matches the
// long-observed dashboard behavior.
func mergeAttention(priorRaw json.RawMessage, fresh []model.AttentionItem, limit int) []model.AttentionItem {
	if limit <= 0 {
		limit = 10
	}

	var prior []model.AttentionItem
	if len(priorRaw) > 0 {
		// A corrupt prior list costs only the carried-over items.
		_ = json.Unmarshal(priorRaw, &prior)
	}

	seen := make(map[string]bool)
	merged := make([]model.AttentionItem, 0, limit)
	for _, item := range append(prior, fresh...) {
		if item.Title == "" || seen[item.Title] {
			continue
		}
		seen[item.Title] = true
		merged = append(merged, item)
		if len(merged) == limit {
			break
		}
	}
	return merged
}
