// Package model defines the typed records produced by the source adapters
// and the derived aggregates consumed by the document patcher.
package model

import "time"

// CronHealth is the derived traffic-light color for a cron job.
type CronHealth string

const (
	HealthGreen  CronHealth = "green"
	HealthBlue   CronHealth = "blue"
	HealthOrange CronHealth = "orange"
	HealthRed    CronHealth = "red"
)

// CronJob is one row of the scheduler report.
type CronJob struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	NextRun  string `json:"nextRun"`
	LastRun  string `json:"lastRun"`
	Status   string `json:"status"` // ok, idle, error, running, unknown
}

// Health classifies the job into a display color: error jobs are red,
// running jobs blue, never-run jobs orange, everything else green.
func (j CronJob) Health() CronHealth {
	switch {
	case j.Status == "error":
		return HealthRed
	case j.Status == "running":
		return HealthBlue
	case j.LastRun == "-" || j.LastRun == "never":
		return HealthOrange
	default:
		return HealthGreen
	}
}

// Task is one row of the task manager export.
type Task struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Project string `json:"project,omitempty"`
	Area    string `json:"area,omitempty"`
	Status  string `json:"status,omitempty"`
}

// SessionType classifies an agent session by origin.
type SessionType string

const (
	SessionMain     SessionType = "main"
	SessionSubagent SessionType = "subagent"
	SessionCron     SessionType = "cron"
	SessionSlack    SessionType = "slack"
	SessionUnknown  SessionType = "unknown"
)

// TokenUsage is the optional context-window accounting for a session.
type TokenUsage struct {
	Used    int `json:"used"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// AgentSession is one entry of the session store.
type AgentSession struct {
	Key        string      `json:"key"`
	Kind       string      `json:"kind"`
	Type       SessionType `json:"type"`
	Name       string      `json:"name"`
	AgeMinutes int         `json:"lastActiveAgeMinutes"`
	Tokens     *TokenUsage `json:"tokenUsage,omitempty"`
}

// Active reports whether the session was used in the last half hour.
func (s AgentSession) Active() bool {
	return s.AgeMinutes < 30
}

// AwaitingItem is one entry of the awaiting-responses checklist.
type AwaitingItem struct {
	Date         string `json:"date"`
	Channel      string `json:"channel"`
	Title        string `json:"title"`
	WhereToCheck string `json:"whereToCheck,omitempty"`
	LastChecked  string `json:"lastChecked,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ApprovalItem is one entry of the pending-approval queue.
type ApprovalItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AddedAt     string `json:"addedAt,omitempty"`
}

// Rock is a quarterly commitment row. Number is the stable identity used
// for goal-category grouping; ordering follows appearance in the source.
type Rock struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	Done        bool   `json:"done"`
}

// ScorecardMetric is a named recurring measurement.
type ScorecardMetric struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Actual string `json:"actual"`
}

// BodyMetrics aggregates the wearable summary fields.
type BodyMetrics struct {
	ResilienceLevel    string `json:"resilienceLevel"`
	SleepRecovery      string `json:"sleepRecovery"`
	DaytimeRecovery    string `json:"daytimeRecovery"`
	StressContribution string `json:"stressContribution"`
	StressSummary      string `json:"stressSummary"`
	StressMinutes      int    `json:"stressMinutes"`
	RecoveryMinutes    int    `json:"recoveryMinutes"`
	VO2Current         int    `json:"vo2Current"`
	VO2Previous        int    `json:"vo2Previous"`
	VO2Trend           string `json:"vo2Trend"` // ↑ ↓ →
}

// ActivityEntry records one run event. Entries are immutable once
// appended.
type ActivityEntry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Source    string    `json:"source,omitempty"`
}

// GoalProgress is the rounded completion percentage for one goal
// category.
type GoalProgress struct {
	Category string `json:"category"`
	Done     int    `json:"done"`
	Total    int    `json:"total"`
	Percent  int    `json:"percent"`
}

// AttentionItem is one entry of the aggregated needs-attention list.
type AttentionItem struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	Source string `json:"source,omitempty"`
}

// Dashboard holds everything one refresh pass computed. It is the input
// to the renderers and the payload merged into the persisted snapshot.
type Dashboard struct {
	CronJobs      []CronJob         `json:"cronJobs"`
	Tasks         []Task            `json:"tasks"`
	PriorityTasks []Task            `json:"priorityTasks"`
	Sessions      []AgentSession    `json:"sessions"`
	Awaiting      []AwaitingItem    `json:"awaiting"`
	Approvals     []ApprovalItem    `json:"approvals"`
	Rocks         []Rock            `json:"rocks"`
	Scorecard     []ScorecardMetric `json:"scorecard"`
	Body          BodyMetrics       `json:"body"`
	Goals         []GoalProgress    `json:"goals"`
	RocksDone     int               `json:"rocksDone"`
	RocksTotal    int               `json:"rocksTotal"`
	RocksPercent  int               `json:"rocksPercent"`
	DaysRemaining int               `json:"daysRemaining"`
	Attention     []AttentionItem   `json:"needsAttention"`
	Activity      []ActivityEntry   `json:"-"`
	LastUpdated   time.Time         `json:"lastUpdated"`
}

// CronSummary is the health rollup reported in the activity entry and
// the run-history record.
type CronSummary struct {
	Healthy int      `json:"healthy"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

// SummarizeCron counts green jobs as healthy and collects the names of
// jobs in error state.
func SummarizeCron(jobs []CronJob) CronSummary {
	sum := CronSummary{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Health() {
		case HealthGreen:
			sum.Healthy++
		case HealthRed:
			sum.Errors = append(sum.Errors, j.Name)
		}
	}
	return sum
}
