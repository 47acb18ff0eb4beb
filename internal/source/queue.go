package source

import (
	"encoding/json"
	"log/slog"

	"github.com/quietloop/lifeboard/internal/model"
)

// ParseApprovalQueue decodes the queue document's pendingApproval array.
func ParseApprovalQueue(text string, logger *slog.Logger) []model.ApprovalItem {
	var queue struct {
		PendingApproval []model.ApprovalItem `json:"pendingApproval"`
	}
	if err := json.Unmarshal([]byte(text), &queue); err != nil {
		logger.Warn("approval queue unreadable", "error", err)
		return nil
	}

	var items []model.ApprovalItem
	for _, item := range queue.PendingApproval {
		if item.ID == "" && item.Title == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
