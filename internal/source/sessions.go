package source

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/quietloop/lifeboard/internal/model"
)

// rawSession matches one entry of the session store JSON.
type rawSession struct {
	Key        string `json:"key"`
	Kind       string `json:"kind"`
	LastActive string `json:"lastActive"`
	Tokens     *struct {
		Used  int `json:"used"`
		Total int `json:"total"`
	} `json:"tokens"`
}

// ParseSessions decodes the session store JSON ({"sessions": [...]}) and
// the separate label map keyed by session key. Labels win over raw keys
// for display names; a broken label map only costs the friendly names.
func ParseSessions(sessionsJSON, labelsJSON string, logger *slog.Logger) []model.AgentSession {
	var store struct {
		Sessions []rawSession `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(sessionsJSON), &store); err != nil {
		logger.Warn("session store unreadable", "error", err)
		return nil
	}

	labels := map[string]string{}
	if strings.TrimSpace(labelsJSON) != "" {
		if err := json.Unmarshal([]byte(labelsJSON), &labels); err != nil {
			logger.Warn("session label map unreadable", "error", err)
		}
	}

	var sessions []model.AgentSession
	for _, raw := range store.Sessions {
		if raw.Key == "" {
			continue
		}
		s := model.AgentSession{
			Key:        raw.Key,
			Kind:       raw.Kind,
			Type:       classifySession(raw.Key, raw.Kind),
			Name:       raw.Key,
			AgeMinutes: ParseAge(raw.LastActive),
		}
		if label, ok := labels[raw.Key]; ok && label != "" {
			s.Name = label
		}
		if raw.Tokens != nil && raw.Tokens.Total > 0 {
			s.Tokens = &model.TokenUsage{
				Used:    raw.Tokens.Used,
				Total:   raw.Tokens.Total,
				Percent: raw.Tokens.Used * 100 / raw.Tokens.Total,
			}
		}
		sessions = append(sessions, s)
	}
	return sessions
}

func classifySession(key, kind string) model.SessionType {
	switch {
	case strings.HasPrefix(key, "cron:") || kind == "cron":
		return model.SessionCron
	case strings.HasPrefix(key, "slack:") || kind == "slack":
		return model.SessionSlack
	case kind == "subagent" || strings.Contains(key, "subagent"):
		return model.SessionSubagent
	case kind == "main" || key == "main":
		return model.SessionMain
	default:
		return model.SessionUnknown
	}
}
