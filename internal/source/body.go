package source

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/quietloop/lifeboard/internal/model"
)

// ParseBodyMetrics decodes the wearable provider's JSON object. Each
// field is a pipe-packed scalar string decoded positionally:
//
//	resilience: level|sleepRecovery|daytimeRecovery
//	stress:     contribution|summary|stressMinutes|recoveryMinutes
//	vo2:        current|previous
//
// Missing or unparseable numeric positions default to 0, string
// positions to "unknown". The VO2 trend compares current vs previous.
func ParseBodyMetrics(text string, logger *slog.Logger) model.BodyMetrics {
	var raw struct {
		Resilience string `json:"resilience"`
		Stress     string `json:"stress"`
		VO2        string `json:"vo2"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		logger.Warn("body metrics unreadable", "error", err)
	}

	resilience := packedFields(raw.Resilience, 3)
	stress := packedFields(raw.Stress, 4)
	vo2 := packedFields(raw.VO2, 2)

	m := model.BodyMetrics{
		ResilienceLevel:    packedString(resilience, 0),
		SleepRecovery:      packedString(resilience, 1),
		DaytimeRecovery:    packedString(resilience, 2),
		StressContribution: packedString(stress, 0),
		StressSummary:      packedString(stress, 1),
		StressMinutes:      packedInt(stress, 2),
		RecoveryMinutes:    packedInt(stress, 3),
		VO2Current:         packedInt(vo2, 0),
		VO2Previous:        packedInt(vo2, 1),
	}

	switch {
	case m.VO2Current > m.VO2Previous:
		m.VO2Trend = "↑"
	case m.VO2Current < m.VO2Previous:
		m.VO2Trend = "↓"
	default:
		m.VO2Trend = "→"
	}
	return m
}

func packedFields(s string, arity int) []string {
	fields := strings.Split(s, "|")
	for len(fields) < arity {
		fields = append(fields, "")
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func packedString(fields []string, i int) string {
	if i >= len(fields) || fields[i] == "" {
		return "unknown"
	}
	return fields[i]
}

func packedInt(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0
	}
	return n
}
