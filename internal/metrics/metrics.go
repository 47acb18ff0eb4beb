// Package metrics computes derived dashboard values: goal progress,
// deadline countdowns, and rock completion rollups. Everything here is a
// pure function over adapter output.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/quietloop/lifeboard/internal/model"
)

// GoalProgress computes the completion percentage of each goal category
// from the rock-number table. Categories with zero rocks report 0,
// never a division error. Results are sorted by category name so the
// rendered order is stable.
func GoalProgress(rocks []model.Rock, categories map[string][]int) []model.GoalProgress {
	byNumber := make(map[int]model.Rock, len(rocks))
	for _, r := range rocks {
		byNumber[r.Number] = r
	}

	progress := make([]model.GoalProgress, 0, len(categories))
	for name, numbers := range categories {
		p := model.GoalProgress{Category: name}
		for _, n := range numbers {
			rock, ok := byNumber[n]
			if !ok {
				continue
			}
			p.Total++
			if rock.Done {
				p.Done++
			}
		}
		p.Percent = percent(p.Done, p.Total)
		progress = append(progress, p)
	}

	sort.Slice(progress, func(i, j int) bool {
		return progress[i].Category < progress[j].Category
	})
	return progress
}

// RocksDone counts completed rocks.
func RocksDone(rocks []model.Rock) int {
	done := 0
	for _, r := range rocks {
		if r.Done {
			done++
		}
	}
	return done
}

// RocksPercent is the overall completion percentage with the same
// zero-rock guard as per-category progress.
func RocksPercent(rocks []model.Rock) int {
	return percent(RocksDone(rocks), len(rocks))
}

// DaysRemaining is the ceiling of the time left until deadline in whole
// days. It goes negative once the deadline has passed; callers display
// it as-is.
func DaysRemaining(deadline, now time.Time) int {
	if deadline.IsZero() {
		return 0
	}
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
