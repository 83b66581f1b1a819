// Package stats computes derived poll tallies.
//
// All functions are pure: counts and percentages are recomputed from the
// underlying rows on every call, never cached. This trades throughput for
// consistency — the sum of per-option counts always equals the total.
package stats

import (
	"math"

	"github.com/google/uuid"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
)

// OptionStats returns the vote count and percentage for each option, in
// the option order given. An option with zero votes reports percentage 0
// regardless of the total. Percentages are rounded to one decimal each,
// so they need not sum to exactly 100.
func OptionStats(options []domain.Option, votes []domain.Vote) []domain.OptionStat {
	total := len(votes)

	countByOption := make(map[uuid.UUID]int, len(options))
	for _, v := range votes {
		countByOption[v.OptionID]++
	}

	result := make([]domain.OptionStat, len(options))
	for i, opt := range options {
		count := countByOption[opt.ID]
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(count)/float64(total)*100*10) / 10
		}
		result[i] = domain.OptionStat{
			OptionID:   opt.ID,
			Text:       opt.Text,
			Votes:      count,
			Percentage: percentage,
		}
	}
	return result
}

// TotalVotes is the poll-wide vote count for a vote snapshot.
func TotalVotes(votes []domain.Vote) int {
	return len(votes)
}

// LikeCount is the poll-wide like count for a like snapshot.
func LikeCount(likes []domain.Like) int {
	return len(likes)
}
