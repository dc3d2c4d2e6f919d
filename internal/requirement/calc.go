package requirement

import (
	"fmt"

	"github.com/nitrotools/team-widget/models"
)

// MilestoneRanks are the tracked leaderboard positions used as reference
// points. Rank r maps to leaderboard index r-1.
var MilestoneRanks = []int{1, 3, 10, 50, 100}

// Weekly derives, for each milestone rank present in the leaderboard, the
// races a member must run per day to match that rank's weekly race total:
// ceil(played / 7 / members). Milestones beyond the end of the leaderboard
// are omitted from the result.
func Weekly(entries []models.LeaderboardEntry, members int) ([]models.TopRequirement, error) {
	if members <= 0 {
		return nil, fmt.Errorf("member count must be positive, got %d", members)
	}
	return forMilestones(entries, func(played int) int {
		return ceilDiv(played, 7*members)
	}), nil
}

// Season derives, for each milestone rank present in the leaderboard, the
// races a member must run to close the team's remaining season gap to that
// rank: ceil((played - seasonRaces) / members). When the team already
// exceeds a milestone the figure is negative and passed through unmodified.
func Season(entries []models.LeaderboardEntry, members, seasonRaces int) ([]models.TopRequirement, error) {
	if members <= 0 {
		return nil, fmt.Errorf("member count must be positive, got %d", members)
	}
	return forMilestones(entries, func(played int) int {
		return ceilDiv(played-seasonRaces, members)
	}), nil
}

func forMilestones(entries []models.LeaderboardEntry, daily func(played int) int) []models.TopRequirement {
	reqs := make([]models.TopRequirement, 0, len(MilestoneRanks))
	for _, rank := range MilestoneRanks {
		idx := rank - 1
		if idx >= len(entries) {
			continue
		}
		entry := entries[idx]
		reqs = append(reqs, models.TopRequirement{
			Rank:             rank,
			Played:           entry.Played,
			Points:           entry.Points,
			DailyMemberRaces: daily(entry.Played),
		})
	}
	return reqs
}

// ceilDiv returns ceil(a/b) for positive b. Go's truncating division already
// rounds negative quotients toward zero, which is the ceiling.
func ceilDiv(a, b int) int {
	if a > 0 {
		return (a + b - 1) / b
	}
	return a / b
}
