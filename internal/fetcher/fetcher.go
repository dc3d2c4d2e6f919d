package fetcher

import (
	"encoding/json"

	"github.com/nitrotools/team-widget/internal/cache"
	"github.com/nitrotools/team-widget/internal/nitro"
	"github.com/nitrotools/team-widget/models"

	"github.com/sirupsen/logrus"
)

// Cache keys for the three data sources. One entry per source; entries are
// independent and carry no cross-key consistency guarantee.
const (
	TeamStatsKey         = "teamStats"
	WeeklyLeaderboardKey = "weeklyLeaderboardInfo"
	SeasonLeaderboardKey = "seasonLeaderboardInfo"
)

// MaxLeaderboardEntries caps the projection taken from a scoreboard payload.
const MaxLeaderboardEntries = 100

// DataSource is what the update job consumes: the three cached fetch
// operations, already projected to the shapes the calculator needs.
type DataSource interface {
	TeamStats(tag string) (models.TeamSnapshot, error)
	Leaderboard(period models.Period) ([]models.LeaderboardEntry, error)
}

// Fetcher wires the API client behind the cache store. Every operation
// consults the store first and writes through on a successful fetch. A fetch
// failure propagates; there is no stale-cache fallback and no retry.
type Fetcher struct {
	client nitro.NitroClient
	store  cache.Store
}

func New(client nitro.NitroClient, store cache.Store) *Fetcher {
	return &Fetcher{
		client: client,
		store:  store,
	}
}

// TeamStats returns the member count and season race count of the team with
// the given tag.
func (f *Fetcher) TeamStats(tag string) (models.TeamSnapshot, error) {
	if payload, ok := f.store.Get(TeamStatsKey); ok {
		var snap models.TeamSnapshot
		if err := json.Unmarshal(payload, &snap); err == nil {
			return snap, nil
		}
		logrus.Warnf("Cached payload under %s is malformed, refetching", TeamStatsKey)
	}

	profile, err := f.client.GetTeamProfile(tag)
	if err != nil {
		return models.TeamSnapshot{}, err
	}

	snap := models.TeamSnapshot{
		Members:     profile.Results.Info.Members,
		SeasonRaces: profile.SeasonRaces(),
	}
	f.writeThrough(TeamStatsKey, snap)
	return snap, nil
}

// Leaderboard returns up to 100 rank-ordered entries for the given period.
// Fields other than the race and point counts are discarded.
func (f *Fetcher) Leaderboard(period models.Period) ([]models.LeaderboardEntry, error) {
	key := leaderboardKey(period)

	if payload, ok := f.store.Get(key); ok {
		var entries []models.LeaderboardEntry
		if err := json.Unmarshal(payload, &entries); err == nil {
			return entries, nil
		}
		logrus.Warnf("Cached payload under %s is malformed, refetching", key)
	}

	board, err := f.client.GetScoreboard(period)
	if err != nil {
		return nil, err
	}

	scores := board.Results.Scores
	if len(scores) > MaxLeaderboardEntries {
		scores = scores[:MaxLeaderboardEntries]
	}
	entries := make([]models.LeaderboardEntry, 0, len(scores))
	for _, score := range scores {
		entries = append(entries, models.LeaderboardEntry{
			Played: score.Played,
			Points: score.Points,
		})
	}

	f.writeThrough(key, entries)
	return entries, nil
}

func leaderboardKey(period models.Period) string {
	if period == models.Season {
		return SeasonLeaderboardKey
	}
	return WeeklyLeaderboardKey
}

// writeThrough stores the projection under key. A cache write failure only
// degrades the next run to a refetch, so it is logged and not propagated.
func (f *Fetcher) writeThrough(key string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Warnf("Failed to marshal payload for cache key %s", key)
		return
	}
	if err := f.store.Set(key, payload); err != nil {
		logrus.WithError(err).Warnf("Failed to cache payload under key %s", key)
	}
}
