package models

// Period selects which scoreboard an API call targets.
type Period string

const (
	Weekly Period = "weekly"
	Season Period = "season"
)

// TeamProfile is the raw payload of the team endpoint. Only the fields the
// widget needs are mapped; everything else the API returns is discarded on
// decode.
type TeamProfile struct {
	Results struct {
		Info struct {
			Members int `json:"members"`
		} `json:"info"`
		Stats []TeamBoardStat `json:"stats"`
	} `json:"results"`
}

type TeamBoardStat struct {
	Board  string `json:"board"`
	Played int    `json:"played"`
}

// SeasonRaces returns the team's own season race count, taken from the stats
// entry whose board is "season". Returns 0 when the API omits that board.
func (p TeamProfile) SeasonRaces() int {
	for _, stat := range p.Results.Stats {
		if stat.Board == "season" {
			return stat.Played
		}
	}
	return 0
}

// Scoreboard is the raw payload of the scores endpoint: up to 100 entries
// ordered by rank ascending (index 0 is 1st place).
type Scoreboard struct {
	Results struct {
		Scores []Score `json:"scores"`
	} `json:"results"`
}

type Score struct {
	Played int `json:"played"`
	Points int `json:"points"`
}

// LeaderboardEntry is the projection of a Score kept for requirement
// calculation.
type LeaderboardEntry struct {
	Played int `json:"played"`
	Points int `json:"points"`
}

// TeamSnapshot is the projection of a TeamProfile kept for requirement
// calculation.
type TeamSnapshot struct {
	Members     int `json:"members"`
	SeasonRaces int `json:"seasonRaces"`
}
