package models

// TopRequirement is the derived figure for one milestone rank: the races and
// points the team holding that rank has, plus the daily per-member race count
// this team would need to match it.
type TopRequirement struct {
	Rank             int `csv:"rank"`
	Played           int `csv:"races_played"`
	Points           int `csv:"points"`
	DailyMemberRaces int `csv:"daily_member_races"`
}
