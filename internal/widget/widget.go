package widget

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/nitrotools/team-widget/models"
)

// Mode selects which precomputed requirement set the widget shows.
type Mode string

const (
	Weekly Mode = "weekly"
	Season Mode = "season"
)

var fragmentTmpl = template.Must(template.New("widget").Parse(`<section class="team-requirements">
<h3 class="team-requirements__title">Top Team Requirements</h3>
<div class="team-requirements__toggle">
<button type="button" class="team-requirements__mode{{if .WeeklyActive}} is-active{{end}}" data-mode="weekly">Weekly</button>
<button type="button" class="team-requirements__mode{{if .SeasonActive}} is-active{{end}}" data-mode="season">Season</button>
</div>
<table class="team-requirements__table">
<thead><tr><th>Rank</th><th>Races</th><th>Points</th><th>Daily Races / Member</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>#{{.Rank}}</td><td>{{.Played}}</td><td>{{.Points}}</td><td>{{.DailyMemberRaces}}</td></tr>
{{end}}</tbody>
<tfoot><tr><td colspan="4">{{.Footnote}}</td></tr></tfoot>
</table>
</section>`))

type fragmentData struct {
	WeeklyActive bool
	SeasonActive bool
	Rows         []models.TopRequirement
	Footnote     string
}

// Widget is a two-state view over the two precomputed requirement sets. It
// never fetches: toggling only swaps which set fills the table body and
// which control carries the active state. Initial mode is Weekly.
type Widget struct {
	weekly      []models.TopRequirement
	season      []models.TopRequirement
	members     int
	seasonRaces int
	mode        Mode
}

func New(weekly, season []models.TopRequirement, members, seasonRaces int) *Widget {
	return &Widget{
		weekly:      weekly,
		season:      season,
		members:     members,
		seasonRaces: seasonRaces,
		mode:        Weekly,
	}
}

// Mode returns the currently active mode.
func (w *Widget) Mode() Mode {
	return w.mode
}

// Toggle activates the given mode. A click on the already-active control is
// a no-op; the return value reports whether the state changed.
func (w *Widget) Toggle(mode Mode) bool {
	if mode == w.mode {
		return false
	}
	w.mode = mode
	return true
}

// Requirements returns the requirement set for the active mode.
func (w *Widget) Requirements() []models.TopRequirement {
	if w.mode == Season {
		return w.season
	}
	return w.weekly
}

// Footnote describes the assumptions behind the active mode's figures.
func (w *Widget) Footnote() string {
	if w.mode == Season {
		return fmt.Sprintf("Assuming %d members; %d season races played so far.", w.members, w.seasonRaces)
	}
	return fmt.Sprintf("Assuming %d members.", w.members)
}

// Render builds the full widget fragment for the active mode: title, mode
// toggle, table with header, body and footnote. The body is rebuilt from
// scratch on every call, there is no partial update.
func (w *Widget) Render() (string, error) {
	var buf strings.Builder
	err := fragmentTmpl.Execute(&buf, fragmentData{
		WeeklyActive: w.mode == Weekly,
		SeasonActive: w.mode == Season,
		Rows:         w.Requirements(),
		Footnote:     w.Footnote(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render widget fragment: %w", err)
	}
	return buf.String(), nil
}
