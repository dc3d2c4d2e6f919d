package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nitrotools/team-widget/internal/dao"
	"github.com/nitrotools/team-widget/internal/fetcher"
	"github.com/nitrotools/team-widget/internal/page"
	"github.com/nitrotools/team-widget/internal/requirement"
	"github.com/nitrotools/team-widget/internal/widget"
	"github.com/nitrotools/team-widget/models"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// ANCHOR_POLL_INTERVAL is how often the team page is re-fetched while
// waiting for the insertion anchors to appear.
const ANCHOR_POLL_INTERVAL = 2 * time.Second

// PageLoader is the part of the page package the job depends on.
type PageLoader interface {
	WaitForTeamPage(ctx context.Context, tag string, interval time.Duration) (string, error)
}

type Config struct {
	// TeamTag is the team whose page is decorated.
	TeamTag string
	// SessionTag is the tag of the team the configured session belongs to.
	// When set, the job only runs on that team's own page.
	SessionTag string
}

// RunUpdate builds and publishes the requirement widget for one team page.
// All three data sources must succeed before anything is computed or
// rendered; a single failed source fails the whole build.
func RunUpdate(ctx context.Context, src fetcher.DataSource, loader PageLoader, publisher dao.DAO, cfg Config) error {
	if cfg.SessionTag != "" && !strings.EqualFold(cfg.SessionTag, cfg.TeamTag) {
		logrus.Infof("Team page %s does not belong to session team %s, nothing to do", cfg.TeamTag, cfg.SessionTag)
		return nil
	}

	team, err := src.TeamStats(cfg.TeamTag)
	if err != nil {
		return errors.New("get team stats: " + err.Error())
	}
	logrus.Infof("Team %s has %d members and %d season races", cfg.TeamTag, team.Members, team.SeasonRaces)

	weeklyBoard, err := src.Leaderboard(models.Weekly)
	if err != nil {
		return errors.New("get weekly leaderboard: " + err.Error())
	}
	seasonBoard, err := src.Leaderboard(models.Season)
	if err != nil {
		return errors.New("get season leaderboard: " + err.Error())
	}
	logrus.Infof("Got %d weekly and %d season leaderboard entries", len(weeklyBoard), len(seasonBoard))

	weeklyReqs, err := requirement.Weekly(weeklyBoard, team.Members)
	if err != nil {
		return errors.New("compute weekly requirements: " + err.Error())
	}
	seasonReqs, err := requirement.Season(seasonBoard, team.Members, team.SeasonRaces)
	if err != nil {
		return errors.New("compute season requirements: " + err.Error())
	}

	w := widget.New(weeklyReqs, seasonReqs, team.Members, team.SeasonRaces)
	fragment, err := w.Render()
	if err != nil {
		return errors.New("render widget: " + err.Error())
	}

	pageHTML, err := loader.WaitForTeamPage(ctx, cfg.TeamTag, ANCHOR_POLL_INTERVAL)
	if err != nil {
		return errors.New("load team page: " + err.Error())
	}
	augmented, err := page.InjectWidget(pageHTML, fragment)
	if err != nil {
		return errors.New("inject widget: " + err.Error())
	}

	var saveErr error
	saveErr = multierr.Append(saveErr, publisher.SaveTeamPage(cfg.TeamTag, augmented))
	saveErr = multierr.Append(saveErr, publisher.SaveRequirementInfos(string(widget.Weekly), weeklyReqs))
	saveErr = multierr.Append(saveErr, publisher.SaveRequirementInfos(string(widget.Season), seasonReqs))
	if saveErr != nil {
		return errors.New("save outputs: " + saveErr.Error())
	}

	logrus.Info("Job completed successfully.")
	return nil
}
