package dao

import (
	"fmt"
	"os"

	"github.com/nitrotools/team-widget/internal/utils"
	"github.com/nitrotools/team-widget/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type LocalDAO struct {
	outputPath     string
	pageDir        string
	requirementDir string
}

func NewLocalDAO(outputPath, pageDir, requirementDir string) *LocalDAO {
	var err error
	err = multierr.Append(err, utils.CreateDirectoryIfNotExists(outputPath+"/"+pageDir))
	err = multierr.Append(err, utils.CreateDirectoryIfNotExists(outputPath+"/"+requirementDir))

	if err != nil {
		logrus.WithError(err).Fatal("Failed to create output directories")
	}

	return &LocalDAO{
		outputPath:     outputPath,
		pageDir:        pageDir,
		requirementDir: requirementDir,
	}
}

func (d *LocalDAO) SaveTeamPage(tag string, html string) error {
	filepath := d.outputPath + "/" + d.pageDir + "/" + TEAM_PAGE_FILENAME
	logrus.Infof("Saving augmented page for team %s to %s", tag, filepath)
	if err := os.WriteFile(filepath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write team page %s: %w", filepath, err)
	}
	return nil
}

func (d *LocalDAO) SaveRequirementInfos(mode string, reqs []models.TopRequirement) error {
	filepath := d.outputPath + "/" + d.requirementDir + "/" + fmt.Sprintf(REQUIREMENT_FILENAME_FORMAT, mode)

	if len(reqs) == 0 {
		logrus.Warnf("No data to save to %s", filepath)
		return nil
	}

	file, err := os.OpenFile(filepath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	logrus.Infof("Saving %d %s requirement infos to %s", len(reqs), mode, filepath)
	return gocsv.MarshalFile(reqs, file)
}
