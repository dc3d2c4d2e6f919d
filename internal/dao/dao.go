package dao

import (
	"context"

	"github.com/nitrotools/team-widget/models"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	TEAM_PAGE_FILENAME          = "team_page.html"
	REQUIREMENT_FILENAME_FORMAT = "requirements_%s.csv"
)

type S3Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DAO publishes the augmented team page and the derived requirement tables.
// Outputs are independent; one failing does not stop the others.
type DAO interface {
	SaveTeamPage(tag string, html string) error
	SaveRequirementInfos(mode string, reqs []models.TopRequirement) error
}
