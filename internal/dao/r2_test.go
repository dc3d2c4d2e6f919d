package dao

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/nitrotools/team-widget/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type MockS3Uploader struct {
	mock.Mock
}

func (m *MockS3Uploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestR2SaveTeamPage(t *testing.T) {
	mockS3 := new(MockS3Uploader)
	dao := NewR2DAOWithClient("bucket", "pages", "reqs", mockS3)

	var captured *s3.PutObjectInput
	mockS3.On("PutObject", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*s3.PutObjectInput)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	err := dao.SaveTeamPage("MYTEAM", "<html>augmented</html>")
	assert.NoError(t, err)
	assert.Equal(t, "bucket", *captured.Bucket)
	assert.Equal(t, "pages/"+TEAM_PAGE_FILENAME, *captured.Key)
	assert.Equal(t, "text/html", *captured.ContentType)

	body, err := io.ReadAll(captured.Body)
	assert.NoError(t, err)
	assert.Equal(t, "<html>augmented</html>", string(body))
}

func TestR2SaveRequirementInfos(t *testing.T) {
	mockS3 := new(MockS3Uploader)
	dao := NewR2DAOWithClient("bucket", "pages", "reqs", mockS3)

	var captured *s3.PutObjectInput
	mockS3.On("PutObject", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*s3.PutObjectInput)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	reqs := []models.TopRequirement{
		{Rank: 1, Played: 700, Points: 50000, DailyMemberRaces: 10},
	}
	err := dao.SaveRequirementInfos("weekly", reqs)
	assert.NoError(t, err)
	assert.Equal(t, "reqs/requirements_weekly.csv", *captured.Key)
	assert.Equal(t, "text/csv", *captured.ContentType)

	body, err := io.ReadAll(captured.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "rank,races_played,points,daily_member_races")
	assert.Contains(t, string(body), "1,700,50000,10")
}

func TestR2SaveRequirementInfos_Empty(t *testing.T) {
	mockS3 := new(MockS3Uploader)
	dao := NewR2DAOWithClient("bucket", "pages", "reqs", mockS3)

	err := dao.SaveRequirementInfos("weekly", nil)
	assert.NoError(t, err)
	mockS3.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestR2SaveTeamPage_UploadError(t *testing.T) {
	mockS3 := new(MockS3Uploader)
	dao := NewR2DAOWithClient("bucket", "pages", "reqs", mockS3)

	mockS3.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("denied")).Once()

	err := dao.SaveTeamPage("MYTEAM", "<html></html>")
	assert.Error(t, err)
}
