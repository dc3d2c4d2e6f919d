package nitro

import (
	"encoding/json"
	"net/http"

	utils "github.com/nitrotools/team-widget/internal/utils"
	models "github.com/nitrotools/team-widget/models"

	resty "github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	BASE_URL_V2 = "https://www.nitrotype.com/api/v2"
)

// Interface for the Nitro Type client to interact with the public API.
type NitroClient interface {
	GetTeamProfile(tag string) (models.TeamProfile, error)
	GetScoreboard(period models.Period) (models.Scoreboard, error)
}

type NitroTypeClient struct {
	baseUrl    string
	httpClient *resty.Client
}

// NewNitroTypeClient builds a client that issues a single attempt per request.
// A failed source fails the whole widget build, so there is no retry policy.
func NewNitroTypeClient(baseUrl string) *NitroTypeClient {
	return &NitroTypeClient{
		baseUrl:    baseUrl,
		httpClient: resty.New(),
	}
}

// GetTeamProfile retrieves the public profile of the team with the given tag.
// The payload carries the member count and the team's own per-board race
// counts (see models.TeamProfile.SeasonRaces).
func (n *NitroTypeClient) GetTeamProfile(tag string) (models.TeamProfile, error) {

	url := n.baseUrl + "/teams/" + tag

	var profile models.TeamProfile

	if err := n.sendGetRequest(url, map[string]string{}, &profile); err != nil {
		return models.TeamProfile{}, err
	}

	return profile, nil
}

// GetScoreboard retrieves the ranked team score list for the given period
// (weekly or season), ordered by rank ascending, up to 100 entries.
func (n *NitroTypeClient) GetScoreboard(period models.Period) (models.Scoreboard, error) {

	url := n.baseUrl + "/scores"

	params := map[string]string{
		"board": string(period),
	}

	var board models.Scoreboard

	if err := n.sendGetRequest(url, params, &board); err != nil {
		return models.Scoreboard{}, err
	}

	return board, nil
}

func (n *NitroTypeClient) sendGetRequest(url string, params map[string]string, v interface{}) error {
	fullUrl := url
	if len(params) > 0 {
		fullUrl = url + "?" + utils.BuildQueryParams(params)
	}

	logrus.Debug("Sending GET request on url: " + fullUrl)

	resp, err := n.httpClient.R().
		SetHeader("Content-Type", "application/json").
		Get(fullUrl)

	if err != nil {
		return err
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusBadRequest {
		return &StatusError{URL: fullUrl, Status: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return &DecodeError{URL: fullUrl, Err: err}
	}

	return nil
}
