package page

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nitrotools/team-widget/internal/waitfor"

	"github.com/PuerkitoBio/goquery"
	resty "github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	BASE_PAGE_URL = "https://www.nitrotype.com/team"

	// ContainerSelector identifies the wrapper holding the team page's
	// stat tables; LeaderboardTableSelector is the table the widget is
	// inserted after.
	ContainerSelector        = "div.profile-tables"
	LeaderboardTableSelector = "table.table--leaderboard"
)

// Loader fetches team page HTML from the site.
type Loader struct {
	baseUrl    string
	httpClient *resty.Client
}

func NewLoader(baseUrl string) *Loader {
	return &Loader{
		baseUrl:    baseUrl,
		httpClient: resty.New(),
	}
}

// FetchTeamPage retrieves the HTML of the team page for the given tag.
func (l *Loader) FetchTeamPage(ctx context.Context, tag string) (string, error) {
	url := l.baseUrl + "/" + tag

	resp, err := l.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("GET %s returned %d", url, resp.StatusCode())
	}
	return string(resp.Body()), nil
}

// WaitForTeamPage re-fetches the team page until both insertion anchors are
// present, then returns the page HTML. The context bounds the whole wait.
func (l *Loader) WaitForTeamPage(ctx context.Context, tag string, interval time.Duration) (string, error) {
	var html string

	err := waitfor.Until(ctx, interval, func(ctx context.Context) (bool, error) {
		fetched, err := l.FetchTeamPage(ctx, tag)
		if err != nil {
			return false, err
		}
		if !HasAnchors(fetched) {
			logrus.Debugf("Team page for %s has no insertion anchors yet", tag)
			return false, nil
		}
		html = fetched
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return html, nil
}

// HasAnchors reports whether the document contains both the tables wrapper
// and the leaderboard table.
func HasAnchors(pageHTML string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return false
	}
	return doc.Find(ContainerSelector).Find(LeaderboardTableSelector).Length() > 0
}

// InjectWidget inserts the widget fragment immediately after the leaderboard
// table inside the tables wrapper and returns the augmented document. Either
// anchor missing is an error; the caller decides whether that is fatal.
func InjectWidget(pageHTML, widgetHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse team page: %w", err)
	}

	container := doc.Find(ContainerSelector)
	if container.Length() == 0 {
		return "", fmt.Errorf("container %q not found in team page", ContainerSelector)
	}

	table := container.Find(LeaderboardTableSelector).First()
	if table.Length() == 0 {
		return "", fmt.Errorf("leaderboard table %q not found in team page", LeaderboardTableSelector)
	}

	table.AfterHtml(widgetHTML)

	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize augmented page: %w", err)
	}
	return html, nil
}
