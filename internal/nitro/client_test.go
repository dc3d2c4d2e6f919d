package nitro

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	models "github.com/nitrotools/team-widget/models"
	"github.com/stretchr/testify/assert"
)

func setupTestServer(_ *testing.T, handler http.HandlerFunc) (*httptest.Server, *NitroTypeClient) {
	server := httptest.NewServer(handler)
	client := NewNitroTypeClient(server.URL)
	return server, client
}

func teamProfileJSON(members, seasonRaces int) map[string]interface{} {
	return map[string]interface{}{
		"results": map[string]interface{}{
			"info": map[string]interface{}{"members": members},
			"stats": []map[string]interface{}{
				{"board": "daily", "played": 12},
				{"board": "season", "played": seasonRaces},
			},
		},
	}
}

func TestGetTeamProfile(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/MYTEAM", r.URL.Path)
		json.NewEncoder(w).Encode(teamProfileJSON(25, 3000))
	}
	server, client := setupTestServer(t, handler)
	defer server.Close()

	profile, err := client.GetTeamProfile("MYTEAM")
	assert.NoError(t, err)
	assert.Equal(t, 25, profile.Results.Info.Members)
	assert.Equal(t, 3000, profile.SeasonRaces())
}

func TestGetTeamProfile_NoSeasonBoard(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": map[string]interface{}{
				"info":  map[string]interface{}{"members": 10},
				"stats": []map[string]interface{}{{"board": "daily", "played": 5}},
			},
		})
	}
	server, client := setupTestServer(t, handler)
	defer server.Close()

	profile, err := client.GetTeamProfile("MYTEAM")
	assert.NoError(t, err)
	assert.Equal(t, 0, profile.SeasonRaces())
}

func TestGetScoreboard(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scores", r.URL.Path)
		assert.Equal(t, "season", r.URL.Query().Get("board"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": map[string]interface{}{
				"scores": []map[string]interface{}{
					{"played": 5000, "points": 90000},
					{"played": 4000, "points": 81000},
				},
			},
		})
	}
	server, client := setupTestServer(t, handler)
	defer server.Close()

	board, err := client.GetScoreboard(models.Season)
	assert.NoError(t, err)
	assert.Len(t, board.Results.Scores, 2)
	assert.Equal(t, 5000, board.Results.Scores[0].Played)
	assert.Equal(t, 81000, board.Results.Scores[1].Points)
}

func TestGetTeamProfile_ErrorStatus(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}
	server, client := setupTestServer(t, handler)
	defer server.Close()

	_, err := client.GetTeamProfile("NOPE")
	assert.Error(t, err)

	var statusErr *StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}

func TestGetScoreboard_InvalidJSON(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}
	server, client := setupTestServer(t, handler)
	defer server.Close()

	_, err := client.GetScoreboard(models.Weekly)
	assert.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestGetScoreboard_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "fail", http.StatusInternalServerError)
	}
	server, client := setupTestServer(t, handler)
	defer server.Close()

	_, err := client.GetScoreboard(models.Weekly)
	assert.Error(t, err)

	var statusErr *StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
}
