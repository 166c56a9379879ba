package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"runmind/pkg/config"
)

func newStravaTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		body := map[string]interface{}{
			"token_type":    "Bearer",
			"expires_in":    21600,
			"refresh_token": "refresh-2",
		}
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			body["access_token"] = "access-" + r.PostForm.Get("code")
			body["athlete"] = map[string]interface{}{"id": 4242, "firstname": "Ana", "lastname": "Runner"}
		case "refresh_token":
			assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
			body["access_token"] = "refreshed"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("/api/v3/athlete/activities", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer refreshed" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("page") == "3" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "1714521600", r.URL.Query().Get("after"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 11, "name": "Easy", "type": "Run", "sport_type": "TrailRun", "start_date": "2024-05-02T06:00:00Z",
			 "distance": 8012.5, "moving_time": 2700, "elapsed_time": 2800, "total_elevation_gain": 120,
			 "average_speed": 2.97, "average_heartrate": 141.2, "map": {"id": "a1"}},
			{"id": 12, "name": "Commute", "type": "Ride", "start_date": "2024-05-02T17:00:00Z"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestStravaClient(srv *httptest.Server) *stravaClient {
	cfg := config.StravaConfig{ClientID: "client-id", ClientSecret: "client-secret", RedirectURL: "http://localhost/cb"}
	return newStravaClient(cfg, srv.URL+"/oauth", srv.URL+"/api/v3")
}

func TestStravaClient_AuthCodeURL(t *testing.T) {
	c := newStravaClient(config.StravaConfig{ClientID: "client-id", RedirectURL: "http://localhost/cb"}, stravaOAuthBaseURL, stravaAPIBaseURL)

	u, err := url.Parse(c.AuthCodeURL("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "www.strava.com", u.Host)
	assert.Equal(t, "/oauth/authorize", u.Path)
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "read,activity:read_all", u.Query().Get("scope"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
}

func TestStravaClient_Exchange(t *testing.T) {
	c := newTestStravaClient(newStravaTestServer(t))

	tok, athlete, err := c.Exchange(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", tok.AccessToken)
	assert.Equal(t, int64(4242), athlete.ID)
	assert.Equal(t, "Ana Runner", athlete.DisplayName())
}

func TestStravaClient_ListActivitiesRefreshesToken(t *testing.T) {
	c := newTestStravaClient(newStravaTestServer(t))
	expired := &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-time.Hour),
	}

	after := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	items, tok, err := c.ListActivities(context.Background(), expired, after, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, "refreshed", tok.AccessToken)
	assert.Equal(t, "refresh-2", tok.RefreshToken)

	require.Len(t, items, 2)
	assert.Equal(t, int64(11), items[0].ID)
	assert.Equal(t, "TrailRun", items[0].Kind())
	assert.Equal(t, 2700, items[0].MovingTime)
	require.NotNil(t, items[0].AverageHeartrate)
	assert.InDelta(t, 141.2, *items[0].AverageHeartrate, 0.001)
	assert.Contains(t, string(items[0].Raw), `"map"`)
	assert.Equal(t, "Ride", items[1].Kind())
}

func TestStravaClient_ListActivitiesErrorKeepsRefreshedToken(t *testing.T) {
	c := newTestStravaClient(newStravaTestServer(t))
	expired := &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-time.Hour),
	}

	items, tok, err := c.ListActivities(context.Background(), expired, time.Now(), 3, 100)
	require.Error(t, err)
	assert.Nil(t, items)
	require.NotNil(t, tok)
	assert.Equal(t, "refreshed", tok.AccessToken)
	assert.Equal(t, "refresh-2", tok.RefreshToken)
}

func TestStravaAthlete_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana", StravaAthlete{ID: 1, FirstName: "Ana"}.DisplayName())
	assert.Equal(t, "Strava athlete 7", StravaAthlete{ID: 7}.DisplayName())
}
