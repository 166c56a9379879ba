package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"runmind/pkg/config"
)

const (
	stravaOAuthBaseURL = "https://www.strava.com/oauth"
	stravaAPIBaseURL   = "https://www.strava.com/api/v3"
	// Strava expects a comma separated scope list in a single parameter.
	stravaScope = "read,activity:read_all"
)

type StravaAthlete struct {
	ID        int64
	FirstName string
	LastName  string
}

func (a StravaAthlete) DisplayName() string {
	name := a.FirstName
	if a.LastName != "" {
		if name != "" {
			name += " "
		}
		name += a.LastName
	}
	if name == "" {
		return "Strava athlete " + strconv.FormatInt(a.ID, 10)
	}
	return name
}

// StravaActivity is the summary representation returned by
// /athlete/activities. Raw keeps the full payload.
type StravaActivity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"moving_time"`
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed"`
	AverageHeartrate   *float64  `json:"average_heartrate"`
	Calories           *float64  `json:"calories"`

	Raw json.RawMessage `json:"-"`
}

// Kind prefers sport_type, which Strava fills for newer activities.
func (a StravaActivity) Kind() string {
	if a.SportType != "" {
		return a.SportType
	}
	return a.Type
}

type StravaClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, *StravaAthlete, error)
	// ListActivities returns one page of activities started after the given
	// time. The returned token differs from the input when it was refreshed,
	// and is also returned with an API error status.
	ListActivities(ctx context.Context, token *oauth2.Token, after time.Time, page, perPage int) ([]StravaActivity, *oauth2.Token, error)
}

type stravaClient struct {
	oauth  *oauth2.Config
	apiURL string
}

func NewStravaClient(cfg config.StravaConfig) StravaClient {
	return newStravaClient(cfg, stravaOAuthBaseURL, stravaAPIBaseURL)
}

func newStravaClient(cfg config.StravaConfig, oauthURL, apiURL string) *stravaClient {
	return &stravaClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{stravaScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   oauthURL + "/authorize",
				TokenURL:  oauthURL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiURL: apiURL,
	}
}

func (c *stravaClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

func (c *stravaClient) Exchange(ctx context.Context, code string) (*oauth2.Token, *StravaAthlete, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, errors.Wrap(err, "strava token exchange")
	}

	raw, ok := tok.Extra("athlete").(map[string]interface{})
	if !ok {
		return nil, nil, errors.New("strava token response has no athlete")
	}
	id, ok := raw["id"].(float64)
	if !ok || id <= 0 {
		return nil, nil, errors.New("strava token response has no athlete id")
	}
	athlete := &StravaAthlete{ID: int64(id)}
	athlete.FirstName, _ = raw["firstname"].(string)
	athlete.LastName, _ = raw["lastname"].(string)
	return tok, athlete, nil
}

func (c *stravaClient) ListActivities(ctx context.Context, token *oauth2.Token, after time.Time, page, perPage int) ([]StravaActivity, *oauth2.Token, error) {
	// The token source refreshes an expired access token on first use.
	ts := c.oauth.TokenSource(ctx, token)
	client := resty.NewWithClient(oauth2.NewClient(ctx, ts)).SetBaseURL(c.apiURL)

	var payload []json.RawMessage
	res, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"after":    strconv.FormatInt(after.Unix(), 10),
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		}).
		SetResult(&payload).
		Get("/athlete/activities")
	if err != nil {
		return nil, nil, errors.Wrap(err, "strava list activities")
	}
	if res.IsError() {
		// The request went out, so the token source holds a usable token.
		current, _ := ts.Token()
		return nil, current, errors.Errorf("strava list activities: status %d", res.StatusCode())
	}

	activities := make([]StravaActivity, 0, len(payload))
	for _, item := range payload {
		var a StravaActivity
		if err := json.Unmarshal(item, &a); err != nil {
			return nil, nil, errors.Wrap(err, "decode strava activity")
		}
		a.Raw = item
		activities = append(activities, a)
	}

	current, err := ts.Token()
	if err != nil {
		return nil, nil, errors.Wrap(err, "strava token")
	}
	return activities, current, nil
}
