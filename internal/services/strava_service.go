package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"gorm.io/datatypes"

	"runmind/internal/models/db_models"
	resp "runmind/internal/models/response_models"
	"runmind/internal/repositories"
	"runmind/pkg/log"
	mem "runmind/pkg/memcache"
	"runmind/pkg/utils"
)

const (
	oauthStateTTL   = 10 * time.Minute
	stravaPageSize  = 100
	stravaMaxPages  = 10
	stateTokenBytes = 16
)

var stravaRunTypes = map[string]bool{
	"Run":        true,
	"TrailRun":   true,
	"VirtualRun": true,
}

type StravaServiceInterface interface {
	// AuthURL starts the OAuth round trip. A nil actor starts a login, an
	// actor connects Strava to that existing account.
	AuthURL(ctx context.Context, actor *Actor) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*resp.AccountLoginResponse, error)
	Sync(ctx context.Context, actor Actor) (*resp.SyncResult, error)
}

type StravaService struct {
	client     StravaClient
	users      repositories.UserRepository
	tokens     repositories.StravaTokenRepository
	activities repositories.ActivityRepository
	states     mem.OAuthStateStore
	jwt        *utils.TokenManager
}

// NewStravaService accepts a nil client, every operation then reports that
// Strava is not configured.
func NewStravaService(
	client StravaClient,
	users repositories.UserRepository,
	tokens repositories.StravaTokenRepository,
	activities repositories.ActivityRepository,
	states mem.OAuthStateStore,
	jwt *utils.TokenManager,
) StravaServiceInterface {
	return &StravaService{
		client:     client,
		users:      users,
		tokens:     tokens,
		activities: activities,
		states:     states,
		jwt:        jwt,
	}
}

func (s *StravaService) AuthURL(ctx context.Context, actor *Actor) (string, error) {
	if s.client == nil {
		return "", utils.ErrStravaDisabled
	}
	state, err := utils.GenerateSecureToken(stateTokenBytes)
	if err != nil {
		return "", utils.Internal(err, "failed to generate oauth state")
	}
	owner := ""
	if actor != nil {
		owner = actor.ID.String()
	}
	s.states.Set(state, owner, oauthStateTTL)
	return s.client.AuthCodeURL(state), nil
}

func (s *StravaService) HandleCallback(ctx context.Context, code, state string) (*resp.AccountLoginResponse, error) {
	if s.client == nil {
		return nil, utils.ErrStravaDisabled
	}
	owner, ok := s.states.Consume(state)
	if !ok {
		return nil, utils.ErrInvalidOAuthState
	}

	tok, athlete, err := s.client.Exchange(ctx, code)
	if err != nil {
		log.Log.WithError(err).Warn("strava code exchange failed")
		return nil, utils.Validation("strava authorization failed")
	}

	user, err := s.resolveUser(ctx, owner, athlete)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, toStravaToken(user.ID, tok)); err != nil {
		return nil, utils.Internal(err, "failed to store strava token")
	}

	jwtToken, err := s.jwt.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, utils.Internal(err, "failed to issue token")
	}
	log.Log.WithFields(logrus.Fields{"user_id": user.ID, "strava_athlete_id": athlete.ID}).Info("strava connected")
	return &resp.AccountLoginResponse{Token: jwtToken, User: resp.NewAccountResponse(user)}, nil
}

// resolveUser links the Strava athlete to the user that started the flow,
// or finds the user already linked to it, or creates a new runner.
func (s *StravaService) resolveUser(ctx context.Context, owner string, athlete *StravaAthlete) (*db_models.User, error) {
	linked, err := s.users.FindByStravaID(ctx, athlete.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to look up strava user")
	}

	if owner == "" {
		if linked != nil {
			return linked, nil
		}
		user := &db_models.User{
			Name:            athlete.DisplayName(),
			Role:            db_models.RoleRunner,
			StravaAthleteID: &athlete.ID,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return nil, utils.NewServiceError(utils.ErrConflict, "strava account is already registered")
			}
			return nil, utils.Internal(err, "failed to create user")
		}
		return user, nil
	}

	ownerID, err := uuid.Parse(owner)
	if err != nil {
		return nil, utils.ErrInvalidOAuthState
	}
	user, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load user")
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if linked != nil && linked.ID != user.ID {
		return nil, utils.NewServiceError(utils.ErrConflict, "strava account is linked to another user")
	}
	if user.StravaAthleteID == nil || *user.StravaAthleteID != athlete.ID {
		if err := s.users.SetStravaAthleteID(ctx, user.ID, athlete.ID); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return nil, utils.NewServiceError(utils.ErrConflict, "strava account is linked to another user")
			}
			return nil, utils.Internal(err, "failed to link strava account")
		}
		user.StravaAthleteID = &athlete.ID
	}
	return user, nil
}

func (s *StravaService) Sync(ctx context.Context, actor Actor) (*resp.SyncResult, error) {
	if s.client == nil {
		return nil, utils.ErrStravaDisabled
	}
	if !actor.IsRunner() {
		return nil, utils.ErrRunnerOnly
	}

	stored, err := s.tokens.Find(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load strava token")
	}
	if stored == nil {
		return nil, utils.ErrStravaNotLinked
	}

	var after time.Time
	latest, err := s.activities.LatestStravaStart(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to read last sync")
	}
	if latest != nil {
		after = *latest
	}

	token := toOAuthToken(stored)
	var batch []db_models.Activity
	for page := 1; page <= stravaMaxPages; page++ {
		items, current, err := s.client.ListActivities(ctx, token, after, page, stravaPageSize)
		if current != nil {
			token = current
		}
		if err != nil {
			log.Log.WithField("user_id", actor.ID).WithError(err).Warn("strava fetch failed")
			// Strava invalidates the old refresh token once it rotates, so a
			// refresh from an earlier page must survive the failure.
			if saveErr := s.saveRefreshed(ctx, actor.ID, stored, token); saveErr != nil {
				log.Log.WithField("user_id", actor.ID).WithError(saveErr).Error("failed to store refreshed strava token")
			}
			return nil, utils.NewServiceError(utils.ErrInternal, "failed to fetch strava activities")
		}
		for _, item := range items {
			if stravaRunTypes[item.Kind()] {
				batch = append(batch, toActivity(actor.ID, item))
			}
		}
		if len(items) < stravaPageSize {
			break
		}
	}

	if err := s.saveRefreshed(ctx, actor.ID, stored, token); err != nil {
		return nil, utils.Internal(err, "failed to store refreshed strava token")
	}

	if len(batch) > 0 {
		if err := s.activities.UpsertStravaActivities(ctx, batch); err != nil {
			return nil, utils.Internal(err, "failed to import strava activities")
		}
	}

	log.Log.WithFields(logrus.Fields{"user_id": actor.ID, "imported": len(batch)}).Info("strava sync finished")
	return &resp.SyncResult{Imported: len(batch)}, nil
}

// saveRefreshed persists token when it differs from the stored one.
func (s *StravaService) saveRefreshed(ctx context.Context, userID uuid.UUID, stored *db_models.StravaToken, token *oauth2.Token) error {
	if token.AccessToken == stored.AccessToken && token.RefreshToken == stored.RefreshToken {
		return nil
	}
	return s.tokens.Save(ctx, toStravaToken(userID, token))
}

func toActivity(userID uuid.UUID, a StravaActivity) db_models.Activity {
	id := a.ID
	return db_models.Activity{
		UserID:           userID,
		StravaActivityID: &id,
		Name:             a.Name,
		SportType:        a.Kind(),
		StartDate:        a.StartDate.UTC(),
		DistanceMeters:   a.Distance,
		MovingTime:       a.MovingTime,
		ElapsedTime:      a.ElapsedTime,
		ElevationGain:    a.TotalElevationGain,
		AverageSpeed:     a.AverageSpeed,
		AverageHeartRate: a.AverageHeartrate,
		Calories:         a.Calories,
		Raw:              datatypes.JSON(a.Raw),
	}
}

func toOAuthToken(t *db_models.StravaToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func toStravaToken(userID uuid.UUID, t *oauth2.Token) *db_models.StravaToken {
	scope := stravaScope
	if granted, ok := t.Extra("scope").(string); ok && granted != "" {
		scope = granted
	}
	return &db_models.StravaToken{
		UserID:       userID,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
		Scope:        scope,
	}
}
