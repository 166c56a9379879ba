package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"runmind/internal/models/db_models"
	resp "runmind/internal/models/response_models"
	"runmind/internal/repositories"
	"runmind/pkg/log"
	"runmind/pkg/utils"
)

type LinkServiceInterface interface {
	CreateRequest(ctx context.Context, actor Actor, coachEmail string) (*resp.LinkResponse, error)
	ListPendingForCoach(ctx context.Context, actor Actor) ([]resp.LinkResponse, error)
	RespondToRequest(ctx context.Context, actor Actor, linkID uuid.UUID, status string) (*resp.LinkResponse, error)
	ListLinked(ctx context.Context, actor Actor, status string) ([]resp.LinkResponse, error)
	Revoke(ctx context.Context, actor Actor, linkID uuid.UUID) error
}

type LinkService struct {
	links  repositories.LinkRepository
	users  repositories.UserRepository
	mailer IMailService
}

func NewLinkService(links repositories.LinkRepository, users repositories.UserRepository, mailer IMailService) LinkServiceInterface {
	return &LinkService{links: links, users: users, mailer: mailer}
}

func linkExistsError(status db_models.LinkStatus) error {
	return utils.NewServiceError(utils.ErrConflict, "a link with this coach already exists (status: %s)", status).
		WithDetails(map[string]interface{}{"existing_status": string(status)})
}

func (s *LinkService) CreateRequest(ctx context.Context, actor Actor, coachEmail string) (*resp.LinkResponse, error) {
	athlete, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load requesting user")
	}
	if athlete == nil {
		return nil, utils.ErrUserNotFound
	}
	if !athlete.IsRunner() {
		return nil, utils.ErrRunnerOnly
	}

	coach, err := s.users.FindByEmail(ctx, normalizeEmail(coachEmail))
	if err != nil {
		return nil, utils.Internal(err, "failed to look up coach")
	}
	if coach == nil || !coach.IsCoach() {
		return nil, utils.ErrCoachNotFound
	}
	if coach.ID == athlete.ID {
		return nil, utils.ErrSelfLink
	}

	existing, err := s.links.FindByPair(ctx, coach.ID, athlete.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to check existing link")
	}
	if existing != nil {
		return nil, linkExistsError(existing.Status)
	}

	link := &db_models.CoachAthleteLink{
		CoachID:   coach.ID,
		AthleteID: athlete.ID,
		Status:    db_models.LinkStatusPending,
		Initiator: db_models.InitiatorAthlete,
	}
	if err := s.links.Create(ctx, link); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent request for the same pair.
			return nil, s.duplicateLinkError(ctx, coach.ID, athlete.ID)
		}
		return nil, utils.Internal(err, "failed to create link request")
	}

	if coach.Email != nil {
		s.notify(s.mailer.SendLinkRequested(*coach.Email, athlete.Name), "link_requested", link.ID)
	}

	out := resp.NewLinkResponse(link)
	return &out, nil
}

func (s *LinkService) duplicateLinkError(ctx context.Context, coachID, athleteID uuid.UUID) error {
	existing, err := s.links.FindByPair(ctx, coachID, athleteID)
	if err != nil || existing == nil {
		return utils.NewServiceError(utils.ErrConflict, "a link with this coach already exists")
	}
	return linkExistsError(existing.Status)
}

func (s *LinkService) ListPendingForCoach(ctx context.Context, actor Actor) ([]resp.LinkResponse, error) {
	if !actor.IsCoach() {
		return nil, utils.ErrCoachOnly
	}
	links, err := s.links.ListPendingForCoach(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to list pending requests")
	}
	return resp.NewLinkResponses(links), nil
}

func (s *LinkService) RespondToRequest(ctx context.Context, actor Actor, linkID uuid.UUID, status string) (*resp.LinkResponse, error) {
	if !actor.IsCoach() {
		return nil, utils.ErrCoachOnly
	}
	newStatus := db_models.LinkStatus(status)
	if newStatus != db_models.LinkStatusAccepted && newStatus != db_models.LinkStatusDeclined {
		return nil, utils.Validation("status must be %q or %q", db_models.LinkStatusAccepted, db_models.LinkStatusDeclined)
	}

	link, err := s.links.UpdateStatusIfPending(ctx, linkID, actor.ID, newStatus)
	if err != nil {
		return nil, utils.Internal(err, "failed to update link")
	}
	if link == nil {
		return nil, s.explainRespondFailure(ctx, actor, linkID)
	}

	s.notifyAthlete(ctx, link, actor)

	out := resp.NewLinkResponse(link)
	return &out, nil
}

// explainRespondFailure reads the link after a conditional update matched no
// row, only to tell the caller which precondition failed.
func (s *LinkService) explainRespondFailure(ctx context.Context, actor Actor, linkID uuid.UUID) error {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return utils.Internal(err, "failed to load link")
	}
	switch {
	case link == nil:
		return utils.ErrLinkNotFound
	case link.CoachID != actor.ID:
		return utils.ErrNotLinkCoach
	default:
		return utils.NewServiceError(utils.ErrConflict, "link is no longer pending (status: %s)", link.Status).
			WithDetails(map[string]interface{}{"current_status": string(link.Status)})
	}
}

func (s *LinkService) notifyAthlete(ctx context.Context, link *db_models.CoachAthleteLink, actor Actor) {
	athlete, err := s.users.FindByID(ctx, link.AthleteID)
	if err != nil || athlete == nil || athlete.Email == nil {
		return
	}
	coach, err := s.users.FindByID(ctx, actor.ID)
	if err != nil || coach == nil {
		return
	}
	s.notify(s.mailer.SendLinkResponded(*athlete.Email, coach.Name, string(link.Status)), "link_responded", link.ID)
}

func (s *LinkService) notify(err error, kind string, linkID uuid.UUID) {
	if err != nil {
		log.Log.WithFields(logrus.Fields{"mail": kind, "link_id": linkID}).WithError(err).Warn("failed to queue notification")
	}
}

func (s *LinkService) ListLinked(ctx context.Context, actor Actor, status string) ([]resp.LinkResponse, error) {
	if status == "" {
		status = string(db_models.LinkStatusAccepted)
	}
	linkStatus, ok := db_models.ParseLinkStatus(status)
	if !ok {
		return nil, utils.Validation("invalid status %q", status)
	}

	links, err := s.links.ListForUser(ctx, actor.ID, actor.IsCoach(), linkStatus)
	if err != nil {
		return nil, utils.Internal(err, "failed to list links")
	}
	return resp.NewLinkResponses(links), nil
}

func (s *LinkService) Revoke(ctx context.Context, actor Actor, linkID uuid.UUID) error {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return utils.Internal(err, "failed to load link")
	}
	if link == nil {
		return utils.ErrLinkNotFound
	}
	if !link.IsParty(actor.ID) {
		return utils.ErrNotLinkParty
	}

	deleted, err := s.links.Delete(ctx, linkID)
	if err != nil {
		return utils.Internal(err, "failed to revoke link")
	}
	if !deleted {
		return utils.ErrLinkNotFound
	}

	log.Log.WithFields(logrus.Fields{
		"link_id":    linkID,
		"revoked_by": actor.ID,
		"status":     link.Status,
	}).Info("coach link revoked")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
