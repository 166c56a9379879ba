package services

import (
	"context"

	"github.com/google/uuid"

	"runmind/internal/models/db_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsCoach() bool  { return a.Role == db_models.RoleCoach }
func (a Actor) IsRunner() bool { return a.Role == db_models.RoleRunner }

// AccessGate decides whether a caller may read or write an athlete's data.
// Every athlete-scoped service goes through it. Nothing is cached: a link
// change is visible to the very next call.
type AccessGate interface {
	// CanAccess is true for the owner themself and for a coach holding an
	// accepted link with the owner.
	CanAccess(ctx context.Context, requesterID uuid.UUID, requesterRole string, ownerID uuid.UUID) (bool, error)
	// RequireAccess returns a not-found error for an unknown owner and a
	// forbidden error when the owner exists but CanAccess is false.
	RequireAccess(ctx context.Context, actor Actor, ownerID uuid.UUID) error
}

type accessGate struct {
	users repositories.UserRepository
	links repositories.LinkRepository
}

func NewAccessGate(users repositories.UserRepository, links repositories.LinkRepository) AccessGate {
	return &accessGate{users: users, links: links}
}

func (g *accessGate) CanAccess(ctx context.Context, requesterID uuid.UUID, requesterRole string, ownerID uuid.UUID) (bool, error) {
	if requesterID == ownerID {
		return true, nil
	}
	if requesterRole != db_models.RoleCoach {
		return false, nil
	}
	return g.links.HasAcceptedLink(ctx, requesterID, ownerID)
}

func (g *accessGate) RequireAccess(ctx context.Context, actor Actor, ownerID uuid.UUID) error {
	if actor.ID == ownerID {
		return nil
	}

	owner, err := g.users.FindByID(ctx, ownerID)
	if err != nil {
		return utils.Internal(err, "failed to load athlete")
	}
	if owner == nil {
		return utils.ErrAthleteNotFound
	}

	ok, err := g.CanAccess(ctx, actor.ID, actor.Role, ownerID)
	if err != nil {
		return utils.Internal(err, "failed to check athlete access")
	}
	if !ok {
		return utils.ErrAccessDenied
	}
	return nil
}

// requireOwner is the write-side check: only the owner mutates its data.
func requireOwner(actor Actor, ownerID uuid.UUID) error {
	if actor.ID != ownerID {
		return utils.ErrNotOwner
	}
	return nil
}
