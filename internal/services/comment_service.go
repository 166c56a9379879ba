package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	resp "runmind/internal/models/response_models"
	"runmind/internal/repositories"
	"runmind/pkg/log"
	"runmind/pkg/utils"
)

type CommentServiceInterface interface {
	List(ctx context.Context, actor Actor, activityID uuid.UUID) ([]resp.CommentResponse, error)
	Create(ctx context.Context, actor Actor, activityID uuid.UUID, req request_models.CreateCommentRequest) (*resp.CommentResponse, error)
	Delete(ctx context.Context, actor Actor, commentID uuid.UUID) error
}

// CommentService lets the athlete and their accepted coaches discuss an
// activity.
type CommentService struct {
	comments   repositories.CommentRepository
	activities repositories.ActivityRepository
	users      repositories.UserRepository
	gate       AccessGate
}

func NewCommentService(comments repositories.CommentRepository, activities repositories.ActivityRepository, users repositories.UserRepository, gate AccessGate) CommentServiceInterface {
	return &CommentService{comments: comments, activities: activities, users: users, gate: gate}
}

func (s *CommentService) List(ctx context.Context, actor Actor, activityID uuid.UUID) ([]resp.CommentResponse, error) {
	if _, err := s.authorizeActivity(ctx, actor, activityID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, utils.Internal(err, "failed to list comments")
	}
	out := make([]resp.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, resp.NewCommentResponse(&comments[i]))
	}
	return out, nil
}

func (s *CommentService) Create(ctx context.Context, actor Actor, activityID uuid.UUID, req request_models.CreateCommentRequest) (*resp.CommentResponse, error) {
	if _, err := s.authorizeActivity(ctx, actor, activityID); err != nil {
		return nil, err
	}

	comment := &db_models.Comment{ActivityID: activityID, UserID: actor.ID, Body: req.Body}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, utils.Internal(err, "failed to create comment")
	}

	author, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		log.Log.WithFields(logrus.Fields{"comment_id": comment.ID, "user_id": actor.ID}).WithError(err).Warn("failed to load comment author")
	}
	comment.Author = author
	out := resp.NewCommentResponse(comment)
	return &out, nil
}

func (s *CommentService) Delete(ctx context.Context, actor Actor, commentID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return utils.Internal(err, "failed to load comment")
	}
	if comment == nil {
		return utils.ErrCommentNotFound
	}
	if comment.UserID != actor.ID {
		return utils.ErrNotOwner
	}
	if _, err := s.comments.Delete(ctx, commentID); err != nil {
		return utils.Internal(err, "failed to delete comment")
	}
	return nil
}

func (s *CommentService) authorizeActivity(ctx context.Context, actor Actor, activityID uuid.UUID) (*db_models.Activity, error) {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load activity")
	}
	if activity == nil {
		return nil, utils.ErrActivityNotFound
	}
	if err := s.gate.RequireAccess(ctx, actor, activity.UserID); err != nil {
		return nil, err
	}
	return activity, nil
}
