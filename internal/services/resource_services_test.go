package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	"runmind/pkg/utils"
)

// linkedFixture returns a runner and a coach holding an accepted link.
func linkedFixture(t *testing.T) *linkFixture {
	f := newLinkFixture()
	f.respond(t, f.request(t), "accepted")
	return f
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestActivityService_ListFiltersAndGate(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	repo := newFakeActivities()
	svc := NewActivityService(repo, f.gate)

	day := func(d int, h int) time.Time { return time.Date(2024, 5, d, h, 0, 0, 0, time.UTC) }
	for _, a := range []struct {
		start time.Time
		sport string
	}{{day(1, 7), "Run"}, {day(2, 18), "Ride"}, {day(3, 23), "Run"}, {day(4, 6), "Run"}} {
		_, err := svc.Create(ctx, actorOf(f.runner), request_models.CreateActivityRequest{
			Name: "session", SportType: a.sport, StartDate: a.start, DistanceMeters: 5000, MovingTime: 1500,
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, actorOf(f.runner), f.runner.ID, request_models.ActivityQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, day(4, 6), all[0].StartDate)
	assert.InDelta(t, 3.333, all[0].AverageSpeed, 0.001)

	q := request_models.ActivityQuery{DateRangeQuery: request_models.DateRangeQuery{From: "2024-05-02", To: "2024-05-03"}}
	ranged, err := svc.List(ctx, actorOf(f.coach), f.runner.ID, q)
	require.NoError(t, err)
	assert.Len(t, ranged, 2, "to is inclusive of the whole day")

	runs, err := svc.List(ctx, actorOf(f.coach), f.runner.ID, request_models.ActivityQuery{Type: "Run", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	_, err = svc.List(ctx, actorOf(f.runner), f.runner.ID, request_models.ActivityQuery{DateRangeQuery: request_models.DateRangeQuery{From: "May 1"}})
	assert.ErrorIs(t, err, utils.ErrValidation)

	stranger := f.users.add("Other Coach", "other@runmind.test", db_models.RoleCoach)
	_, err = svc.List(ctx, actorOf(stranger), f.runner.ID, request_models.ActivityQuery{})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.List(ctx, actorOf(f.coach), uuid.New(), request_models.ActivityQuery{})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestActivityService_MentalStateAndDelete(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	svc := NewActivityService(newFakeActivities(), f.gate)

	activity, err := svc.Create(ctx, actorOf(f.runner), request_models.CreateActivityRequest{
		Name: "tempo", SportType: "Run", StartDate: time.Now(),
	})
	require.NoError(t, err)

	state := request_models.MentalStateRequest{Mood: 7, Focus: 8, Stress: 3, Notes: "felt strong"}
	_, err = svc.SetMentalState(ctx, actorOf(f.coach), activity.ID, state)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := svc.SetMentalState(ctx, actorOf(f.runner), activity.ID, state)
	require.NoError(t, err)
	require.NotNil(t, updated.MentalState)
	firstID := updated.MentalState.ID

	state.Mood = 4
	updated, err = svc.SetMentalState(ctx, actorOf(f.runner), activity.ID, state)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MentalState.Mood)
	assert.Equal(t, firstID, updated.MentalState.ID)

	got, err := svc.Get(ctx, actorOf(f.coach), activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "tempo", got.Name)

	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.coach), activity.ID), utils.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, actorOf(f.runner), activity.ID))
	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.runner), activity.ID), utils.ErrNotFound)
	_, err = svc.Get(ctx, actorOf(f.runner), activity.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCommentService(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	activities := newFakeActivities()
	activitySvc := NewActivityService(activities, f.gate)
	svc := NewCommentService(newFakeComments(), activities, f.users, f.gate)

	activity, err := activitySvc.Create(ctx, actorOf(f.runner), request_models.CreateActivityRequest{
		Name: "long run", SportType: "Run", StartDate: time.Now(),
	})
	require.NoError(t, err)

	comment, err := svc.Create(ctx, actorOf(f.coach), activity.ID, request_models.CreateCommentRequest{Body: "great pacing"})
	require.NoError(t, err)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "Coach Carter", comment.Author.Name)

	_, err = svc.Create(ctx, actorOf(f.runner), activity.ID, request_models.CreateCommentRequest{Body: "thanks"})
	require.NoError(t, err)

	list, err := svc.List(ctx, actorOf(f.runner), activity.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	stranger := f.users.add("Bo Runner", "bo@runmind.test", db_models.RoleRunner)
	_, err = svc.List(ctx, actorOf(stranger), activity.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
	_, err = svc.List(ctx, actorOf(f.runner), uuid.New())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	commentID := uuid.MustParse(comment.ID)
	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.runner), commentID), utils.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, actorOf(f.coach), commentID))
	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.coach), commentID), utils.ErrNotFound)
}

func TestDiaryService(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	svc := NewDiaryService(newFakeDiary(), f.gate)

	entry, err := svc.Create(ctx, actorOf(f.runner), request_models.DiaryEntryRequest{
		EntryDate: "2024-05-01", Title: "Easy day", Content: "legs tired", Mood: intPtr(6),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, actorOf(f.runner), request_models.DiaryEntryRequest{EntryDate: "2024-05-09", Content: "race"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, actorOf(f.runner), request_models.DiaryEntryRequest{EntryDate: "05/01/2024", Content: "x"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	list, err := svc.List(ctx, actorOf(f.coach), f.runner.ID, request_models.DateRangeQuery{From: "2024-05-01", To: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Easy day", list[0].Title)

	_, err = svc.List(ctx, actorOf(f.runner), f.runner.ID, request_models.DateRangeQuery{From: "2024-05-09", To: "2024-05-01"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Update(ctx, actorOf(f.coach), entry.ID, request_models.DiaryEntryRequest{EntryDate: "2024-05-01", Content: "edited"})
	assert.ErrorIs(t, err, utils.ErrForbidden)
	_, err = svc.Update(ctx, actorOf(f.runner), uuid.New(), request_models.DiaryEntryRequest{EntryDate: "2024-05-01", Content: "edited"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	updated, err := svc.Update(ctx, actorOf(f.runner), entry.ID, request_models.DiaryEntryRequest{EntryDate: "2024-05-02", Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Nil(t, updated.Mood)

	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.coach), entry.ID), utils.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, actorOf(f.runner), entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.runner), entry.ID), utils.ErrNotFound)
}

func TestApplyDietPatch(t *testing.T) {
	entry := &db_models.DietLog{
		Meal:        db_models.MealLunch,
		Description: "rice and chicken",
		Calories:    intPtr(650),
		ProteinG:    floatPtr(40),
	}

	err := ApplyDietPatch(entry, request_models.DietLogPatch{Calories: intPtr(700), CarbsG: floatPtr(80)})
	require.NoError(t, err)
	assert.Equal(t, db_models.MealLunch, entry.Meal)
	assert.Equal(t, "rice and chicken", entry.Description)
	assert.Equal(t, 700, *entry.Calories)
	assert.Equal(t, 40.0, *entry.ProteinG)
	assert.Equal(t, 80.0, *entry.CarbsG)
	assert.Nil(t, entry.FatG)

	assert.ErrorIs(t, ApplyDietPatch(entry, request_models.DietLogPatch{Meal: strPtr("brunch")}), utils.ErrValidation)
	assert.ErrorIs(t, ApplyDietPatch(entry, request_models.DietLogPatch{LogDate: strPtr("tomorrow")}), utils.ErrValidation)

	require.NoError(t, ApplyDietPatch(entry, request_models.DietLogPatch{LogDate: strPtr("2024-06-01"), Meal: strPtr("dinner")}))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), entry.LogDate)
	assert.Equal(t, db_models.MealDinner, entry.Meal)
}

func TestDietService(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	svc := NewDietService(newFakeDiet(), f.gate)

	entry, err := svc.Create(ctx, actorOf(f.runner), request_models.CreateDietLogRequest{
		LogDate: "2024-05-01", Meal: "breakfast", Description: "oats", Calories: intPtr(400),
	})
	require.NoError(t, err)

	_, err = svc.Patch(ctx, actorOf(f.runner), entry.ID, request_models.DietLogPatch{})
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = svc.Patch(ctx, actorOf(f.coach), entry.ID, request_models.DietLogPatch{Description: strPtr("x")})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	patched, err := svc.Patch(ctx, actorOf(f.runner), entry.ID, request_models.DietLogPatch{Description: strPtr("oats and berries")})
	require.NoError(t, err)
	assert.Equal(t, "oats and berries", patched.Description)
	assert.Equal(t, 400, *patched.Calories)

	list, err := svc.List(ctx, actorOf(f.coach), f.runner.ID, request_models.DateRangeQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "oats and berries", list[0].Description)

	require.NoError(t, svc.Delete(ctx, actorOf(f.runner), entry.ID))
	_, err = svc.Patch(ctx, actorOf(f.runner), entry.ID, request_models.DietLogPatch{Description: strPtr("x")})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGoalService_StatusTransitions(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	svc := NewGoalService(newFakeGoals(), f.gate)

	goal, err := svc.Create(ctx, actorOf(f.runner), request_models.CreateGoalRequest{
		Title: "Sub 4 marathon", GoalType: "time", TargetValue: 240, Unit: "min", Deadline: "2024-10-13",
	})
	require.NoError(t, err)
	assert.Equal(t, db_models.GoalStatusActive, goal.Status)
	require.NotNil(t, goal.Deadline)

	_, err = svc.UpdateStatus(ctx, actorOf(f.runner), goal.ID, "done")
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.UpdateStatus(ctx, actorOf(f.coach), goal.ID, "completed")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := svc.UpdateStatus(ctx, actorOf(f.runner), goal.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, db_models.GoalStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, actorOf(f.runner), goal.ID, "abandoned")
	assert.ErrorIs(t, err, utils.ErrConflict)

	updated, err = svc.UpdateStatus(ctx, actorOf(f.runner), goal.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, db_models.GoalStatusActive, updated.Status)

	active, err := svc.List(ctx, actorOf(f.coach), f.runner.ID, "active")
	require.NoError(t, err)
	assert.Len(t, active, 1)
	completed, err := svc.List(ctx, actorOf(f.coach), f.runner.ID, "completed")
	require.NoError(t, err)
	assert.Empty(t, completed)

	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.coach), goal.ID), utils.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, actorOf(f.runner), goal.ID))
}

func TestTrainingNoteService(t *testing.T) {
	f := linkedFixture(t)
	ctx := context.Background()
	svc := NewTrainingNoteService(newFakeNotes(), f.gate)
	req := request_models.TrainingNoteRequest{NoteDate: "2024-05-06", Title: "Week 19", Content: "4x1k at threshold"}

	_, err := svc.Create(ctx, actorOf(f.runner), f.runner.ID, req)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	note, err := svc.Create(ctx, actorOf(f.coach), f.runner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", note.NoteDate)

	// A second accepted coach sees only their own notes.
	other := f.users.add("Other Coach", "other@runmind.test", db_models.RoleCoach)
	otherLinks := NewLinkService(f.links, f.users, f.mailer)
	link, err := otherLinks.CreateRequest(ctx, actorOf(f.runner), other.EmailValue())
	require.NoError(t, err)
	_, err = otherLinks.RespondToRequest(ctx, actorOf(other), uuid.MustParse(link.ID), "accepted")
	require.NoError(t, err)

	mine, err := svc.ListForAthlete(ctx, actorOf(other), f.runner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	noteID := uuid.MustParse(note.ID)
	_, err = svc.Update(ctx, actorOf(other), noteID, req)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	req.Content = "5x1k at threshold"
	updated, err := svc.Update(ctx, actorOf(f.coach), noteID, req)
	require.NoError(t, err)
	assert.Equal(t, "5x1k at threshold", updated.Content)

	received, err := svc.ListReceived(ctx, actorOf(f.runner))
	require.NoError(t, err)
	assert.Len(t, received, 1)
	_, err = svc.ListReceived(ctx, actorOf(f.coach))
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// Once the link is gone the coach can no longer touch the note.
	pair, err := f.links.FindByPair(ctx, f.coach.ID, f.runner.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Revoke(ctx, actorOf(f.runner), pair.ID))
	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.coach), noteID), utils.ErrForbidden)
	_, err = svc.ListForAthlete(ctx, actorOf(f.coach), f.runner.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, actorOf(f.coach), uuid.New()), utils.ErrNotFound)
}
