package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"runmind/internal/models/db_models"
	"runmind/internal/repositories"
)

// In-memory repositories used by the service tests. They mirror the
// constraints the database enforces: unique emails, unique strava ids and one
// link per (coach, athlete) pair.

func stamp(b *db_models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

type fakeUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]db_models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]db_models.User{}}
}

func (f *fakeUsers) add(name, email, role string) db_models.User {
	u := db_models.User{Name: name, Email: &email, Role: role}
	if err := f.Create(context.Background(), &u); err != nil {
		panic(err)
	}
	return u
}

func (f *fakeUsers) Create(_ context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return repositories.ErrDuplicate
		}
		if user.StravaAthleteID != nil && u.StravaAthleteID != nil && *u.StravaAthleteID == *user.StravaAthleteID {
			return repositories.ErrDuplicate
		}
	}
	stamp(&user.BaseModel)
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email != nil && *u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByStravaID(_ context.Context, stravaID int64) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.StravaAthleteID != nil && *u.StravaAthleteID == stravaID {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) SetStravaAthleteID(_ context.Context, userID uuid.UUID, stravaID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.byID {
		if id != userID && u.StravaAthleteID != nil && *u.StravaAthleteID == stravaID {
			return repositories.ErrDuplicate
		}
	}
	u := f.byID[userID]
	u.StravaAthleteID = &stravaID
	f.byID[userID] = u
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return false, nil
	}
	u.PasswordHash = &hash
	f.byID[userID] = u
	return true, nil
}

type fakeLinks struct {
	mu    sync.Mutex
	users *fakeUsers
	rows  map[uuid.UUID]db_models.CoachAthleteLink
}

func newFakeLinks(users *fakeUsers) *fakeLinks {
	return &fakeLinks{users: users, rows: map[uuid.UUID]db_models.CoachAthleteLink{}}
}

func (f *fakeLinks) withUsers(l db_models.CoachAthleteLink, coach, athlete bool) db_models.CoachAthleteLink {
	if coach {
		l.Coach, _ = f.users.FindByID(context.Background(), l.CoachID)
	}
	if athlete {
		l.Athlete, _ = f.users.FindByID(context.Background(), l.AthleteID)
	}
	return l
}

func (f *fakeLinks) Create(_ context.Context, link *db_models.CoachAthleteLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.rows {
		if l.CoachID == link.CoachID && l.AthleteID == link.AthleteID {
			return repositories.ErrDuplicate
		}
	}
	stamp(&link.BaseModel)
	f.rows[link.ID] = *link
	return nil
}

func (f *fakeLinks) FindByID(_ context.Context, id uuid.UUID) (*db_models.CoachAthleteLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.rows[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (f *fakeLinks) FindByPair(_ context.Context, coachID, athleteID uuid.UUID) (*db_models.CoachAthleteLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.rows {
		if l.CoachID == coachID && l.AthleteID == athleteID {
			return &l, nil
		}
	}
	return nil, nil
}

func (f *fakeLinks) ListPendingForCoach(_ context.Context, coachID uuid.UUID) ([]db_models.CoachAthleteLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.CoachAthleteLink
	for _, l := range f.rows {
		if l.CoachID == coachID && l.Status == db_models.LinkStatusPending {
			out = append(out, f.withUsers(l, false, true))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLinks) ListForUser(_ context.Context, userID uuid.UUID, asCoach bool, status db_models.LinkStatus) ([]db_models.CoachAthleteLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.CoachAthleteLink
	for _, l := range f.rows {
		if l.Status != status {
			continue
		}
		if asCoach && l.CoachID == userID {
			out = append(out, f.withUsers(l, false, true))
		}
		if !asCoach && l.AthleteID == userID {
			out = append(out, f.withUsers(l, true, false))
		}
	}
	name := func(l db_models.CoachAthleteLink) string {
		if asCoach {
			return l.Athlete.Name
		}
		return l.Coach.Name
	}
	sort.Slice(out, func(i, j int) bool { return name(out[i]) < name(out[j]) })
	return out, nil
}

func (f *fakeLinks) UpdateStatusIfPending(_ context.Context, linkID, coachID uuid.UUID, status db_models.LinkStatus) (*db_models.CoachAthleteLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[linkID]
	if !ok || l.CoachID != coachID || l.Status != db_models.LinkStatusPending {
		return nil, nil
	}
	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	f.rows[linkID] = l
	return &l, nil
}

func (f *fakeLinks) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeLinks) HasAcceptedLink(_ context.Context, coachID, athleteID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.rows {
		if l.CoachID == coachID && l.AthleteID == athleteID && l.Status == db_models.LinkStatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

type sentMail struct {
	kind, to, name, status, token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) SendLinkRequested(to, athleteName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: "requested", to: to, name: athleteName})
	return nil
}

func (m *fakeMailer) SendLinkResponded(to, coachName, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: "responded", to: to, name: coachName, status: status})
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: "reset", to: to, token: token})
	return nil
}

type fakeActivities struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]db_models.Activity
	upserts int
}

func newFakeActivities() *fakeActivities {
	return &fakeActivities{rows: map[uuid.UUID]db_models.Activity{}}
}

func (f *fakeActivities) ListByUser(_ context.Context, userID uuid.UUID, filter repositories.ActivityFilter) ([]db_models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Activity
	for _, a := range f.rows {
		if a.UserID != userID {
			continue
		}
		if filter.From != nil && a.StartDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.StartDate.Before(*filter.To) {
			continue
		}
		if filter.SportType != "" && a.SportType != filter.SportType {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeActivities) FindByID(_ context.Context, id uuid.UUID) (*db_models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.rows[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeActivities) Create(_ context.Context, activity *db_models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stamp(&activity.BaseModel)
	f.rows[activity.ID] = *activity
	return nil
}

func (f *fakeActivities) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeActivities) UpsertMentalState(_ context.Context, state *db_models.MentalState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.rows[state.ActivityID]
	if a.MentalState != nil {
		state.ID = a.MentalState.ID
		state.CreatedAt = a.MentalState.CreatedAt
	}
	stamp(&state.BaseModel)
	cp := *state
	a.MentalState = &cp
	f.rows[a.ID] = a
	return nil
}

func (f *fakeActivities) UpsertStravaActivities(_ context.Context, activities []db_models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	for _, in := range activities {
		replaced := false
		for id, existing := range f.rows {
			if existing.StravaActivityID != nil && *existing.StravaActivityID == *in.StravaActivityID {
				in.BaseModel = existing.BaseModel
				f.rows[id] = in
				replaced = true
				break
			}
		}
		if !replaced {
			stamp(&in.BaseModel)
			f.rows[in.ID] = in
		}
	}
	return nil
}

func (f *fakeActivities) LatestStravaStart(_ context.Context, userID uuid.UUID) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *time.Time
	for _, a := range f.rows {
		if a.UserID != userID || a.StravaActivityID == nil {
			continue
		}
		if latest == nil || a.StartDate.After(*latest) {
			t := a.StartDate
			latest = &t
		}
	}
	return latest, nil
}

type fakeComments struct {
	mu   sync.Mutex
	rows map[uuid.UUID]db_models.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{rows: map[uuid.UUID]db_models.Comment{}}
}

func (f *fakeComments) ListByActivity(_ context.Context, activityID uuid.UUID) ([]db_models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Comment
	for _, c := range f.rows {
		if c.ActivityID == activityID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeComments) FindByID(_ context.Context, id uuid.UUID) (*db_models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.rows[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeComments) Create(_ context.Context, comment *db_models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stamp(&comment.BaseModel)
	f.rows[comment.ID] = *comment
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

// fakeOwned backs the diary, diet and goal repositories.
type fakeOwned[T any] struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*T
	base  func(*T) *db_models.BaseModel
	owner func(*T) uuid.UUID
}

func newFakeOwned[T any](base func(*T) *db_models.BaseModel, owner func(*T) uuid.UUID) *fakeOwned[T] {
	return &fakeOwned[T]{rows: map[uuid.UUID]*T{}, base: base, owner: owner}
}

func (f *fakeOwned[T]) list(userID uuid.UUID, keep func(*T) bool) []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []T
	for _, row := range f.rows {
		if f.owner(row) == userID && keep(row) {
			out = append(out, *row)
		}
	}
	return out
}

func (f *fakeOwned[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeOwned[T]) Create(_ context.Context, row *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stamp(f.base(row))
	cp := *row
	f.rows[f.base(row).ID] = &cp
	return nil
}

func (f *fakeOwned[T]) Update(_ context.Context, row *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.base(row).UpdatedAt = time.Now().UTC()
	cp := *row
	f.rows[f.base(row).ID] = &cp
	return nil
}

func (f *fakeOwned[T]) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

func inRange(t time.Time, rng repositories.DateRange) bool {
	if rng.From != nil && t.Before(*rng.From) {
		return false
	}
	if rng.To != nil && t.After(*rng.To) {
		return false
	}
	return true
}

type fakeDiary struct {
	*fakeOwned[db_models.DiaryEntry]
}

func newFakeDiary() *fakeDiary {
	return &fakeDiary{newFakeOwned(
		func(e *db_models.DiaryEntry) *db_models.BaseModel { return &e.BaseModel },
		func(e *db_models.DiaryEntry) uuid.UUID { return e.UserID },
	)}
}

func (f *fakeDiary) ListByUser(_ context.Context, userID uuid.UUID, rng repositories.DateRange) ([]db_models.DiaryEntry, error) {
	return f.list(userID, func(e *db_models.DiaryEntry) bool { return inRange(e.EntryDate, rng) }), nil
}

type fakeDiet struct {
	*fakeOwned[db_models.DietLog]
}

func newFakeDiet() *fakeDiet {
	return &fakeDiet{newFakeOwned(
		func(e *db_models.DietLog) *db_models.BaseModel { return &e.BaseModel },
		func(e *db_models.DietLog) uuid.UUID { return e.UserID },
	)}
}

func (f *fakeDiet) ListByUser(_ context.Context, userID uuid.UUID, rng repositories.DateRange) ([]db_models.DietLog, error) {
	return f.list(userID, func(e *db_models.DietLog) bool { return inRange(e.LogDate, rng) }), nil
}

type fakeGoals struct {
	*fakeOwned[db_models.Goal]
}

func newFakeGoals() *fakeGoals {
	return &fakeGoals{newFakeOwned(
		func(g *db_models.Goal) *db_models.BaseModel { return &g.BaseModel },
		func(g *db_models.Goal) uuid.UUID { return g.UserID },
	)}
}

func (f *fakeGoals) ListByUser(_ context.Context, userID uuid.UUID, status *db_models.GoalStatus) ([]db_models.Goal, error) {
	return f.list(userID, func(g *db_models.Goal) bool { return status == nil || g.Status == *status }), nil
}

type fakeNotes struct {
	*fakeOwned[db_models.TrainingNote]
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{newFakeOwned(
		func(n *db_models.TrainingNote) *db_models.BaseModel { return &n.BaseModel },
		func(n *db_models.TrainingNote) uuid.UUID { return n.AthleteID },
	)}
}

func (f *fakeNotes) ListForPair(_ context.Context, coachID, athleteID uuid.UUID) ([]db_models.TrainingNote, error) {
	return f.list(athleteID, func(n *db_models.TrainingNote) bool { return n.CoachID == coachID }), nil
}

func (f *fakeNotes) ListForAthlete(_ context.Context, athleteID uuid.UUID) ([]db_models.TrainingNote, error) {
	return f.list(athleteID, func(*db_models.TrainingNote) bool { return true }), nil
}

type fakeStravaTokens struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]db_models.StravaToken
	saves int
}

func newFakeStravaTokens() *fakeStravaTokens {
	return &fakeStravaTokens{rows: map[uuid.UUID]db_models.StravaToken{}}
}

func (f *fakeStravaTokens) Find(_ context.Context, userID uuid.UUID) (*db_models.StravaToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.rows[userID]; ok {
		return &t, nil
	}
	return nil, nil
}

func (f *fakeStravaTokens) Save(_ context.Context, token *db_models.StravaToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.rows[token.UserID] = *token
	return nil
}

type fakeStravaClient struct {
	athlete   StravaAthlete
	pages     [][]StravaActivity
	refreshed *oauth2.Token
	failPage  int
	calls     int
}

func (c *fakeStravaClient) AuthCodeURL(state string) string {
	return "https://strava.test/authorize?state=" + state
}

func (c *fakeStravaClient) Exchange(_ context.Context, code string) (*oauth2.Token, *StravaAthlete, error) {
	a := c.athlete
	return &oauth2.Token{AccessToken: "access-" + code, RefreshToken: "refresh", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}, &a, nil
}

func (c *fakeStravaClient) ListActivities(_ context.Context, token *oauth2.Token, _ time.Time, page, _ int) ([]StravaActivity, *oauth2.Token, error) {
	c.calls++
	if c.refreshed != nil {
		token = c.refreshed
	}
	if page == c.failPage {
		return nil, nil, errors.New("strava: 502 bad gateway")
	}
	if page > len(c.pages) {
		return nil, token, nil
	}
	return c.pages[page-1], token, nil
}
