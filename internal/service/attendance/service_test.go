package attendance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/attendance"
	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
	"github.com/officetrack/officetrack-backend-go/internal/domain/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events []event.Event
	nextID int64
}

func (f *fakeEventRepo) Append(_ context.Context, e event.Event) (int64, error) {
	f.nextID++
	e.ID = f.nextID
	f.events = append(f.events, e)
	return e.ID, nil
}

func (f *fakeEventRepo) LatestFor(_ context.Context, userID int64, n int) ([]event.Event, error) {
	var out []event.Event
	for i := len(f.events) - 1; i >= 0 && len(out) < n; i-- {
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Range(_ context.Context, userID int64, start, end time.Time) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.events {
		if e.UserID == userID && !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeEventRepo) RangeAll(_ context.Context, start, end time.Time) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.events {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeEventRepo) PresentUsers(_ context.Context) ([]event.PresentUser, error) {
	latest := map[int64]event.Event{}
	for _, e := range f.events {
		if cur, ok := latest[e.UserID]; !ok || e.ID > cur.ID {
			latest[e.UserID] = e
		}
	}
	var out []event.PresentUser
	for _, e := range latest {
		if e.Action == event.ActionIn {
			name := ""
			if e.FullName != nil {
				name = *e.FullName
			}
			out = append(out, event.PresentUser{
				UserID:   e.UserID,
				FullName: name,
				Username: e.Username,
				Location: e.Location,
				Since:    e.Timestamp,
			})
		}
	}
	return out, nil
}

func (f *fakeEventRepo) OpenSessionsOlderThan(_ context.Context, _ time.Duration) ([]event.OpenSession, error) {
	return nil, nil
}

type fakePersonRepo struct {
	people map[int64]person.Person
}

func (f *fakePersonRepo) Create(_ context.Context, p person.Person) (int64, error) {
	if f.people == nil {
		f.people = map[int64]person.Person{}
	}
	p.ID = int64(len(f.people) + 1)
	f.people[p.ExternalUserID] = p
	return p.ID, nil
}

func (f *fakePersonRepo) GetByExternalID(_ context.Context, id int64) (person.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return person.Person{}, person.ErrPersonNotFound
	}
	return p, nil
}

func (f *fakePersonRepo) UpdateFullName(_ context.Context, id int64, name string) error {
	p, ok := f.people[id]
	if !ok {
		return person.ErrPersonNotFound
	}
	p.FullName = name
	f.people[id] = p
	return nil
}

func (f *fakePersonRepo) List(_ context.Context) ([]person.Person, error) {
	var out []person.Person
	for _, p := range f.people {
		out = append(out, p)
	}
	return out, nil
}

type fakeTokenService struct {
	valid  map[string]bool
	minted int
}

func (f *fakeTokenService) Create(_ context.Context) (token.Token, error) {
	f.minted++
	value := fmt.Sprintf("token-%d", f.minted)
	if f.valid == nil {
		f.valid = map[string]bool{}
	}
	f.valid[value] = true
	return token.Token{Value: value}, nil
}

func (f *fakeTokenService) IssueOrGetActive(ctx context.Context) (token.Token, error) {
	return f.Create(ctx)
}

func (f *fakeTokenService) Consume(_ context.Context, value string) (bool, error) {
	if f.valid[value] {
		f.valid[value] = false
		return true, nil
	}
	return false, nil
}

func (f *fakeTokenService) Inspect(_ context.Context, value string) (token.Token, error) {
	if _, ok := f.valid[value]; ok {
		return token.Token{Value: value}, nil
	}
	return token.Token{}, token.ErrTokenNotFound
}

func newTestService() (attendance.Service, *fakeEventRepo, *fakePersonRepo, *fakeTokenService) {
	eventRepo := &fakeEventRepo{}
	personRepo := &fakePersonRepo{}
	tokenSvc := &fakeTokenService{}
	return NewAttendanceService(nil, eventRepo, personRepo, tokenSvc), eventRepo, personRepo, tokenSvc
}

func checkinReq(userID int64) attendance.RecordActionRequest {
	return attendance.RecordActionRequest{
		UserID:   userID,
		FullName: "Dana Fulan",
		Location: "office",
		Action:   "in",
	}
}

func TestAttendanceService_RecordAction_FirstCheckin(t *testing.T) {
	svc, _, personRepo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.RecordAction(ctx, checkinReq(42))

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, attendance.StatePresent, result.State)
	assert.NotZero(t, result.EventID)

	// First interaction registers the person
	p, err := personRepo.GetByExternalID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Dana Fulan", p.FullName)
}

func TestAttendanceService_RecordAction_DuplicateCheckinRejected(t *testing.T) {
	svc, eventRepo, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RecordAction(ctx, checkinReq(42))
	require.NoError(t, err)

	result, err := svc.RecordAction(ctx, checkinReq(42))

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, attendance.ReasonDuplicateState, result.Reason)
	assert.Equal(t, attendance.StatePresent, result.State)
	// Nothing appended on rejection
	assert.Len(t, eventRepo.events, 1)
}

func TestAttendanceService_RecordAction_CheckoutWithoutCheckinRejected(t *testing.T) {
	svc, eventRepo, _, _ := newTestService()
	ctx := context.Background()

	req := checkinReq(42)
	req.Action = "out"
	result, err := svc.RecordAction(ctx, req)

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, attendance.ReasonDuplicateState, result.Reason)
	assert.Equal(t, attendance.StateNone, result.State)
	assert.Empty(t, eventRepo.events)
}

func TestAttendanceService_RecordAction_Alternation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	in := checkinReq(42)
	out := checkinReq(42)
	out.Action = "out"

	r1, err := svc.RecordAction(ctx, in)
	require.NoError(t, err)
	assert.True(t, r1.Accepted)

	r2, err := svc.RecordAction(ctx, out)
	require.NoError(t, err)
	assert.True(t, r2.Accepted)
	assert.Equal(t, attendance.StateAbsent, r2.State)

	// Second checkout in a row is a duplicate
	r3, err := svc.RecordAction(ctx, out)
	require.NoError(t, err)
	assert.False(t, r3.Accepted)
}

func TestAttendanceService_RecordAction_UnknownAction(t *testing.T) {
	svc, eventRepo, _, _ := newTestService()

	req := checkinReq(42)
	req.Action = "sideways"
	_, err := svc.RecordAction(context.Background(), req)

	assert.ErrorIs(t, err, event.ErrInvalidAction)
	assert.Empty(t, eventRepo.events)
}

func TestAttendanceService_RecordAction_UnknownLocation(t *testing.T) {
	svc, eventRepo, _, _ := newTestService()

	req := checkinReq(42)
	req.Location = "moon"
	_, err := svc.RecordAction(context.Background(), req)

	assert.ErrorIs(t, err, event.ErrInvalidLocation)
	assert.Empty(t, eventRepo.events)
}

func TestAttendanceService_StateFor_NoEvents(t *testing.T) {
	svc, _, _, _ := newTestService()

	state, err := svc.StateFor(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, attendance.StateNone, state)
}

func TestAttendanceService_ProcessScan_AcceptedMintsNewToken(t *testing.T) {
	svc, _, _, tokenSvc := newTestService()
	ctx := context.Background()

	first, err := tokenSvc.Create(ctx)
	require.NoError(t, err)

	result, err := svc.ProcessScan(ctx, attendance.ScanRequest{
		Token:               first.Value,
		RecordActionRequest: checkinReq(42),
	})

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, attendance.StatePresent, result.State)
	assert.NotEmpty(t, result.NewTokenValue)
	assert.NotEqual(t, first.Value, result.NewTokenValue)
}

func TestAttendanceService_ProcessScan_InvalidTokenRejected(t *testing.T) {
	svc, eventRepo, _, _ := newTestService()

	result, err := svc.ProcessScan(context.Background(), attendance.ScanRequest{
		Token:               "bogus",
		RecordActionRequest: checkinReq(42),
	})

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, attendance.ReasonInvalidToken, result.Reason)
	assert.Empty(t, result.NewTokenValue)
	assert.Empty(t, eventRepo.events)
}

func TestAttendanceService_ProcessScan_TokenConsumedOnce(t *testing.T) {
	svc, _, _, tokenSvc := newTestService()
	ctx := context.Background()

	first, err := tokenSvc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.ProcessScan(ctx, attendance.ScanRequest{
		Token:               first.Value,
		RecordActionRequest: checkinReq(42),
	})
	require.NoError(t, err)

	// Replay of the same token fails even for a valid transition
	out := checkinReq(42)
	out.Action = "out"
	result, err := svc.ProcessScan(ctx, attendance.ScanRequest{
		Token:               first.Value,
		RecordActionRequest: out,
	})

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, attendance.ReasonInvalidToken, result.Reason)
}

func TestAttendanceService_ProcessScan_RejectedTransitionBurnsToken(t *testing.T) {
	svc, _, _, tokenSvc := newTestService()
	ctx := context.Background()

	_, err := svc.RecordAction(ctx, checkinReq(42))
	require.NoError(t, err)

	tok, err := tokenSvc.Create(ctx)
	require.NoError(t, err)

	// Duplicate check-in: rejected, no replacement token
	result, err := svc.ProcessScan(ctx, attendance.ScanRequest{
		Token:               tok.Value,
		RecordActionRequest: checkinReq(42),
	})
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, attendance.ReasonDuplicateState, result.Reason)
	assert.Empty(t, result.NewTokenValue)

	// And the token is gone
	consumed, err := tokenSvc.Consume(ctx, tok.Value)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestAttendanceService_WorkIntervals(t *testing.T) {
	svc, eventRepo, _, _ := newTestService()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, a := range []event.Action{event.ActionIn, event.ActionOut} {
		_, err := eventRepo.Append(ctx, event.Event{
			UserID:    42,
			Action:    a,
			Location:  event.LocationOffice,
			Timestamp: base.Add(time.Duration(i) * 8 * time.Hour),
		})
		require.NoError(t, err)
	}

	intervals, err := svc.WorkIntervals(ctx, 42,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, int64(8*3600), intervals[0].DurationSeconds)
}
