package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/liftlog/internal/progress"
	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return testNow
}

// inMemorySessions filters like the pgx repo does.
type inMemorySessions struct {
	sessions []progress.Session
}

func (m *inMemorySessions) SessionsSince(_ context.Context, userID string, since *time.Time) ([]progress.Session, error) {
	var res []progress.Session
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		if since != nil && s.StartTime.Before(*since) {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

func (m *inMemorySessions) SessionsWithExercises(_ context.Context, userID string, exerciseIDs []string) ([]progress.Session, error) {
	wanted := map[string]bool{}
	for _, id := range exerciseIDs {
		wanted[id] = true
	}
	var res []progress.Session
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		var entries []progress.Entry
		for _, e := range s.Entries {
			if wanted[e.ExerciseID] {
				entries = append(entries, e)
			}
		}
		if len(entries) > 0 {
			s.Entries = entries
			res = append(res, s)
		}
	}
	return res, nil
}

func TestService_Consistency(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMocksessionsRepo(ctrl)
	metricsManager := metrics.NewTestManager()
	service := progress.NewServiceWithClock(repoMock, metricsManager, fixedNow)

	repoMock.EXPECT().
		SessionsSince(gomock.Any(), "alice", (*time.Time)(nil)).
		Return([]progress.Session{
			{ID: "s1", UserID: "alice", StartTime: time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)},
			{ID: "s2", UserID: "alice", StartTime: time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)},
			{ID: "s3", UserID: "alice", StartTime: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)},
		}, nil)

	days, err := service.Consistency(context.Background(), "alice", progress.RangeAll)
	require.NoError(t, err)
	assert.Equal(t, []progress.DayCount{
		{Day: "2024-01-01", Value: 2},
		{Day: "2024-01-03", Value: 1},
	}, days)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterAggregations.WithLabelValues("consistency")))
}

func TestService_RangePassedToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMocksessionsRepo(ctrl)
	service := progress.NewServiceWithClock(repoMock, nil, fixedNow)

	weekAgo := testNow.AddDate(0, 0, -7)
	repoMock.EXPECT().
		SessionsSince(gomock.Any(), "alice", &weekAgo).
		Return(nil, nil)

	volume, err := service.Volume(context.Background(), "alice", progress.Range1W)
	require.NoError(t, err)
	assert.NotNil(t, volume)
	assert.Empty(t, volume)
}

func TestService_StoreErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMocksessionsRepo(ctrl)
	metricsManager := metrics.NewTestManager()
	service := progress.NewServiceWithClock(repoMock, metricsManager, fixedNow)

	storeErr := errors.New("connection refused")
	repoMock.EXPECT().SessionsSince(gomock.Any(), "alice", gomock.Any()).Return(nil, storeErr).Times(3)
	repoMock.EXPECT().SessionsWithExercises(gomock.Any(), "alice", []string{"bench-press"}).Return(nil, storeErr)

	_, err := service.Consistency(context.Background(), "alice", progress.Range1M)
	assert.ErrorIs(t, err, storeErr)
	_, err = service.Volume(context.Background(), "alice", progress.Range1M)
	assert.ErrorIs(t, err, storeErr)
	_, err = service.MuscleDistribution(context.Background(), "alice", progress.Range1M)
	assert.ErrorIs(t, err, storeErr)
	_, err = service.PersonalBests(context.Background(), "alice", []string{"bench-press"})
	assert.ErrorIs(t, err, storeErr)

	assert.Equal(t, 0.0, testutil.ToFloat64(metricsManager.CounterAggregations.WithLabelValues("volume")))
}

func TestService_PersonalBests(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMocksessionsRepo(ctrl)
	service := progress.NewServiceWithClock(repoMock, nil, fixedNow)

	_, err := service.PersonalBests(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, progress.ErrNoExerciseIDs)
	_, err = service.PersonalBests(context.Background(), "alice", []string{" ", ""})
	assert.ErrorIs(t, err, progress.ErrNoExerciseIDs)

	heavier := time.Date(2024, 2, 8, 10, 0, 0, 0, time.UTC)
	repoMock.EXPECT().
		SessionsWithExercises(gomock.Any(), "alice", []string{"bench-press", "never-logged"}).
		Return([]progress.Session{
			{ID: "s1", UserID: "alice", StartTime: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), Entries: []progress.Entry{
				{ExerciseID: "bench-press", ExerciseName: "Bench Press", Sets: []progress.Set{{Weight: 100, Reps: 5}}},
			}},
			{ID: "s2", UserID: "alice", StartTime: heavier, Entries: []progress.Entry{
				{ExerciseID: "bench-press", ExerciseName: "Bench Press", Sets: []progress.Set{{Weight: 120, Reps: 2}}},
			}},
		}, nil)

	pbs, err := service.PersonalBests(context.Background(), "alice", []string{"bench-press", "never-logged", "bench-press"})
	require.NoError(t, err)
	assert.Equal(t, []progress.PersonalBest{
		{ExerciseID: "bench-press", Exercise: "Bench Press", Weight: 120, Date: heavier},
	}, pbs)
}

func randomSessions(faker *gofakeit.Faker, userID string, n int) []progress.Session {
	muscles := []string{"Chest", "Back", "Legs", "Shoulders", "Arms"}
	exerciseIDs := []string{"bench-press", "squat", "deadlift", "row", "curl"}

	sessions := make([]progress.Session, 0, n)
	for i := 0; i < n; i++ {
		s := progress.Session{
			ID:        faker.UUID(),
			UserID:    userID,
			StartTime: faker.DateRange(testNow.AddDate(-2, 0, 0), testNow),
		}
		for e := 0; e < faker.IntRange(0, 4); e++ {
			entry := progress.Entry{
				ID:             faker.UUID(),
				ExerciseID:     exerciseIDs[faker.IntRange(0, len(exerciseIDs)-1)],
				PrimaryMuscles: []string{muscles[faker.IntRange(0, len(muscles)-1)]},
				Position:       e,
			}
			for p := 0; p < faker.IntRange(0, 5); p++ {
				entry.Sets = append(entry.Sets, progress.Set{
					Position: p,
					Weight:   float64(faker.IntRange(0, 400)) / 2,
					Reps:     faker.IntRange(1, 12),
				})
			}
			s.Entries = append(s.Entries, entry)
		}
		sessions = append(sessions, s)
	}
	return sessions
}

func TestService_NarrowerRangeIsSubsetOfAll(t *testing.T) {
	faker := gofakeit.New(11)
	store := &inMemorySessions{
		sessions: append(randomSessions(faker, "alice", 150), randomSessions(faker, "bob", 30)...),
	}
	service := progress.NewServiceWithClock(store, nil, fixedNow)
	ctx := context.Background()

	allDays, err := service.Consistency(ctx, "alice", progress.RangeAll)
	require.NoError(t, err)
	allCounts := map[string]int{}
	for _, d := range allDays {
		allCounts[d.Day] = d.Value
	}
	allMuscles, err := service.MuscleDistribution(ctx, "alice", progress.RangeAll)
	require.NoError(t, err)
	allMuscleCounts := map[string]int{}
	for _, m := range allMuscles {
		allMuscleCounts[m.Muscle] = m.Value
	}

	for _, tr := range []progress.TimeRange{progress.Range1W, progress.Range1M, progress.Range3M, progress.Range6M, progress.Range1Y} {
		days, err := service.Consistency(ctx, "alice", tr)
		require.NoError(t, err)
		for _, d := range days {
			assert.LessOrEqual(t, d.Value, allCounts[d.Day], "range %s day %s", tr, d.Day)
		}

		muscles, err := service.MuscleDistribution(ctx, "alice", tr)
		require.NoError(t, err)
		for _, m := range muscles {
			assert.LessOrEqual(t, m.Value, allMuscleCounts[m.Muscle], "range %s muscle %s", tr, m.Muscle)
		}
	}
}

func TestService_PersonalBestsAbsentForUnloggedExercises(t *testing.T) {
	faker := gofakeit.New(3)
	store := &inMemorySessions{sessions: randomSessions(faker, "alice", 60)}
	service := progress.NewServiceWithClock(store, nil, fixedNow)

	pbs, err := service.PersonalBests(context.Background(), "alice", []string{"pull-up", "dip"})
	require.NoError(t, err)
	assert.NotNil(t, pbs)
	assert.Empty(t, pbs)

	// other users' sessions are never considered
	pbs, err = service.PersonalBests(context.Background(), "bob", []string{"bench-press", "squat"})
	require.NoError(t, err)
	assert.Empty(t, pbs)
}
