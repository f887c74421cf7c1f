package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
	fixturemock "github.com/riskibarqy/weekend-fixtures/internal/mocks/domain/fixture"
	geomock "github.com/riskibarqy/weekend-fixtures/internal/mocks/domain/geo"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, timeout time.Duration) (*Session, *recordingRenderer, *fixturemock.Repository) {
	t.Helper()

	fixtureRepo := fixturemock.NewRepository(t)
	fixtureRepo.On("ListByMonth", mock.Anything, february2026).Return(demoFixtures(), nil)

	service := NewFixtureService(fixtureRepo, fixedCalendar(time.Date(2026, 2, 10, 12, 0, 0, 0, cet)), logging.NewNop())
	renderer := &recordingRenderer{}
	session := NewSession(service, renderer, SessionConfig{
		DefaultReference:   saintQuentin,
		DefaultRadiusKm:    25,
		GeolocationTimeout: timeout,
	}, logging.NewNop())
	return session, renderer, fixtureRepo
}

func waitTask(t *testing.T, task *GeolocationTask) {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("geolocation task did not finish")
	}
}

func TestSession_BootWithoutLocatorRendersDefaultPosition(t *testing.T) {
	t.Parallel()

	session, renderer, _ := newTestSession(t, time.Second)
	task, err := session.Boot(context.Background(), nil)
	require.NoError(t, err)
	waitTask(t, task)

	frames, notices := renderer.snapshot()
	require.Len(t, frames, 1)
	assert.Equal(t, saintQuentin, frames[0].Reference)
	assert.False(t, frames[0].Located)
	assert.Equal(t, "2026-02-14", frames[0].Window.ID())
	require.Len(t, frames[0].Items, 1)
	assert.Equal(t, "Chauny FC", frames[0].Items[0].HomeTeam)

	require.Len(t, notices, 1)
	assert.Equal(t, NoticeGeolocationUnavailable, notices[0].Kind)
}

func TestSession_GeolocationSuccessReRendersOnce(t *testing.T) {
	t.Parallel()

	session, renderer, _ := newTestSession(t, time.Second)
	locator := geomock.NewLocator(t)
	locator.On("Locate", mock.Anything).Return(chauny, nil).Once()

	task, err := session.Boot(context.Background(), locator)
	require.NoError(t, err)
	waitTask(t, task)

	frames, notices := renderer.snapshot()
	require.Len(t, frames, 2)
	assert.Empty(t, notices)
	assert.True(t, task.Applied())
	assert.False(t, task.TimedOut())

	last := frames[1]
	assert.True(t, last.Located)
	assert.Equal(t, chauny, last.Reference)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "FC Demo Chauny", last.Items[0].HomeTeam)
}

func TestSession_GeolocationDeniedKeepsDefault(t *testing.T) {
	t.Parallel()

	session, renderer, _ := newTestSession(t, time.Second)
	locator := geomock.NewLocator(t)
	locator.On("Locate", mock.Anything).Return(geo.Point{}, geo.ErrLocationDenied).Once()

	task, err := session.Boot(context.Background(), locator)
	require.NoError(t, err)
	waitTask(t, task)

	frames, notices := renderer.snapshot()
	require.Len(t, frames, 1)
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeGeolocationDenied, notices[0].Kind)
	assert.Equal(t, saintQuentin, session.Snapshot().Reference)
}

func TestSession_LateGeolocationSuccessAfterTimeoutIsApplied(t *testing.T) {
	t.Parallel()

	session, renderer, _ := newTestSession(t, 20*time.Millisecond)
	release := make(chan time.Time)
	locator := geomock.NewLocator(t)
	locator.On("Locate", mock.Anything).WaitUntil(release).Return(chauny, nil).Once()

	task, err := session.Boot(context.Background(), locator)
	require.NoError(t, err)

	require.Eventually(t, task.TimedOut, time.Second, 5*time.Millisecond)
	close(release)
	waitTask(t, task)

	frames, notices := renderer.snapshot()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeGeolocationTimeout, notices[0].Kind)
	require.Len(t, frames, 2)
	assert.Equal(t, chauny, frames[1].Reference)
	assert.True(t, task.Applied())
}

func TestSession_TimeoutNoticeNeverFollowsAppliedPosition(t *testing.T) {
	t.Parallel()

	// Locator and timer finish almost together so both orders get exercised.
	for i := 0; i < 50; i++ {
		session, renderer, _ := newTestSession(t, time.Millisecond)
		locator := locatorFunc(func(context.Context) (geo.Point, error) {
			time.Sleep(time.Millisecond)
			return chauny, nil
		})

		task, err := session.Boot(context.Background(), locator)
		require.NoError(t, err)
		waitTask(t, task)
		require.True(t, task.Applied())

		events := renderer.eventLog()
		located := -1
		timeout := -1
		for idx, event := range events {
			switch event {
			case "render:located":
				require.Equal(t, -1, located, "position applied twice: %v", events)
				located = idx
			case "notice:" + string(NoticeGeolocationTimeout):
				require.Equal(t, -1, timeout, "timeout noticed twice: %v", events)
				timeout = idx
			}
		}
		require.NotEqual(t, -1, located, events)
		assert.Equal(t, task.TimedOut(), timeout != -1, events)
		if timeout != -1 {
			assert.Less(t, timeout, located, events)
		}
	}
}

func TestSession_EachMutatorRendersExactlyOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, renderer, _ := newTestSession(t, time.Second)
	require.NoError(t, session.SelectMonth(ctx, february2026))

	session.SetLevel(ctx, "r2")
	require.NoError(t, session.SetRadiusKm(ctx, 30))
	require.NoError(t, session.SelectWeekend(ctx, "2026-02-07"))
	require.NoError(t, session.ApplyPosition(ctx, chauny))

	frames, _ := renderer.snapshot()
	require.Len(t, frames, 5)
	for i, frame := range frames {
		assert.Equal(t, i+1, frame.Seq)
	}
	assert.Equal(t, "R2", frames[1].Level)
	assert.Equal(t, 30.0, frames[2].RadiusKm)
	require.Len(t, frames[2].Items, 1)
	assert.Equal(t, "2026-02-07", frames[3].Window.ID())
	assert.Empty(t, frames[3].Items)
}

func TestSession_RejectsInvalidMutationsWithoutRendering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, renderer, _ := newTestSession(t, time.Second)
	require.NoError(t, session.SelectMonth(ctx, february2026))

	assert.ErrorIs(t, session.SetRadiusKm(ctx, -5), ErrInvalidInput)
	assert.ErrorIs(t, session.SelectWeekend(ctx, "2026-02-15"), ErrInvalidInput)
	assert.ErrorIs(t, session.ApplyPosition(ctx, geo.Point{Lat: 91}), ErrInvalidInput)
	assert.ErrorIs(t, session.SelectMonth(ctx, weekend.Month{}), ErrInvalidInput)

	frames, _ := renderer.snapshot()
	assert.Len(t, frames, 1)
}

func TestSession_SelectWeekendOutsideLoadedMonthsReloads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, renderer, fixtureRepo := newTestSession(t, time.Second)
	march := weekend.Month{Year: 2026, Month: time.March}
	fixtureRepo.On("ListByMonth", mock.Anything, march).Return(nil, nil).Once()

	require.NoError(t, session.SelectMonth(ctx, february2026))
	require.NoError(t, session.SelectWeekend(ctx, "2026-03-07"))

	frames, _ := renderer.snapshot()
	require.Len(t, frames, 2)
	assert.Equal(t, "2026-03-07", frames[1].Window.ID())
	assert.Empty(t, frames[1].Items)
	assert.Empty(t, frames[1].Levels)
}
