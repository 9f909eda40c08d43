package session

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/family_locator/internal/geo"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

var home = models.Position{Latitude: 41.0082, Longitude: 28.9784, TimestampMillis: 1}

func at(p models.Position, ts int64) models.Position {
	p.TimestampMillis = ts
	return p
}

func signIn(t *testing.T, env *testEnv, fix *models.Position) models.SessionSnapshot {
	t.Helper()
	snap, err := env.manager.SignIn(context.Background(), SignInRequest{
		UserID:             "a",
		Email:              "a@example.com",
		LocationPermission: true,
		InitialFix:         fix,
	})
	require.NoError(t, err)
	return snap
}

func nextEvent(t *testing.T, ch <-chan models.SessionEvent, kind models.SessionEventKind) models.SessionEvent {
	t.Helper()
	timeout := time.After(waitFor)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "events channel closed")
			if ev.Kind == kind {
				return ev
			}
		case <-timeout:
			require.FailNow(t, "event not received", "kind %s", kind)
		}
	}
}

func TestSession_NotifiesOnFollowedMovement(t *testing.T) {
	// Подготовка
	env := newTestEnv()
	defer env.manager.Shutdown()
	env.locations.move("b", at(geo.OffsetNorth(home, 12), 1))
	env.profiles.setFollowing("a", "b")

	// Действие
	signIn(t, env, &home)

	// Проверки: первое уведомление при 12 м
	require.Eventually(t, func() bool { return len(env.notifications.all()) == 1 }, waitFor, tick)
	first := env.notifications.all()[0]
	assert.Equal(t, "b", first.UserID)
	assert.Equal(t, "a", first.SenderID)
	assert.Equal(t, "a@example.com", first.SenderEmail)
	assert.Equal(t, models.NotificationTypeLocationChange, first.Type)
	assert.Equal(t, "a@example.com moved away, new distance 0.01 km", first.Message)
	assert.InDelta(t, 12, first.DistanceMeters, 0.01)

	require.Eventually(t, func() bool { return len(env.push.all()) == 1 }, waitFor, tick)
	push := env.push.all()[0]
	assert.Equal(t, "a", push.RecipientID)
	assert.Equal(t, webhook.PushLocationChange, push.Kind)
	assert.Equal(t, "b@example.com moved away, new distance 0.01 km", push.Body)
	assert.Equal(t, map[string]string{"user_id": "b"}, push.Data)

	// Перемещение на 37 м: разница 25 м больше порога
	env.locations.move("b", at(geo.OffsetNorth(home, 37), 2))
	require.Eventually(t, func() bool { return len(env.notifications.all()) == 2 }, waitFor, tick)
	assert.InDelta(t, 37, env.notifications.all()[1].DistanceMeters, 0.01)

	// Перемещение на 3 м не дает уведомления
	env.locations.move("b", at(geo.OffsetNorth(home, 40), 3))
	assert.Never(t, func() bool { return len(env.notifications.all()) > 2 }, 100*time.Millisecond, tick)

	var snap models.SessionSnapshot
	require.Eventually(t, func() bool {
		var err error
		snap, err = env.manager.Snapshot(context.Background(), "a")
		return err == nil && len(snap.Followed) == 1 && snap.Followed[0].Position.TimestampMillis == 3
	}, waitFor, tick)
	assert.Equal(t, "a", snap.UserID)
	require.NotNil(t, snap.Position)
	assert.Equal(t, home, *snap.Position)
	assert.Equal(t, "b", snap.Followed[0].UserID)
	assert.Equal(t, "b@example.com", snap.Followed[0].DisplayLabel)
	assert.InDelta(t, 40, snap.Followed[0].DistanceMeters, 0.01)
}

func TestSession_PublishesOwnPosition(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	signIn(t, env, nil)

	next := at(geo.OffsetNorth(home, 100), 2)
	require.NoError(t, env.manager.ReportPosition(context.Background(), "a", next))

	require.Eventually(t, func() bool {
		record, ok := env.locations.saved("a")
		return ok && record.Position != nil && *record.Position == next
	}, waitFor, tick)
	record, _ := env.locations.saved("a")
	assert.Equal(t, "a@example.com", record.Email)
	assert.Equal(t, env.clock.Now(), record.LastUpdated)
}

func TestSession_UnfollowStopsNotifications(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	env.locations.move("b", at(geo.OffsetNorth(home, 12), 1))
	env.profiles.setFollowing("a", "b")
	signIn(t, env, &home)
	require.Eventually(t, func() bool { return len(env.notifications.all()) == 1 }, waitFor, tick)

	// Действие: отписка
	env.profiles.setFollowing("a")
	require.Eventually(t, func() bool { return env.locations.feed.active("b") == 0 }, waitFor, tick)

	env.locations.move("b", at(geo.OffsetNorth(home, 500), 2))
	assert.Never(t, func() bool { return len(env.notifications.all()) > 1 }, 100*time.Millisecond, tick)

	snap, err := env.manager.Snapshot(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, snap.Followed)

	// Повторная подписка начинает с чистого состояния
	env.profiles.setFollowing("a", "b")
	require.Eventually(t, func() bool { return len(env.notifications.all()) == 2 }, waitFor, tick)
	assert.InDelta(t, 500, env.notifications.all()[1].DistanceMeters, 0.01)
}

func TestSession_NotificationStoreFailureDoesNotBlockPush(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	env.notifications.err = errStoreDown
	env.locations.move("b", at(geo.OffsetNorth(home, 50), 1))
	env.profiles.setFollowing("a", "b")

	signIn(t, env, &home)

	require.Eventually(t, func() bool { return len(env.push.all()) == 1 }, waitFor, tick)
	assert.Empty(t, env.notifications.all())
}

func TestSession_AreaLifecycle(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	ctx := context.Background()
	signIn(t, env, nil)

	// Без позиции геозону задать нельзя
	_, err := env.manager.SetArea(ctx, "a", 0)
	require.ErrorIs(t, err, models.ErrNoPosition)

	events, stop, err := env.manager.Observe(ctx, "a")
	require.NoError(t, err)
	defer stop()

	require.NoError(t, env.manager.ReportPosition(ctx, "a", home))
	area, err := env.manager.SetArea(ctx, "a", 0)
	require.NoError(t, err)
	assert.Equal(t, models.MonitoredArea{
		CenterLatitude:  home.Latitude,
		CenterLongitude: home.Longitude,
		RadiusMeters:    3000,
	}, area)

	entered := nextEvent(t, events, models.SessionEventArea)
	assert.Equal(t, models.AreaEntered, entered.Area.Kind)

	snap, err := env.manager.Snapshot(ctx, "a")
	require.NoError(t, err)
	assert.True(t, snap.Occupancy.IsInside)
	require.NotNil(t, snap.Occupancy.EnteredAt)
	assert.Equal(t, env.clock.Now(), *snap.Occupancy.EnteredAt)

	// Выход после двух часов внутри
	env.clock.Advance(2 * time.Hour)
	require.NoError(t, env.manager.ReportPosition(ctx, "a", at(geo.OffsetNorth(home, 5000), 2)))

	exited := nextEvent(t, events, models.SessionEventArea)
	assert.Equal(t, models.AreaExited, exited.Area.Kind)
	prolonged := nextEvent(t, events, models.SessionEventArea)
	assert.Equal(t, models.ProlongedStayExit, prolonged.Area.Kind)
	assert.Equal(t, 2*time.Hour, prolonged.Area.Stayed)

	require.Eventually(t, func() bool {
		for _, p := range env.push.all() {
			if p.Kind == webhook.PushProlongedStay && p.RecipientID == "a" {
				return true
			}
		}
		return false
	}, waitFor, tick)

	require.NoError(t, env.manager.ClearArea(ctx, "a"))
	snap, err = env.manager.Snapshot(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, snap.Area)
	assert.False(t, snap.Occupancy.IsInside)
}

func TestSession_CustomAreaRadius(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	signIn(t, env, &home)

	area, err := env.manager.SetArea(context.Background(), "a", 250)
	require.NoError(t, err)
	assert.Equal(t, 250.0, area.RadiusMeters)
}

func TestSession_ReportBehindSignInClock(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	signedIn := at(home, 10_000)
	signIn(t, env, &signedIn)

	// Часы устройства отстают от метки фикса при входе
	moved := at(geo.OffsetNorth(home, 500), 8_000)
	require.NoError(t, env.manager.ReportPosition(context.Background(), "a", moved))

	require.Eventually(t, func() bool {
		snap, err := env.manager.Snapshot(context.Background(), "a")
		return err == nil && snap.Position != nil && *snap.Position == moved
	}, waitFor, tick)
	require.Eventually(t, func() bool {
		record, ok := env.locations.saved("a")
		return ok && record.Position != nil && *record.Position == moved
	}, waitFor, tick)
}

func TestSession_FollowDuringSignInIsNotLost(t *testing.T) {
	env := newTestEnv()
	defer env.manager.Shutdown()
	env.locations.move("b", at(geo.OffsetNorth(home, 12), 1))
	// follow приходит сразу после чтения профиля
	env.profiles.afterRead = func() { env.profiles.setFollowing("a", "b") }

	signIn(t, env, &home)

	require.Eventually(t, func() bool { return env.locations.feed.active("b") == 1 }, waitFor, tick)
	require.Eventually(t, func() bool {
		snap, err := env.manager.Snapshot(context.Background(), "a")
		return err == nil && len(snap.Followed) == 1 && snap.Followed[0].UserID == "b"
	}, waitFor, tick)
}
