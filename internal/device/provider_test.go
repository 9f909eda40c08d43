package device

import (
	"context"
	"testing"

	"github.com/shenikar/family_locator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_CurrentWithoutFix(t *testing.T) {
	p := NewProvider(true, nil)

	_, err := p.Current(context.Background())
	assert.ErrorIs(t, err, models.ErrNoFix)
}

func TestProvider_ReportFansOut(t *testing.T) {
	initial := models.Position{Latitude: 41, Longitude: 29, TimestampMillis: 1}
	p := NewProvider(true, &initial)

	current, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, initial, current)

	var first, second []models.Position
	cancelFirst, err := p.Watch(func(pos models.Position) { first = append(first, pos) })
	require.NoError(t, err)
	_, err = p.Watch(func(pos models.Position) { second = append(second, pos) })
	require.NoError(t, err)

	next := models.Position{Latitude: 41.001, Longitude: 29, TimestampMillis: 2}
	require.NoError(t, p.Report(next))
	assert.Equal(t, []models.Position{next}, first)
	assert.Equal(t, []models.Position{next}, second)

	cancelFirst()
	cancelFirst()
	assert.Equal(t, 1, p.Watchers())

	require.NoError(t, p.Report(initial))
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)

	current, err = p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, initial, current)
}

func TestProvider_PermissionDenied(t *testing.T) {
	p := NewProvider(false, nil)

	granted, err := p.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)

	_, err = p.Watch(func(models.Position) {})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.ErrorIs(t, p.Report(models.Position{}), models.ErrPermissionDenied)
}
