package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinsentry/skinsentry/internal/domain"
	"github.com/skinsentry/skinsentry/internal/infra/state"
)

func newTestUsecases(t *testing.T) (*AlertUsecase, *SubscriptionUsecase) {
	t.Helper()
	store := state.NewStore(filepath.Join(t.TempDir(), "data.json"))
	return NewAlertUsecase(store), NewSubscriptionUsecase(store)
}

func TestTrack_AddsAlert(t *testing.T) {
	alertUC, _ := newTestUsecases(t)
	ctx := context.Background()

	alert, err := alertUC.Track(ctx, 42, 4242, "AK-47 | Redline (Field-Tested)", "steam", "below", "11.50")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSteam, alert.Source)
	assert.Equal(t, domain.DirectionBelow, alert.Direction)

	alerts, err := alertUC.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "AK-47 | Redline (Field-Tested)", alerts[0].Item)

	other, err := alertUC.List(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTrack_Validation(t *testing.T) {
	alertUC, _ := newTestUsecases(t)
	ctx := context.Background()

	_, err := alertUC.Track(ctx, 1, 2, "", "steam", "below", "10")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = alertUC.Track(ctx, 1, 2, "item", "buff163", "below", "10")
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = alertUC.Track(ctx, 1, 2, "item", "steam", "under", "10")
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = alertUC.Track(ctx, 1, 2, "item", "steam", "below", "cheap")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = alertUC.Track(ctx, 1, 2, "item", "steam", "below", "-5")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = alertUC.Track(ctx, 1, 2, "item", "steam", "below", "0")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUntrack_RemovesOnlyMatching(t *testing.T) {
	alertUC, _ := newTestUsecases(t)
	ctx := context.Background()

	_, err := alertUC.Track(ctx, 42, 4242, "AK-47 | Redline", "steam", "below", "11.50")
	require.NoError(t, err)
	_, err = alertUC.Track(ctx, 42, 4242, "AK-47 | Redline", "csfloat", "below", "10.00")
	require.NoError(t, err)

	removed, err := alertUC.Untrack(ctx, 42, "AK-47 | Redline", "steam")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	alerts, err := alertUC.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SourceCSFloat, alerts[0].Source)
}

func TestSetDaily_OnOff(t *testing.T) {
	_, subUC := newTestUsecases(t)
	ctx := context.Background()

	enabled, err := subUC.SetDaily(ctx, 42, 4242, "AWP | Asiimov", "csfloat", "on")
	require.NoError(t, err)
	assert.True(t, enabled)

	subs, err := subUC.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "", subs[0].LastSent)

	// Turning on again does not duplicate.
	_, err = subUC.SetDaily(ctx, 42, 4242, "AWP | Asiimov", "csfloat", "on")
	require.NoError(t, err)
	subs, err = subUC.List(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	enabled, err = subUC.SetDaily(ctx, 42, 4242, "AWP | Asiimov", "csfloat", "off")
	require.NoError(t, err)
	assert.False(t, enabled)

	subs, err = subUC.List(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSetDaily_Validation(t *testing.T) {
	_, subUC := newTestUsecases(t)
	ctx := context.Background()

	_, err := subUC.SetDaily(ctx, 1, 2, "item", "steam", "maybe")
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = subUC.SetDaily(ctx, 1, 2, "item", "buff163", "on")
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = subUC.SetDaily(ctx, 1, 2, "", "steam", "on")
	assert.ErrorIs(t, err, ErrInvalidItem)
}
