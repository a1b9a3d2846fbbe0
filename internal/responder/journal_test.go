package responder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJournal(t *testing.T) {
	ctx := context.Background()
	j := NewMemoryJournal()
	now := time.Now()

	require.NoError(t, j.Record(ctx, Application{VacancyID: "1", Status: StatusSubmitted, CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, j.Record(ctx, Application{VacancyID: "2", Status: StatusSubmitted, CreatedAt: now}))
	require.NoError(t, j.Record(ctx, Application{VacancyID: "3", Status: StatusFailed, CreatedAt: now}))
	require.NoError(t, j.Record(ctx, Application{VacancyID: "4", Status: StatusNotSubmitted}))

	applied, err := j.Applied(ctx, "1")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, _ = j.Applied(ctx, "3")
	assert.False(t, applied, "неудачная попытка не считается откликом")
	applied, _ = j.Applied(ctx, "")
	assert.False(t, applied)

	n, err := j.SubmittedSince(ctx, startOfDay(now))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := j.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{StatusSubmitted: 2, StatusFailed: 1, StatusNotSubmitted: 1}, stats)

	apps, err := j.Applications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "4", apps[0].VacancyID, "новые записи первыми")
	assert.Equal(t, "2", apps[1].VacancyID)
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 5, 17, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), startOfDay(ts))
}
