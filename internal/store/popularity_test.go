package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khlab/cocktail-lab/internal/models"
)

func cocktailFixture(id models.ID, name string) models.Cocktail {
	return models.Cocktail{ID: id, Name: name, Ingredients: []string{"라임"}}
}

func stamps(times ...time.Time) []int64 {
	out := make([]int64, len(times))
	for i, t := range times {
		out[i] = t.UnixMilli()
	}
	return out
}

func TestTopTotalExcludesZeroCounts(t *testing.T) {
	now := time.Now()
	cocktails := []models.Cocktail{
		cocktailFixture("1", "Mojito"),
		cocktailFixture("2", "Gimlet"),
	}
	history := map[models.ID][]int64{
		"1": stamps(now),
	}

	ranked := TopTotal(cocktails, history)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Mojito", ranked[0].Cocktail.Name)
	assert.Equal(t, 1, ranked[0].LikeCount)
}

func TestTopTotalTieBreakKeepsInsertionOrder(t *testing.T) {
	now := time.Now()
	// Counts 5, 3, 3: the tied entries must keep their collection
	// (insertion) order.
	cocktails := []models.Cocktail{
		cocktailFixture("1", "Five"),
		cocktailFixture("2", "ThreeEarly"),
		cocktailFixture("3", "ThreeLate"),
	}
	history := map[models.ID][]int64{
		"1": stamps(now, now, now, now, now),
		"2": stamps(now, now, now),
		"3": stamps(now, now, now),
	}

	ranked := TopTotal(cocktails, history)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Five", ranked[0].Cocktail.Name)
	assert.Equal(t, "ThreeEarly", ranked[1].Cocktail.Name)
	assert.Equal(t, "ThreeLate", ranked[2].Cocktail.Name)
}

func TestTopTotalTruncatesToThree(t *testing.T) {
	now := time.Now()
	var cocktails []models.Cocktail
	history := make(map[models.ID][]int64)
	for i, id := range []models.ID{"1", "2", "3", "4", "5"} {
		cocktails = append(cocktails, cocktailFixture(id, string(id)))
		for j := 0; j <= i; j++ {
			history[id] = append(history[id], now.UnixMilli())
		}
	}

	ranked := TopTotal(cocktails, history)
	require.Len(t, ranked, TopN)
	// Non-increasing by count.
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].LikeCount, ranked[i].LikeCount)
	}
	assert.Equal(t, 5, ranked[0].LikeCount)
}

func TestTopWeeklyWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	cocktails := []models.Cocktail{
		cocktailFixture("1", "Fresh"),
		cocktailFixture("2", "Stale"),
		cocktailFixture("3", "Edge"),
	}
	history := map[models.ID][]int64{
		"1": stamps(now.Add(-time.Hour), now.Add(-24*time.Hour)),
		"2": stamps(now.Add(-8 * 24 * time.Hour)),
		// Exactly seven days old: inclusive edge.
		"3": stamps(now.Add(-7 * 24 * time.Hour)),
	}

	ranked := TopWeekly(cocktails, history, now)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Fresh", ranked[0].Cocktail.Name)
	assert.Equal(t, 2, ranked[0].LikeCount)
	assert.Equal(t, "Edge", ranked[1].Cocktail.Name)
	assert.Equal(t, 1, ranked[1].LikeCount)
}

func TestTopWeeklyCountsOnlyInWindowEvents(t *testing.T) {
	now := time.Now()
	cocktails := []models.Cocktail{cocktailFixture("1", "Mixed")}
	history := map[models.ID][]int64{
		"1": stamps(now.Add(-time.Hour), now.Add(-30*24*time.Hour), now.Add(-31*24*time.Hour)),
	}

	ranked := TopWeekly(cocktails, history, now)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].LikeCount)
}

func TestTopDailySameCalendarDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 30, 0, 0, time.Local)
	cocktails := []models.Cocktail{
		cocktailFixture("1", "Today"),
		cocktailFixture("2", "LastNight"),
	}
	history := map[models.ID][]int64{
		"1": stamps(now.Add(-10 * time.Minute)),
		// 23:50 the previous day: within 24h but a different calendar day.
		"2": stamps(now.Add(-40 * time.Minute)),
	}

	ranked := TopDaily(cocktails, history, now)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Today", ranked[0].Cocktail.Name)
}

func TestRankingsArePureOverStoreState(t *testing.T) {
	now := time.Now()
	cocktails := []models.Cocktail{cocktailFixture("1", "Mojito")}
	history := map[models.ID][]int64{"1": stamps(now)}

	first := TopTotal(cocktails, history)
	second := TopTotal(cocktails, history)
	assert.Equal(t, first, second)
	// Inputs untouched.
	assert.Len(t, history["1"], 1)
}
