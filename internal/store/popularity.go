package store

import (
	"sort"
	"time"

	"github.com/khlab/cocktail-lab/internal/models"
)

// TopN is the size of every popularity ranking.
const TopN = 3

// Ranked pairs a cocktail with its like count inside the queried window.
type Ranked struct {
	Cocktail  models.Cocktail
	LikeCount int
}

// TopTotal ranks cocktails by their all-time like count: zero-count entries
// are excluded, ties keep insertion order, and at most TopN survive. Pure
// function of its inputs.
func TopTotal(cocktails []models.Cocktail, history map[models.ID][]int64) []Ranked {
	return rank(cocktails, history, func(ts []int64) int {
		return len(ts)
	})
}

// TopWeekly counts only like events within the trailing seven days,
// inclusive of the window edge.
func TopWeekly(cocktails []models.Cocktail, history map[models.ID][]int64, now time.Time) []Ranked {
	cutoff := now.Add(-7 * 24 * time.Hour).UnixMilli()
	return rank(cocktails, history, func(ts []int64) int {
		n := 0
		for _, t := range ts {
			if t >= cutoff {
				n++
			}
		}
		return n
	})
}

// TopDaily counts only like events on the same calendar day as now, in now's
// location.
func TopDaily(cocktails []models.Cocktail, history map[models.ID][]int64, now time.Time) []Ranked {
	loc := now.Location()
	year, month, day := now.Date()
	return rank(cocktails, history, func(ts []int64) int {
		n := 0
		for _, t := range ts {
			y, m, d := time.UnixMilli(t).In(loc).Date()
			if y == year && m == month && d == day {
				n++
			}
		}
		return n
	})
}

func rank(cocktails []models.Cocktail, history map[models.ID][]int64, count func([]int64) int) []Ranked {
	var ranked []Ranked
	for _, c := range cocktails {
		n := count(history[c.ID])
		if n > 0 {
			ranked = append(ranked, Ranked{Cocktail: c, LikeCount: n})
		}
	}
	// Stable: tied cocktails retain collection (insertion) order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LikeCount > ranked[j].LikeCount
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}
