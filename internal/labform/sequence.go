package labform

import (
	"sync"
	"time"

	"github.com/khlab/cocktail-lab/internal/models"
)

// Stage is a step of the submission sequence.
type Stage int

const (
	StageIdle Stage = iota
	StageShakeFirst
	StageFlip
	StageShakeSecond
)

func (s Stage) String() string {
	switch s {
	case StageShakeFirst:
		return "shake-first"
	case StageFlip:
		return "flip"
	case StageShakeSecond:
		return "shake-second"
	default:
		return "idle"
	}
}

// Durations holds the wall-clock delay of each stage.
type Durations struct {
	ShakeFirst  time.Duration
	Flip        time.Duration
	ShakeSecond time.Duration
}

// DefaultDurations are the stage delays the sequence was designed around.
func DefaultDurations() Durations {
	return Durations{
		ShakeFirst:  1000 * time.Millisecond,
		Flip:        500 * time.Millisecond,
		ShakeSecond: 1000 * time.Millisecond,
	}
}

// Sequence gates the commit of a new cocktail behind a fixed, purely
// time-driven stage progression: idle -> shake-first -> flip -> shake-second
// -> idle. The draft is committed exactly once, at the terminal transition.
// There is no cancellation: once started the sequence always runs to
// completion and always commits. It is a UX-pacing device, not a
// correctness mechanism.
type Sequence struct {
	mu        sync.Mutex
	durations Durations
	stage     Stage
	commit    func(models.CocktailDraft)
}

// NewSequence creates a sequence with the default stage delays.
func NewSequence(commit func(models.CocktailDraft)) *Sequence {
	return NewSequenceWithDurations(commit, DefaultDurations())
}

// NewSequenceWithDurations allows tests to shrink the delays. The stage
// order and single-commit guarantee are unaffected.
func NewSequenceWithDurations(commit func(models.CocktailDraft), d Durations) *Sequence {
	return &Sequence{durations: d, commit: commit}
}

// Stage returns the current step.
func (q *Sequence) Stage() Stage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stage
}

// Busy reports whether a submission is running; while true the form modal is
// non-dismissible.
func (q *Sequence) Busy() bool {
	return q.Stage() != StageIdle
}

// Submit starts the sequence for the draft. It refuses (returns nil, false)
// while a previous submission is still running. The returned channel closes
// after the commit callback has fired and the sequence is idle again.
func (q *Sequence) Submit(draft models.CocktailDraft) (<-chan struct{}, bool) {
	q.mu.Lock()
	if q.stage != StageIdle {
		q.mu.Unlock()
		return nil, false
	}
	q.stage = StageShakeFirst
	q.mu.Unlock()

	done := make(chan struct{})
	time.AfterFunc(q.durations.ShakeFirst, func() {
		q.setStage(StageFlip)
		time.AfterFunc(q.durations.Flip, func() {
			q.setStage(StageShakeSecond)
			time.AfterFunc(q.durations.ShakeSecond, func() {
				q.commit(draft)
				q.setStage(StageIdle)
				close(done)
			})
		})
	})
	return done, true
}

func (q *Sequence) setStage(s Stage) {
	q.mu.Lock()
	q.stage = s
	q.mu.Unlock()
}
