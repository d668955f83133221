// Package engine holds the narrow contracts the interactive engines need
// from their host: deferred callbacks, sound cues, the slide-up detail
// surface and popover layout measurement. All of them are injected so the
// engines stay pure and testable.
package engine

import "time"

// CancelFunc stops a scheduled callback from firing. Safe to call more
// than once.
type CancelFunc func()

// Scheduler runs fn once after d. The returned CancelFunc must prevent fn
// from running if the owning session resets or is discarded first.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Cue identifies a feedback sound.
type Cue string

const (
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
)

// CuePlayer plays a feedback sound. Calls are best effort: failures are the
// player's problem to log, never the engine's to propagate.
type CuePlayer interface {
	PlayCue(kind Cue)
}

// NopCuePlayer discards every cue.
type NopCuePlayer struct{}

func (NopCuePlayer) PlayCue(Cue) {}

// Detail is the payload for the slide-up detail panel, used for I'rab
// display. Direction is "rtl" for Arabic body text.
type Detail struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Direction string `json:"direction"`
	Link      string `json:"link,omitempty"`
}

// DetailSurface is the slide-up panel the engines open for I'rab notes.
type DetailSurface interface {
	Open(Detail)
	Close()
}

// NopDetailSurface ignores open/close requests.
type NopDetailSurface struct{}

func (NopDetailSurface) Open(Detail) {}
func (NopDetailSurface) Close()      {}
