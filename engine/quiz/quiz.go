// Package quiz implements the multiple-choice quiz session: shuffled
// questions, locked answers, delayed auto-advance, scoring, review and
// restart.
package quiz

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"sorogan/engine"
	"sorogan/lesson"
	"sorogan/progress"
	"sorogan/shuffle"
)

// Mode is the session lifecycle state.
type Mode string

const (
	ModeInProgress Mode = "in_progress"
	ModeFinished   Mode = "finished"
	ModeReview     Mode = "review"
	ModeExited     Mode = "exited"
)

// DefaultAdvanceDelay is how long the answered state stays on screen before
// the next question appears.
const DefaultAdvanceDelay = 2 * time.Second

// Answered is the snapshot appended when a question is answered. Review
// replays these verbatim; later reshuffles never touch them.
type Answered struct {
	Question        lesson.Question `json:"question"`
	ShuffledOptions []string        `json:"shuffledOptions"`
	SelectedAnswer  string          `json:"selectedAnswer"`
	CorrectAnswer   string          `json:"correctAnswer"`
	IsCorrect       bool            `json:"isCorrect"`
}

// Config carries the injected collaborators.
type Config struct {
	Rand         *rand.Rand
	Scheduler    engine.Scheduler
	Cues         engine.CuePlayer
	Progress     progress.Store
	Logger       *zap.Logger
	AdvanceDelay time.Duration
}

// Engine is one quiz session. Not safe for concurrent use; the session
// registry serializes access.
type Engine struct {
	lessonID  string
	questions []lesson.Question // authored order, never mutated

	shuffled       []lesson.Question
	userAnswers    []Answered
	currentIndex   int
	selectedAnswer string
	currentOptions []string
	score          int
	mode           Mode
	exitPending    bool

	cancelAdvance engine.CancelFunc

	rng          *rand.Rand
	sched        engine.Scheduler
	cues         engine.CuePlayer
	prog         progress.Store
	log          *zap.Logger
	advanceDelay time.Duration
}

// New starts a session over the lesson's quiz data with a fresh question
// shuffle. A lesson without questions yields a session that never has a
// current question and never finishes.
func New(doc *lesson.Lesson, cfg Config) *Engine {
	e := &Engine{
		lessonID:     doc.ID,
		questions:    doc.QuizData,
		mode:         ModeInProgress,
		rng:          cfg.Rand,
		sched:        cfg.Scheduler,
		cues:         cfg.Cues,
		prog:         cfg.Progress,
		log:          cfg.Logger,
		advanceDelay: cfg.AdvanceDelay,
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.sched == nil {
		e.sched = engine.TimerScheduler{}
	}
	if e.cues == nil {
		e.cues = engine.NopCuePlayer{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.advanceDelay <= 0 {
		e.advanceDelay = DefaultAdvanceDelay
	}
	e.reshuffle()
	return e
}

func (e *Engine) reshuffle() {
	e.shuffled = shuffle.Slice(e.rng, e.questions)
	e.refreshOptions()
}

// refreshOptions derives the displayed option order for the question that
// just became current.
func (e *Engine) refreshOptions() {
	if q, ok := e.Current(); ok {
		e.currentOptions = shuffle.Strings(e.rng, q.Options)
	} else {
		e.currentOptions = nil
	}
}

// Mode reports the lifecycle state.
func (e *Engine) Mode() Mode { return e.mode }

// Current returns the question at the pointer, or false when there are no
// questions or the session moved past the last one.
func (e *Engine) Current() (lesson.Question, bool) {
	if e.currentIndex < 0 || e.currentIndex >= len(e.shuffled) {
		return lesson.Question{}, false
	}
	return e.shuffled[e.currentIndex], true
}

// CurrentOptions is the shuffled option order shown for the current
// question.
func (e *Engine) CurrentOptions() []string {
	out := make([]string, len(e.currentOptions))
	copy(out, e.currentOptions)
	return out
}

// CurrentIndex returns the pointer: into the shuffled questions while in
// progress, into the answered snapshots while reviewing.
func (e *Engine) CurrentIndex() int { return e.currentIndex }

func (e *Engine) TotalQuestions() int { return len(e.shuffled) }
func (e *Engine) Score() int          { return e.score }

// SelectedAnswer returns the locked answer for the current question, empty
// while the question is still open.
func (e *Engine) SelectedAnswer() string { return e.selectedAnswer }

// Answers returns the answered snapshots in answer order.
func (e *Engine) Answers() []Answered {
	out := make([]Answered, len(e.userAnswers))
	copy(out, e.userAnswers)
	return out
}

// Accuracy is round(score/total*100).
func (e *Engine) Accuracy() int {
	if len(e.shuffled) == 0 {
		return 0
	}
	return int(math.Round(float64(e.score) / float64(len(e.shuffled)) * 100))
}

// Answer locks in option for the current question. Correctness is judged
// against the authored options array indexed by CorrectAnswer, never
// against shuffled positions. After the fixed delay the session advances,
// or finishes and marks the lesson complete.
func (e *Engine) Answer(option string) {
	if e.mode != ModeInProgress || e.selectedAnswer != "" {
		return
	}
	q, ok := e.Current()
	if !ok {
		return
	}

	e.selectedAnswer = option
	correctAnswer := q.Options[q.CorrectAnswer]
	isCorrect := option == correctAnswer

	if isCorrect {
		e.score++
		e.cues.PlayCue(engine.CueCorrect)
	} else {
		e.cues.PlayCue(engine.CueWrong)
	}

	e.userAnswers = append(e.userAnswers, Answered{
		Question:        q,
		ShuffledOptions: e.CurrentOptions(),
		SelectedAnswer:  option,
		CorrectAnswer:   correctAnswer,
		IsCorrect:       isCorrect,
	})

	e.cancelAdvanceTimer()
	e.cancelAdvance = e.sched.Schedule(e.advanceDelay, e.advance)
}

// advance fires once per answered question; cancelable until then.
func (e *Engine) advance() {
	if e.mode != ModeInProgress || e.selectedAnswer == "" {
		return
	}
	if e.currentIndex < len(e.shuffled)-1 {
		e.currentIndex++
		e.selectedAnswer = ""
		e.refreshOptions()
		return
	}
	e.mode = ModeFinished
	if e.prog != nil {
		if err := e.prog.ToggleComplete(e.lessonID); err != nil {
			e.log.Warn("mark lesson complete", zap.String("lesson", e.lessonID), zap.Error(err))
		}
	}
}

// Review walks the answered snapshots from the beginning.
func (e *Engine) Review() {
	if e.mode != ModeFinished {
		return
	}
	e.mode = ModeReview
	e.currentIndex = 0
}

// BackToSummary returns from review to the score summary.
func (e *Engine) BackToSummary() {
	if e.mode != ModeReview {
		return
	}
	e.mode = ModeFinished
}

// ReviewNext steps forward through the snapshots, bounded at the end.
func (e *Engine) ReviewNext() {
	if e.mode == ModeReview && e.currentIndex < len(e.userAnswers)-1 {
		e.currentIndex++
	}
}

// ReviewPrev steps backward, bounded at the start.
func (e *Engine) ReviewPrev() {
	if e.mode == ModeReview && e.currentIndex > 0 {
		e.currentIndex--
	}
}

// ReviewItem returns the snapshot under review.
func (e *Engine) ReviewItem() (Answered, bool) {
	if e.mode != ModeReview || e.currentIndex < 0 || e.currentIndex >= len(e.userAnswers) {
		return Answered{}, false
	}
	return e.userAnswers[e.currentIndex], true
}

// Restart reshuffles everything and clears answers, score and pointer.
func (e *Engine) Restart() {
	if e.mode == ModeExited {
		return
	}
	e.cancelAdvanceTimer()
	e.userAnswers = nil
	e.currentIndex = 0
	e.selectedAnswer = ""
	e.score = 0
	e.mode = ModeInProgress
	e.reshuffle()
}

// RequestExit asks for confirmation before the destructive exit.
func (e *Engine) RequestExit() {
	if e.mode != ModeExited {
		e.exitPending = true
	}
}

// CancelExit abandons the exit request; session state is untouched.
func (e *Engine) CancelExit() { e.exitPending = false }

// ConfirmExit discards the session without persisting anything.
func (e *Engine) ConfirmExit() {
	if !e.exitPending {
		return
	}
	e.exitPending = false
	e.cancelAdvanceTimer()
	e.mode = ModeExited
}

// ExitPending reports whether a confirmation is outstanding.
func (e *Engine) ExitPending() bool { return e.exitPending }

func (e *Engine) cancelAdvanceTimer() {
	if e.cancelAdvance != nil {
		e.cancelAdvance()
		e.cancelAdvance = nil
	}
}
