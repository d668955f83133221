package quiz

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorogan/engine"
	"sorogan/lesson"
)

type fakeScheduler struct {
	fns []func()
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) engine.CancelFunc {
	i := len(s.fns)
	s.fns = append(s.fns, fn)
	fns := s.fns
	return func() { fns[i] = nil }
}

func (s *fakeScheduler) fire() {
	fns := s.fns
	s.fns = nil
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

type cueSpy struct {
	cues []engine.Cue
}

func (c *cueSpy) PlayCue(kind engine.Cue) { c.cues = append(c.cues, kind) }

type progressSpy struct {
	toggled []string
	err     error
}

func (p *progressSpy) ToggleComplete(lessonID string) error {
	p.toggled = append(p.toggled, lessonID)
	return p.err
}

func (p *progressSpy) IsComplete(string) (bool, error) { return false, nil }

func (p *progressSpy) Completed() ([]string, error) { return nil, nil }

func quizDoc() *lesson.Lesson {
	return &lesson.Lesson{
		ID:       "q",
		TextData: []lesson.Paragraph{{{Gundul: "a", Berharakat: "a"}}},
		QuizData: []lesson.Question{
			{Question: "q1", Options: []string{"a1", "b1", "c1"}, CorrectAnswer: 1, Explanation: "e1"},
			{Question: "q2", Options: []string{"a2", "b2", "c2"}, CorrectAnswer: 0, Explanation: "e2"},
			{Question: "q3", Options: []string{"a3", "b3", "c3"}, CorrectAnswer: 2, Explanation: "e3"},
		},
	}
}

func correctOf(q lesson.Question) string { return q.Options[q.CorrectAnswer] }

func newTestEngine(cfg Config) *Engine {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	return New(quizDoc(), cfg)
}

// answerCurrent answers the current question, correctly or not, and fires
// the advance timer.
func answerCurrent(e *Engine, sched *fakeScheduler, correctly bool) {
	q, _ := e.Current()
	answer := correctOf(q)
	if !correctly {
		for _, o := range q.Options {
			if o != answer {
				answer = o
				break
			}
		}
	}
	e.Answer(answer)
	sched.fire()
}

func TestNewShufflesQuestions(t *testing.T) {
	e := newTestEngine(Config{})

	assert.Equal(t, ModeInProgress, e.Mode())
	assert.Equal(t, 3, e.TotalQuestions())

	q, ok := e.Current()
	require.True(t, ok)

	// The displayed options are a permutation of the authored ones.
	assert.ElementsMatch(t, q.Options, e.CurrentOptions())
}

func TestCorrectnessAgainstAuthoredArray(t *testing.T) {
	sched := &fakeScheduler{}
	cues := &cueSpy{}
	e := newTestEngine(Config{Scheduler: sched, Cues: cues})

	q, _ := e.Current()
	e.Answer(correctOf(q))

	assert.Equal(t, 1, e.Score())
	assert.Equal(t, []engine.Cue{engine.CueCorrect}, cues.cues)

	answers := e.Answers()
	require.Len(t, answers, 1)
	assert.True(t, answers[0].IsCorrect)
	assert.Equal(t, correctOf(q), answers[0].CorrectAnswer)
}

func TestAnswerIsLocked(t *testing.T) {
	sched := &fakeScheduler{}
	e := newTestEngine(Config{Scheduler: sched})

	q, _ := e.Current()
	wrong := ""
	for _, o := range q.Options {
		if o != correctOf(q) {
			wrong = o
			break
		}
	}

	e.Answer(wrong)
	e.Answer(correctOf(q)) // ignored, first answer stands

	assert.Equal(t, 0, e.Score())
	assert.Equal(t, wrong, e.SelectedAnswer())
	assert.Len(t, e.Answers(), 1)
}

func TestAdvanceAfterDelay(t *testing.T) {
	sched := &fakeScheduler{}
	e := newTestEngine(Config{Scheduler: sched})

	first, _ := e.Current()
	e.Answer(correctOf(first))

	// Nothing moves until the timer fires.
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Equal(t, correctOf(first), e.SelectedAnswer())

	sched.fire()
	assert.Equal(t, 1, e.CurrentIndex())
	assert.Empty(t, e.SelectedAnswer())

	second, ok := e.Current()
	require.True(t, ok)
	assert.NotEqual(t, first.Question, second.Question)
	assert.ElementsMatch(t, second.Options, e.CurrentOptions())
}

func TestFinishMarksLessonComplete(t *testing.T) {
	sched := &fakeScheduler{}
	prog := &progressSpy{}
	e := newTestEngine(Config{Scheduler: sched, Progress: prog})

	answerCurrent(e, sched, true)
	answerCurrent(e, sched, false)
	answerCurrent(e, sched, true)

	assert.Equal(t, ModeFinished, e.Mode())
	assert.Equal(t, 2, e.Score())
	assert.Equal(t, 67, e.Accuracy())
	assert.Equal(t, []string{"q"}, prog.toggled)
}

func TestSnapshotFidelity(t *testing.T) {
	sched := &fakeScheduler{}
	e := newTestEngine(Config{Scheduler: sched})

	q, _ := e.Current()
	shown := e.CurrentOptions()
	e.Answer(correctOf(q))
	sched.fire()

	// The snapshot freezes the option order that was on screen, even after
	// the session moves on.
	answers := e.Answers()
	require.Len(t, answers, 1)
	assert.Equal(t, q.Question, answers[0].Question.Question)
	assert.Equal(t, shown, answers[0].ShuffledOptions)
}

func TestReviewNavigationIsBounded(t *testing.T) {
	sched := &fakeScheduler{}
	e := newTestEngine(Config{Scheduler: sched})

	// Review is gated until finished.
	e.Review()
	assert.Equal(t, ModeInProgress, e.Mode())

	answerCurrent(e, sched, true)
	answerCurrent(e, sched, true)
	answerCurrent(e, sched, false)

	e.Review()
	assert.Equal(t, ModeReview, e.Mode())
	assert.Equal(t, 0, e.CurrentIndex())

	e.ReviewPrev() // bounded at the start
	assert.Equal(t, 0, e.CurrentIndex())

	e.ReviewNext()
	e.ReviewNext()
	e.ReviewNext() // bounded at the end
	assert.Equal(t, 2, e.CurrentIndex())

	item, ok := e.ReviewItem()
	require.True(t, ok)
	assert.False(t, item.IsCorrect)

	e.BackToSummary()
	assert.Equal(t, ModeFinished, e.Mode())
	_, ok = e.ReviewItem()
	assert.False(t, ok)
}

func TestRestart(t *testing.T) {
	sched := &fakeScheduler{}
	e := newTestEngine(Config{Scheduler: sched})

	answerCurrent(e, sched, true)
	answerCurrent(e, sched, true)
	answerCurrent(e, sched, true)
	require.Equal(t, ModeFinished, e.Mode())

	e.Restart()

	assert.Equal(t, ModeInProgress, e.Mode())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Empty(t, e.Answers())
	assert.Empty(t, e.SelectedAnswer())
	_, ok := e.Current()
	assert.True(t, ok)
}

func TestExitConfirmation(t *testing.T) {
	sched := &fakeScheduler{}
	prog := &progressSpy{}
	e := newTestEngine(Config{Scheduler: sched, Progress: prog})

	answerCurrent(e, sched, true)

	// Confirm without a request is a no-op.
	e.ConfirmExit()
	assert.Equal(t, ModeInProgress, e.Mode())

	// Cancel keeps the session exactly as it was.
	e.RequestExit()
	assert.True(t, e.ExitPending())
	e.CancelExit()
	assert.False(t, e.ExitPending())
	assert.Equal(t, 1, e.Score())
	assert.Equal(t, 1, e.CurrentIndex())

	// Confirm abandons it; nothing is persisted.
	e.RequestExit()
	e.ConfirmExit()
	assert.Equal(t, ModeExited, e.Mode())
	assert.Empty(t, prog.toggled)

	// Inert afterwards.
	e.Answer("a2")
	e.Restart()
	assert.Equal(t, ModeExited, e.Mode())
}

func TestPendingAdvanceCanceledByExit(t *testing.T) {
	sched := &fakeScheduler{}
	e := newTestEngine(Config{Scheduler: sched})

	q, _ := e.Current()
	e.Answer(correctOf(q))
	e.RequestExit()
	e.ConfirmExit()

	// The scheduled advance must not resurrect the session.
	sched.fire()
	assert.Equal(t, ModeExited, e.Mode())
	assert.Equal(t, 0, e.CurrentIndex())
}

func TestEmptyQuizNeverFinishes(t *testing.T) {
	doc := &lesson.Lesson{ID: "empty", TextData: []lesson.Paragraph{{{Gundul: "a"}}}}
	e := New(doc, Config{Rand: rand.New(rand.NewSource(1))})

	assert.Equal(t, ModeInProgress, e.Mode())
	assert.Equal(t, 0, e.TotalQuestions())
	assert.Equal(t, 0, e.Accuracy())
	_, ok := e.Current()
	assert.False(t, ok)
	assert.Empty(t, e.CurrentOptions())

	e.Answer("anything")
	assert.Empty(t, e.Answers())
	assert.Equal(t, ModeInProgress, e.Mode())
}
