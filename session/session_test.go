package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorogan/engine"
	"sorogan/engine/drill"
	"sorogan/engine/quiz"
	"sorogan/engine/reader"
	"sorogan/lesson"
	"sorogan/settings"
)

func sessionDoc() *lesson.Lesson {
	return &lesson.Lesson{
		ID: "s",
		TextData: []lesson.Paragraph{
			{{Gundul: "العلم", Berharakat: "الْعِلْمُ", TasykilOptions: []string{"الْعَلَمُ"}}},
		},
		QuizData: []lesson.Question{
			{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
	}
}

func TestRegistryOwnership(t *testing.T) {
	reg := NewRegistry()
	s := reg.AddDrill(1, "s", &CueRecorder{}, &DetailRecorder{}, func(sched engine.Scheduler) *drill.Engine {
		return drill.New(sessionDoc(), drill.Config{Scheduler: sched})
	})

	got, ok := reg.Drill(s.ID, 1)
	require.True(t, ok)
	assert.Equal(t, s, got)

	// Wrong owner and unknown ids both miss.
	_, ok = reg.Drill(s.ID, 2)
	assert.False(t, ok)
	_, ok = reg.Drill(uuid.New(), 1)
	assert.False(t, ok)

	reg.RemoveDrill(s.ID)
	_, ok = reg.Drill(s.ID, 1)
	assert.False(t, ok)
}

func TestRegistryQuizSessions(t *testing.T) {
	reg := NewRegistry()
	s := reg.AddQuiz(7, "s", &CueRecorder{}, func(sched engine.Scheduler) *quiz.Engine {
		return quiz.New(sessionDoc(), quiz.Config{Scheduler: sched})
	})

	_, ok := reg.Quiz(s.ID, 7)
	assert.True(t, ok)
	_, ok = reg.Quiz(s.ID, 8)
	assert.False(t, ok)

	reg.RemoveQuiz(s.ID)
	_, ok = reg.Quiz(s.ID, 7)
	assert.False(t, ok)
}

func TestRegistryReaderSessions(t *testing.T) {
	reg := NewRegistry()
	ctrl := reader.NewController(sessionDoc(), settings.Defaults(), nil)
	s := reg.AddReader(3, "s", ctrl, &DetailRecorder{})

	got, ok := reg.Reader(s.ID, 3)
	require.True(t, ok)
	got.Do(func(ct *reader.Controller) {
		assert.True(t, ct.Settings().IsHarakatMode)
	})

	_, ok = reg.Reader(s.ID, 4)
	assert.False(t, ok)

	reg.RemoveReader(s.ID)
	_, ok = reg.Reader(s.ID, 3)
	assert.False(t, ok)
}

// The auto-advance timer must not mutate the engine while an HTTP request
// holds the session. The registry hands the engine a scheduler whose
// callbacks take the session lock, so an expired timer waits for Do to
// return before it runs.
func TestQuizAdvanceWaitsForSessionLock(t *testing.T) {
	reg := NewRegistry()
	s := reg.AddQuiz(1, "s", &CueRecorder{}, func(sched engine.Scheduler) *quiz.Engine {
		return quiz.New(sessionDoc(), quiz.Config{
			Scheduler:    sched,
			AdvanceDelay: time.Millisecond,
		})
	})

	s.Do(func(e *quiz.Engine) {
		q, ok := e.Current()
		require.True(t, ok)
		e.Answer(q.Options[q.CorrectAnswer])

		// The delay has long expired, but the advance cannot run while
		// we hold the lock.
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, quiz.ModeInProgress, e.Mode())
		assert.Equal(t, q.Options[q.CorrectAnswer], e.SelectedAnswer())
	})

	// Once the lock is released the deferred advance finishes the
	// single-question quiz.
	require.Eventually(t, func() bool {
		var done bool
		s.Do(func(e *quiz.Engine) { done = e.Mode() == quiz.ModeFinished })
		return done
	}, time.Second, 5*time.Millisecond)
}

func TestCueRecorderTakeClears(t *testing.T) {
	rec := &CueRecorder{}

	_, ok := rec.Take()
	assert.False(t, ok)

	rec.PlayCue(engine.CueWrong)
	rec.PlayCue(engine.CueCorrect) // last cue wins

	cue, ok := rec.Take()
	require.True(t, ok)
	assert.Equal(t, engine.CueCorrect, cue)

	_, ok = rec.Take()
	assert.False(t, ok)
}

func TestDetailRecorder(t *testing.T) {
	rec := &DetailRecorder{}

	rec.Open(engine.Detail{Title: "t", Body: "b", Direction: "rtl"})
	d, ok := rec.Take()
	require.True(t, ok)
	assert.Equal(t, "t", d.Title)

	_, ok = rec.Take()
	assert.False(t, ok)

	// Close drops a pending payload.
	rec.Open(engine.Detail{Title: "t2"})
	rec.Close()
	_, ok = rec.Take()
	assert.False(t, ok)
}
