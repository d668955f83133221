// Package session keeps live reading, drill and quiz sessions in memory,
// one map entry per started session. All engine access goes through the
// session lock, keeping the single-threaded engine model intact under
// concurrent HTTP requests.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sorogan/engine"
	"sorogan/engine/drill"
	"sorogan/engine/quiz"
	"sorogan/engine/reader"
)

// lockedScheduler runs deferred engine callbacks under the owning
// session's mutex, so timer-driven transitions are serialized with HTTP
// access exactly like direct calls through Do.
type lockedScheduler struct {
	mu   *sync.Mutex
	base engine.Scheduler
}

func (s lockedScheduler) Schedule(d time.Duration, fn func()) engine.CancelFunc {
	return s.base.Schedule(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
}

// DrillSession is one live tasykil drill.
type DrillSession struct {
	ID       uuid.UUID
	UserID   uint
	LessonID string
	Cues     *CueRecorder
	Detail   *DetailRecorder

	mu     sync.Mutex
	engine *drill.Engine
}

// Do runs fn with exclusive access to the engine.
func (s *DrillSession) Do(fn func(*drill.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// QuizSession is one live quiz.
type QuizSession struct {
	ID       uuid.UUID
	UserID   uint
	LessonID string
	Cues     *CueRecorder

	mu     sync.Mutex
	engine *quiz.Engine
}

// Do runs fn with exclusive access to the engine.
func (s *QuizSession) Do(fn func(*quiz.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// ReaderSession is one open lesson reading surface.
type ReaderSession struct {
	ID       uuid.UUID
	UserID   uint
	LessonID string
	Detail   *DetailRecorder

	mu   sync.Mutex
	ctrl *reader.Controller
}

// Do runs fn with exclusive access to the controller. The session struct
// itself may be mutated inside fn; it is covered by the same lock.
func (s *ReaderSession) Do(fn func(*reader.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctrl)
}

// Registry owns all live sessions.
type Registry struct {
	mu      sync.RWMutex
	drills  map[uuid.UUID]*DrillSession
	quizzes map[uuid.UUID]*QuizSession
	readers map[uuid.UUID]*ReaderSession
}

func NewRegistry() *Registry {
	return &Registry{
		drills:  make(map[uuid.UUID]*DrillSession),
		quizzes: make(map[uuid.UUID]*QuizSession),
		readers: make(map[uuid.UUID]*ReaderSession),
	}
}

// AddDrill registers a new drill session. build receives the scheduler the
// engine must use for its timers; scheduled callbacks run under the
// session lock.
func (r *Registry) AddDrill(userID uint, lessonID string, cues *CueRecorder, detail *DetailRecorder, build func(engine.Scheduler) *drill.Engine) *DrillSession {
	s := &DrillSession{ID: uuid.New(), UserID: userID, LessonID: lessonID, Cues: cues, Detail: detail}
	s.engine = build(lockedScheduler{mu: &s.mu, base: engine.TimerScheduler{}})
	r.mu.Lock()
	r.drills[s.ID] = s
	r.mu.Unlock()
	return s
}

// Drill looks up a drill session owned by userID.
func (r *Registry) Drill(id uuid.UUID, userID uint) (*DrillSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.drills[id]
	if !ok || s.UserID != userID {
		return nil, false
	}
	return s, true
}

// RemoveDrill discards a drill session.
func (r *Registry) RemoveDrill(id uuid.UUID) {
	r.mu.Lock()
	delete(r.drills, id)
	r.mu.Unlock()
}

// AddQuiz registers a new quiz session. build receives the scheduler the
// engine must use for its auto-advance timer; scheduled callbacks run
// under the session lock.
func (r *Registry) AddQuiz(userID uint, lessonID string, cues *CueRecorder, build func(engine.Scheduler) *quiz.Engine) *QuizSession {
	s := &QuizSession{ID: uuid.New(), UserID: userID, LessonID: lessonID, Cues: cues}
	s.engine = build(lockedScheduler{mu: &s.mu, base: engine.TimerScheduler{}})
	r.mu.Lock()
	r.quizzes[s.ID] = s
	r.mu.Unlock()
	return s
}

// Quiz looks up a quiz session owned by userID.
func (r *Registry) Quiz(id uuid.UUID, userID uint) (*QuizSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.quizzes[id]
	if !ok || s.UserID != userID {
		return nil, false
	}
	return s, true
}

// RemoveQuiz discards a quiz session.
func (r *Registry) RemoveQuiz(id uuid.UUID) {
	r.mu.Lock()
	delete(r.quizzes, id)
	r.mu.Unlock()
}

// AddReader registers a new reading session.
func (r *Registry) AddReader(userID uint, lessonID string, ctrl *reader.Controller, detail *DetailRecorder) *ReaderSession {
	s := &ReaderSession{ID: uuid.New(), UserID: userID, LessonID: lessonID, Detail: detail, ctrl: ctrl}
	r.mu.Lock()
	r.readers[s.ID] = s
	r.mu.Unlock()
	return s
}

// Reader looks up a reading session owned by userID.
func (r *Registry) Reader(id uuid.UUID, userID uint) (*ReaderSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.readers[id]
	if !ok || s.UserID != userID {
		return nil, false
	}
	return s, true
}

// RemoveReader discards a reading session.
func (r *Registry) RemoveReader(id uuid.UUID) {
	r.mu.Lock()
	delete(r.readers, id)
	r.mu.Unlock()
}
