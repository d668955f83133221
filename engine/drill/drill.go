// Package drill implements tasykil mode: every word carrying distractor
// vocalizations becomes one fill-in-the-diacritics question, asked in
// document order through an anchored popover.
package drill

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"sorogan/engine"
	"sorogan/lesson"
	"sorogan/shuffle"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusReviewing  Status = "reviewing"
	StatusExited     Status = "exited"
)

// ResultStatus records how one word was answered.
type ResultStatus string

const (
	ResultCorrect ResultStatus = "correct"
	ResultWrong   ResultStatus = "wrong"
)

// Result is the answer recorded for one interactive word. Once present it
// is never cleared except by a full restart.
type Result struct {
	Status         ResultStatus `json:"status"`
	SelectedOption string       `json:"selectedOption"`
}

// OptionState drives how one popover option renders.
type OptionState string

const (
	// OptionAnswerable means the option can still be picked.
	OptionAnswerable OptionState = "answerable"
	// OptionCorrect marks the correct form on an answered word.
	OptionCorrect OptionState = "correct"
	// OptionWrongPick marks the user's original wrong pick.
	OptionWrongPick OptionState = "wrong-pick"
	// OptionDimmed is every other option on an answered word.
	OptionDimmed OptionState = "dimmed"
)

// OptionView is one popover row.
type OptionView struct {
	Text  string      `json:"text"`
	State OptionState `json:"state"`
}

// DefaultSettleDelay is how long the engine waits for the popover to render
// before measuring it for auto-scroll.
const DefaultSettleDelay = 50 * time.Millisecond

// Config carries the injected collaborators. Zero values fall back to
// no-op implementations, keeping the engine constructible in tests.
type Config struct {
	Rand        *rand.Rand
	Scheduler   engine.Scheduler
	Cues        engine.CuePlayer
	Detail      engine.DetailSurface
	Layout      engine.LayoutQuery
	Scroller    engine.Scroller
	Logger      *zap.Logger
	SettleDelay time.Duration
}

// Engine is one tasykil drill session over a loaded lesson. Not safe for
// concurrent use; the session registry serializes access.
type Engine struct {
	doc   *lesson.Lesson
	words []lesson.InteractiveWord

	results        map[lesson.Address]Result
	activeIndex    int
	popoverOpen    bool
	popoverTarget  lesson.Address
	currentOptions []string
	reviewing      bool
	exitPending    bool
	exited         bool
	started        bool

	cancelSettle engine.CancelFunc

	rng         *rand.Rand
	sched       engine.Scheduler
	cues        engine.CuePlayer
	detail      engine.DetailSurface
	layout      engine.LayoutQuery
	scroller    engine.Scroller
	log         *zap.Logger
	settleDelay time.Duration
}

// New builds a session for doc. The interactive-word list is computed once
// and never reordered; shuffling applies to answer options only.
func New(doc *lesson.Lesson, cfg Config) *Engine {
	e := &Engine{
		doc:         doc,
		words:       doc.InteractiveWords(),
		results:     make(map[lesson.Address]Result),
		rng:         cfg.Rand,
		sched:       cfg.Scheduler,
		cues:        cfg.Cues,
		detail:      cfg.Detail,
		layout:      cfg.Layout,
		scroller:    cfg.Scroller,
		log:         cfg.Logger,
		settleDelay: cfg.SettleDelay,
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
	if e.detail == nil {
		e.detail = engine.NopDetailSurface{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.settleDelay <= 0 {
		e.settleDelay = DefaultSettleDelay
	}
	return e
}

// Start opens the first question's popover automatically. A lesson with no
// interactive words starts with no drill affordance and can never finish.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true
	if len(e.words) > 0 {
		e.openPopover(e.words[0].Address)
	}
}

// Status reports the lifecycle state.
func (e *Engine) Status() Status {
	switch {
	case e.exited:
		return StatusExited
	case !e.started:
		return StatusNotStarted
	case e.reviewing:
		return StatusReviewing
	case e.IsFinished():
		return StatusFinished
	default:
		return StatusInProgress
	}
}

// Totals.

func (e *Engine) TotalInteractive() int { return len(e.words) }
func (e *Engine) AnsweredCount() int    { return len(e.results) }

func (e *Engine) CorrectCount() int {
	n := 0
	for _, r := range e.results {
		if r.Status == ResultCorrect {
			n++
		}
	}
	return n
}

func (e *Engine) WrongCount() int { return e.AnsweredCount() - e.CorrectCount() }

// Accuracy is round(correct/total*100); zero when there is nothing to drill.
func (e *Engine) Accuracy() int {
	if len(e.words) == 0 {
		return 0
	}
	return int(math.Round(float64(e.CorrectCount()) / float64(len(e.words)) * 100))
}

// Progress is round(answered/total*100).
func (e *Engine) Progress() int {
	if len(e.words) == 0 {
		return 0
	}
	return int(math.Round(float64(e.AnsweredCount()) / float64(len(e.words)) * 100))
}

// IsFinished requires at least one interactive word; an empty drill never
// reports finished.
func (e *Engine) IsFinished() bool {
	return len(e.words) > 0 && len(e.results) == len(e.words)
}

// Words returns the question list in document order.
func (e *Engine) Words() []lesson.InteractiveWord {
	out := make([]lesson.InteractiveWord, len(e.words))
	copy(out, e.words)
	return out
}

// ActiveWord returns the current question, or false when the list is empty
// or exhausted.
func (e *Engine) ActiveWord() (lesson.InteractiveWord, bool) {
	if e.activeIndex < 0 || e.activeIndex >= len(e.words) {
		return lesson.InteractiveWord{}, false
	}
	return e.words[e.activeIndex], true
}

// Results returns a copy of the per-word answers.
func (e *Engine) Results() map[lesson.Address]Result {
	out := make(map[lesson.Address]Result, len(e.results))
	for k, v := range e.results {
		out[k] = v
	}
	return out
}

// Result returns the recorded answer for addr, if any.
func (e *Engine) Result(addr lesson.Address) (Result, bool) {
	r, ok := e.results[addr]
	return r, ok
}

// PopoverTarget returns the word the popover is anchored to, or false when
// it is closed.
func (e *Engine) PopoverTarget() (lesson.Address, bool) {
	if !e.popoverOpen {
		return lesson.Address{}, false
	}
	return e.popoverTarget, true
}

// PopoverOptions returns the current option rows. On an answered word the
// options render revealed: correct form highlighted, the original wrong
// pick marked, the rest dimmed; none are answerable.
func (e *Engine) PopoverOptions() []OptionView {
	if !e.popoverOpen {
		return nil
	}
	w, ok := e.doc.Word(e.popoverTarget)
	if !ok {
		return nil
	}
	result, answered := e.results[e.popoverTarget]
	out := make([]OptionView, 0, len(e.currentOptions))
	for _, opt := range e.currentOptions {
		state := OptionAnswerable
		if answered {
			switch {
			case opt == w.Berharakat:
				state = OptionCorrect
			case result.Status == ResultWrong && opt == result.SelectedOption:
				state = OptionWrongPick
			default:
				state = OptionDimmed
			}
		}
		out = append(out, OptionView{Text: opt, State: state})
	}
	return out
}

// ClickWord opens or toggles the popover on an interactive word. Only the
// active question and already-answered words respond; everything else,
// including stale addresses, is a no-op.
func (e *Engine) ClickWord(addr lesson.Address) {
	if e.exited {
		return
	}
	w, ok := e.doc.Word(addr)
	if !ok {
		e.log.Debug("click on stale address", zap.String("address", addr.String()))
		return
	}
	if !w.Interactive() {
		return
	}
	_, answered := e.results[addr]
	active, hasActive := e.ActiveWord()
	if !answered && !(hasActive && active.Address == addr) {
		return
	}
	if e.popoverOpen && e.popoverTarget == addr {
		e.closePopover()
		return
	}
	e.openPopover(addr)
}

// DoubleClickWord opens the I'rab detail surface. For interactive words the
// surface stays closed until the word has been answered; non-interactive
// words are never gated. Punctuation is a no-op.
func (e *Engine) DoubleClickWord(addr lesson.Address) {
	if e.exited {
		return
	}
	w, ok := e.doc.Word(addr)
	if !ok {
		e.log.Debug("double-click on stale address", zap.String("address", addr.String()))
		return
	}
	if w.Punctuation() {
		return
	}
	if w.Interactive() {
		if _, answered := e.results[addr]; !answered {
			return
		}
	}
	if w.Irab == "" {
		return
	}
	e.detail.Open(engine.Detail{
		Title:     w.Berharakat,
		Body:      w.Irab,
		Direction: "rtl",
		Link:      w.Link,
	})
}

// SelectOption answers the word the popover is targeting. Correctness is an
// exact match against the authored vocalized form. Answering the active
// question advances the pointer (or ends the session after the last word);
// answering from review-by-click only closes the popover.
func (e *Engine) SelectOption(option string) {
	if e.exited || !e.popoverOpen {
		return
	}
	target := e.popoverTarget
	if _, answered := e.results[target]; answered {
		return
	}
	w, ok := e.doc.Word(target)
	if !ok {
		return
	}

	result := Result{Status: ResultWrong, SelectedOption: option}
	if option == w.Berharakat {
		result.Status = ResultCorrect
	}
	e.results[target] = result

	if result.Status == ResultCorrect {
		e.cues.PlayCue(engine.CueCorrect)
	} else {
		e.cues.PlayCue(engine.CueWrong)
	}

	active, hasActive := e.ActiveWord()
	if hasActive && target == active.Address {
		if e.activeIndex < len(e.words)-1 {
			e.activeIndex++
			e.openPopover(e.words[e.activeIndex].Address)
		} else {
			e.closePopover()
		}
		return
	}
	e.closePopover()
}

// DisplayText resolves the shown form of the word at addr. Interactive
// words show their drill state; the rest follow the ambient harakat
// setting.
func (e *Engine) DisplayText(addr lesson.Address, harakatVisible bool) string {
	w, ok := e.doc.Word(addr)
	if !ok {
		return ""
	}
	if !w.Interactive() {
		if harakatVisible {
			return w.Berharakat
		}
		return w.Gundul
	}
	result, answered := e.results[addr]
	switch {
	case !answered:
		return w.Gundul
	case result.Status == ResultWrong:
		return result.SelectedOption
	default:
		return w.Berharakat
	}
}

// Review enters answer review; the popover closes and words are revisited
// by clicking them.
func (e *Engine) Review() {
	if !e.IsFinished() || e.exited {
		return
	}
	e.reviewing = true
	e.closePopover()
}

// BackToSummary returns from review to the score summary.
func (e *Engine) BackToSummary() {
	e.reviewing = false
}

// Restart discards every answer, resets the pointer and reopens the first
// question with a freshly shuffled option set.
func (e *Engine) Restart() {
	if e.exited {
		return
	}
	e.results = make(map[lesson.Address]Result)
	e.activeIndex = 0
	e.reviewing = false
	e.closePopover()
	if len(e.words) > 0 {
		e.openPopover(e.words[0].Address)
	}
}

// RequestExit asks for confirmation before the destructive exit.
func (e *Engine) RequestExit() {
	if e.exited {
		return
	}
	e.exitPending = true
}

// CancelExit abandons the exit request, leaving all session state intact.
func (e *Engine) CancelExit() {
	e.exitPending = false
}

// ConfirmExit discards the session. The host flips tasykil mode off in
// settings and drops the registry entry.
func (e *Engine) ConfirmExit() {
	if !e.exitPending {
		return
	}
	e.exitPending = false
	e.exited = true
	e.closePopover()
}

// ExitPending reports whether a confirmation is outstanding.
func (e *Engine) ExitPending() bool { return e.exitPending }

func (e *Engine) openPopover(addr lesson.Address) {
	w, ok := e.doc.Word(addr)
	if !ok {
		return
	}
	e.cancelSettleTimer()
	e.popoverTarget = addr
	e.popoverOpen = true
	// Fresh shuffle on every target change, review included.
	all := append([]string{w.Berharakat}, w.TasykilOptions...)
	e.currentOptions = shuffle.Strings(e.rng, all)
	e.scheduleSettle(addr)
}

func (e *Engine) closePopover() {
	e.cancelSettleTimer()
	e.popoverOpen = false
	e.currentOptions = nil
}

func (e *Engine) cancelSettleTimer() {
	if e.cancelSettle != nil {
		e.cancelSettle()
		e.cancelSettle = nil
	}
}

// scheduleSettle waits for the popover to render, then measures it and
// scrolls the container if the popover would be clipped. The callback
// guards against firing for a popover that moved or closed in the
// meantime.
func (e *Engine) scheduleSettle(addr lesson.Address) {
	if e.layout == nil || e.scroller == nil {
		return
	}
	e.cancelSettle = e.sched.Schedule(e.settleDelay, func() {
		if !e.popoverOpen || e.popoverTarget != addr {
			return
		}
		popover, ok := e.layout.AnchorBox(addr.String())
		if !ok {
			return
		}
		container, ok := e.layout.ContainerBox()
		if !ok {
			return
		}
		if delta := engine.ScrollDelta(popover, container); delta != 0 {
			e.scroller.ScrollBy(delta)
		}
	})
}
