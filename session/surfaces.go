package session

import "sorogan/engine"

// CueRecorder captures the last sound cue an engine emitted so the HTTP
// layer can hand it to the client, which owns actual playback. Recording
// never fails, which satisfies the best-effort cue contract.
type CueRecorder struct {
	last engine.Cue
	set  bool
}

func (r *CueRecorder) PlayCue(kind engine.Cue) {
	r.last = kind
	r.set = true
}

// Take returns the pending cue, if any, and clears it.
func (r *CueRecorder) Take() (engine.Cue, bool) {
	if !r.set {
		return "", false
	}
	r.set = false
	return r.last, true
}

// DetailRecorder captures detail-surface open requests for the response
// payload.
type DetailRecorder struct {
	detail *engine.Detail
}

func (r *DetailRecorder) Open(d engine.Detail) { r.detail = &d }
func (r *DetailRecorder) Close()               { r.detail = nil }

// Take returns the pending detail payload, if any, and clears it.
func (r *DetailRecorder) Take() (engine.Detail, bool) {
	if r.detail == nil {
		return engine.Detail{}, false
	}
	d := *r.detail
	r.detail = nil
	return d, true
}
