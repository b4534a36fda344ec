package projection

// SuspendToken suppresses delegate forwarding while held. Each token is
// released exactly once; forwarding resumes when no tokens are
// outstanding. Tokens are counted so two independent writers cannot clear
// each other's suppression early.
type SuspendToken struct {
	e        *Engine
	released bool
}

// SuspendForwarding suppresses delegate notifications until the returned
// token is released. The engine releases the token itself at the end of
// the next raw-change batch; callers whose write never produces a batch
// (e.g. a failed save) must call Release directly or forwarding stays off.
func (e *Engine) SuspendForwarding() *SuspendToken {
	e.suspended++
	tok := &SuspendToken{e: e}
	e.autoRelease = append(e.autoRelease, tok)
	return tok
}

// Release ends the suppression. Safe to call more than once.
func (t *SuspendToken) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.e.suspended > 0 {
		t.e.suspended--
	}
}
