package storyseq

import "sync"

// Session owns the canonical sequence value for one editing session. All
// mutations funnel through Apply, which hands the updater the latest
// snapshot - never a value captured before an async gap - so bulk merges
// racing user edits always commit against fresh state.
type Session struct {
	mu      sync.Mutex
	seq     *Sequence
	version uint64
	busy    bool
	linked  bool
}

// NewSession creates a session owning the given sequence. A nil sequence
// starts from the empty default.
func NewSession(seq *Sequence) *Session {
	if seq == nil {
		seq = NewSequence()
	}
	return &Session{seq: seq}
}

// Snapshot returns a deep copy of the current value.
func (s *Session) Snapshot() *Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Clone()
}

// Version returns a counter incremented on every committed update.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Apply commits an update computed against the latest snapshot. The
// updater receives a private copy and returns the full replacement value;
// returning nil aborts the commit. The swap is atomic: a failed updater
// leaves the previous value untouched.
func (s *Session) Apply(update func(*Sequence) *Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := update(s.seq.Clone())
	if next == nil {
		return
	}
	s.seq = next
	s.version++
}

// SetBusy flags an in-flight transform or generation. While busy, link
// reconciliation must not overwrite local state.
func (s *Session) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

// Busy reports whether a transform or generation is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// SetLinked marks the session as mirroring an upstream source. While
// linked, structural edits are disabled; only selection, collapse state
// and scene-context edits remain local.
func (s *Session) SetLinked(linked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linked = linked
}

// Linked reports whether the session mirrors an upstream source.
func (s *Session) Linked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linked
}

// Reconcile normalizes an upstream payload and commits it only when it
// differs from the current mirror, preserving local per-frame collapse
// state. It is a no-op while a transform is in flight or when the payload
// shape is unrecognized.
func (s *Session) Reconcile(payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}

	ingest, err := ParsePayload(payload, s.seq.SourcePrompts)
	if err != nil {
		// Unknown shapes are deliberately ignored so partially
		// compatible upstream producers don't break the editor.
		return false
	}

	next := s.seq.Clone()
	next.SourcePrompts = ingest.Prompts
	if ingest.SceneContexts != nil {
		next.SceneContexts = ingest.SceneContexts
	}
	if ingest.UsedCharacters != nil {
		// Locally registered characters survive the mirror, renumbered
		// past whatever upstream now claims.
		next.UsedCharacters = MergeCharacters(ingest.UsedCharacters, next.UsedCharacters)
	}
	if ingest.StyleOverride != "" {
		next.StyleOverride = ingest.StyleOverride
	}

	if Equal(s.seq, next) {
		return false
	}
	s.seq = next
	s.version++
	return true
}
