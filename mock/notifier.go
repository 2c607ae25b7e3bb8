package mock

import "github.com/storyseq/storyseq"

// Compile-time interface verification.
var _ storyseq.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of storyseq.Notifier.
type Notifier struct {
	NotifyFn func(message string, severity storyseq.Severity)
}

func (n *Notifier) Notify(message string, severity storyseq.Severity) {
	n.NotifyFn(message, severity)
}
