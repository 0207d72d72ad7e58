package watch

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures Stop leaves no event loop or fsnotify reader behind
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
