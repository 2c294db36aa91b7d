// Package views models the boundary to the rendering/caching layer: after a
// successful write the application signals which logical views went stale.
// The signal is fire-and-forget; the server never waits on it.
package views

import "go.uber.org/zap"

// Logical view names the submission actions invalidate.
const (
	PublicMap     = "map"
	SuggestPlace  = "suggest-location"
	PublicEvents  = "events"
	SuggestEvent  = "suggest"
	MemberProfile = "profile"
)

type Invalidator interface {
	Invalidate(views ...string)
}

// LogInvalidator is the in-process implementation: it records the signal in
// the log so an external cache layer can be attached later without touching
// the call sites.
type LogInvalidator struct {
	Logger *zap.SugaredLogger
}

func (l *LogInvalidator) Invalidate(views ...string) {
	if l.Logger != nil {
		l.Logger.Infow("views invalidated", "views", views)
	}
}
