package observability

import (
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements IntersectionHooks and AutomatonHooks by writing
// structured debug lines to a charmbracelet logger.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ IntersectionHooks = (*LogHooks)(nil)
	_ AutomatonHooks    = (*LogHooks)(nil)
)

// NewLogHooks returns hooks that log to l. A nil logger falls back to
// log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnIntersectStart(kind string, leftStates, rightStates int) {
	h.logger.Debug("intersect start", "kind", kind, "left", leftStates, "right", rightStates)
}

func (h *LogHooks) OnIntersectComplete(kind string, stats IntersectStats, duration time.Duration) {
	if stats.FastPath != "" {
		h.logger.Debug("intersect fast path", "kind", kind, "path", stats.FastPath, "took", duration)
		return
	}
	h.logger.Debug("intersect done",
		"kind", kind,
		"pairs", stats.Pairs,
		"epsilon", stats.EpsilonEdges,
		"closure", stats.ClosureSteps,
		"states", stats.ResultStates,
		"took", duration.Round(time.Microsecond),
	)
}

func (h *LogHooks) OnDeterminize(before, after int, duration time.Duration) {
	h.logger.Debug("determinize", "before", before, "after", after, "took", duration.Round(time.Microsecond))
}

func (h *LogHooks) OnMinimize(algorithm string, before, after int, duration time.Duration) {
	h.logger.Debug("minimize", "algorithm", algorithm, "before", before, "after", after, "took", duration.Round(time.Microsecond))
}
