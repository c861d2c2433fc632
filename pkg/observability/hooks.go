// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of the automaton algorithms
// without adding hard dependencies on specific observability backends.
// Consumers register hooks at startup to receive events about intersections,
// determinization and minimization.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The automaton and transducer packages call the registered hooks; they never
// log on their own. [NewLogHooks] adapts the events to a charmbracelet logger.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
//	    hooks := observability.NewLogHooks(logger)
//	    observability.SetIntersectionHooks(hooks)
//	    observability.SetAutomatonHooks(hooks)
//	    // ... build and intersect automata
//	}
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Intersection Hooks
// =============================================================================

// IntersectStats summarizes one intersection run.
type IntersectStats struct {
	// FastPath names the shortcut taken ("left-singleton", "right-singleton",
	// "same-operand", "acceptor-rejected"), or is empty for a full product.
	FastPath string
	// Pairs is the number of distinct product state pairs visited.
	Pairs int
	// EpsilonEdges is the number of deferred epsilon edges between pairs.
	EpsilonEdges int
	// ClosureSteps is the number of epsilon edges materialized by the
	// closure fixpoint, counting re-materializations.
	ClosureSteps int
	// ResultStates is the number of states left after dead-state pruning.
	ResultStates int
}

// IntersectionHooks receives events from product constructions.
// kind is "automaton" for a plain intersection and "transducer" when the
// left operand is a transducer.
type IntersectionHooks interface {
	OnIntersectStart(kind string, leftStates, rightStates int)
	OnIntersectComplete(kind string, stats IntersectStats, duration time.Duration)
}

// =============================================================================
// Automaton Hooks
// =============================================================================

// AutomatonHooks receives events from whole-automaton rewrites.
type AutomatonHooks interface {
	// OnDeterminize records a subset construction.
	OnDeterminize(before, after int, duration time.Duration)

	// OnMinimize records a minimization with the named algorithm.
	OnMinimize(algorithm string, before, after int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopIntersectionHooks is a no-op implementation of IntersectionHooks.
type NoopIntersectionHooks struct{}

func (NoopIntersectionHooks) OnIntersectStart(string, int, int)                         {}
func (NoopIntersectionHooks) OnIntersectComplete(string, IntersectStats, time.Duration) {}

// NoopAutomatonHooks is a no-op implementation of AutomatonHooks.
type NoopAutomatonHooks struct{}

func (NoopAutomatonHooks) OnDeterminize(int, int, time.Duration)      {}
func (NoopAutomatonHooks) OnMinimize(string, int, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	intersectionHooks IntersectionHooks = NoopIntersectionHooks{}
	automatonHooks    AutomatonHooks    = NoopAutomatonHooks{}
	hooksMu           sync.RWMutex
)

// SetIntersectionHooks registers custom intersection hooks.
// This should be called once at application startup before any intersection.
func SetIntersectionHooks(h IntersectionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		intersectionHooks = h
	}
}

// SetAutomatonHooks registers custom automaton hooks.
func SetAutomatonHooks(h AutomatonHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		automatonHooks = h
	}
}

// Intersection returns the registered intersection hooks.
func Intersection() IntersectionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return intersectionHooks
}

// Automaton returns the registered automaton hooks.
func Automaton() AutomatonHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return automatonHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	intersectionHooks = NoopIntersectionHooks{}
	automatonHooks = NoopAutomatonHooks{}
}
