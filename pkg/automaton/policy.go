package automaton

import (
	"fmt"
	"sync"
)

// Minimization selects the algorithm used by [Automaton.Minimize].
type Minimization int

const (
	// MinimizeMoore refines a partition of the determinized states until no
	// block can be split (Moore's algorithm).
	MinimizeMoore Minimization = iota
	// MinimizeBrzozowski reverses and determinizes twice.
	MinimizeBrzozowski
)

func (m Minimization) String() string {
	switch m {
	case MinimizeMoore:
		return "moore"
	case MinimizeBrzozowski:
		return "brzozowski"
	default:
		return fmt.Sprintf("Minimization(%d)", int(m))
	}
}

// ParseMinimization maps a configuration name to a Minimization.
func ParseMinimization(name string) (Minimization, bool) {
	switch name {
	case "moore", "":
		return MinimizeMoore, true
	case "brzozowski":
		return MinimizeBrzozowski, true
	default:
		return 0, false
	}
}

var (
	policyMu       sync.RWMutex
	minimizeAlways bool
	minimization   = MinimizeMoore
	allowMutate    bool
)

// SetMinimizeAlways makes every construction that calls
// [Automaton.CheckMinimizeAlways] minimize its result.
func SetMinimizeAlways(v bool) {
	policyMu.Lock()
	defer policyMu.Unlock()
	minimizeAlways = v
}

// MinimizeAlways reports the minimize-always policy.
func MinimizeAlways() bool {
	policyMu.RLock()
	defer policyMu.RUnlock()
	return minimizeAlways
}

// SetMinimization selects the minimization algorithm.
func SetMinimization(m Minimization) {
	policyMu.Lock()
	defer policyMu.Unlock()
	minimization = m
}

// CurrentMinimization returns the selected minimization algorithm.
func CurrentMinimization() Minimization {
	policyMu.RLock()
	defer policyMu.RUnlock()
	return minimization
}

// SetAllowMutate lets CloneIfRequired return its receiver instead of a copy.
func SetAllowMutate(v bool) {
	policyMu.Lock()
	defer policyMu.Unlock()
	allowMutate = v
}

// AllowMutate reports the allow-mutate policy.
func AllowMutate() bool {
	policyMu.RLock()
	defer policyMu.RUnlock()
	return allowMutate
}

// ResetPolicies restores the default policies.
// This is primarily useful for testing.
func ResetPolicies() {
	policyMu.Lock()
	defer policyMu.Unlock()
	minimizeAlways = false
	minimization = MinimizeMoore
	allowMutate = false
}
