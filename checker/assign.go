package checker

import "github.com/felangkit/felangkit/fetype"

// assignable implements the one-directional "from → to" compatibility
// used for initializations, assignments, arguments, and returns: it is
// stricter than the symmetric comparison compatibility comparisons use.
func assignable(from, to *fetype.Type) bool {
	if from.IsAbsorbing() || to.IsAbsorbing() {
		return true
	}
	if from.Equal(to) {
		return true
	}
	if from.Kind == fetype.Integer && to.Kind == fetype.Real {
		return true
	}
	if from.Kind == fetype.Character && to.Kind == fetype.String {
		return true
	}
	return false
}
