package diagnostic

import "sync"

// state is the Reporter's internal state machine:
//
//	Open --collect--> Open
//	Open --capReached--> Full
//	Full --collect--> Full (ignored)
//	Open|Full --finalize--> Finalized
//	Finalized --collect--> Finalized (ignored)
//	Finalized --reset--> Open
type state int

const (
	stateOpen state = iota
	stateFull
	stateFinalized
)

// Profile configures a Reporter. The three named constructors cover the
// common cases; a literal works for anything custom.
type Profile struct {
	MaxErrorCount          int
	EnableDeduplication    bool
	EnableErrorCorrelation bool
	VerboseOutput          bool
}

// DefaultProfile is the baseline configuration: dedup on, correlation
// off, a generous error cap.
func DefaultProfile() Profile {
	return Profile{MaxErrorCount: 100, EnableDeduplication: true, EnableErrorCorrelation: false, VerboseOutput: false}
}

// StrictProfile turns on verbose formatting and error correlation with a
// large cap, for CI-grade analysis runs.
func StrictProfile() Profile {
	return Profile{MaxErrorCount: 1000, EnableDeduplication: true, EnableErrorCorrelation: true, VerboseOutput: true}
}

// FastProfile turns dedup off and caps errors aggressively, for editor
// keystroke-latency analysis.
func FastProfile() Profile {
	return Profile{MaxErrorCount: 20, EnableDeduplication: false, EnableErrorCorrelation: false, VerboseOutput: false}
}

// Result is the terminal output of a Reporter: the finalized error and
// warning lists plus whether analysis as a whole succeeded.
type Result struct {
	IsSuccessful bool
	Errors       []Diagnostic
	Warnings     []Diagnostic
}

// Reporter is a thread-safe accumulator for diagnostics. The pipeline
// collects a single invocation's syntax and type-checker diagnostics into
// the same Reporter; concurrent readers and one writer are safe via the
// internal mutex.
type Reporter struct {
	mu      sync.Mutex
	profile Profile
	state   state
	seen    map[Key]bool
	entries []Diagnostic
}

// NewReporter creates a Reporter configured by profile.
func NewReporter(profile Profile) *Reporter {
	return &Reporter{
		profile: profile,
		state:   stateOpen,
		seen:    make(map[Key]bool),
	}
}

// Collect submits a diagnostic. It is a no-op once the reporter is Full
// or Finalized. Deduplication (by (kind, position)) retains the earliest
// occurrence and drops later duplicates, preserving source order.
func (r *Reporter) Collect(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateOpen {
		return
	}

	if r.profile.EnableDeduplication {
		key := d.Key()
		if r.seen[key] {
			return
		}
		r.seen[key] = true
	}

	r.entries = append(r.entries, d)

	if r.countErrorsLocked() >= r.profile.MaxErrorCount {
		r.entries = append(r.entries, NewTooManyErrors(r.countErrorsLocked()))
		r.state = stateFull
	}
}

func (r *Reporter) countErrorsLocked() int {
	n := 0
	for _, d := range r.entries {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

// Finalize transitions the reporter to Finalized and returns the
// accumulated Result. Subsequent Collect calls become no-ops.
func (r *Reporter) Finalize(correlate func(add func(Diagnostic))) Result {
	r.mu.Lock()
	if r.state != stateFinalized && r.profile.EnableErrorCorrelation && correlate != nil {
		correlate(func(d Diagnostic) {
			// unusedFunction is excluded from correlation: only
			// unusedVariable warnings are ever emitted here, even with
			// correlation on.
			if d.Kind == UnusedFunction {
				return
			}
			key := d.Key()
			if r.profile.EnableDeduplication && r.seen[key] {
				return
			}
			r.seen[key] = true
			r.entries = append(r.entries, d)
		})
	}
	r.state = stateFinalized

	var errs, warns []Diagnostic
	for _, d := range r.entries {
		if d.Severity == Error {
			errs = append(errs, d)
		} else {
			warns = append(warns, d)
		}
	}
	r.mu.Unlock()

	return Result{
		IsSuccessful: len(errs) == 0,
		Errors:       errs,
		Warnings:     warns,
	}
}

// Reset clears all accumulated state and returns the reporter to Open.
func (r *Reporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = stateOpen
	r.seen = make(map[Key]bool)
	r.entries = nil
}

// Profile returns the reporter's configuration.
func (r *Reporter) Profile() Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}
