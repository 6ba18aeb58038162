package diagnostic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felangkit/felangkit/token"
)

func TestReporterDeduplicatesByKindAndPosition(t *testing.T) {
	r := NewReporter(DefaultProfile())
	pos := token.Position{Line: 1, Column: 1}
	r.Collect(NewUndeclaredVariable(pos, "x"))
	r.Collect(NewUndeclaredVariable(pos, "x"))
	r.Collect(NewUndeclaredVariable(token.Position{Line: 2, Column: 1}, "x"))

	result := r.Finalize(nil)
	require.Len(t, result.Errors, 2)
	require.False(t, result.IsSuccessful)
}

func TestReporterDeduplicationDisabled(t *testing.T) {
	r := NewReporter(Profile{MaxErrorCount: 100, EnableDeduplication: false})
	pos := token.Position{Line: 1, Column: 1}
	r.Collect(NewUndeclaredVariable(pos, "x"))
	r.Collect(NewUndeclaredVariable(pos, "x"))

	result := r.Finalize(nil)
	require.Len(t, result.Errors, 2)
}

func TestReporterCapReachedAppendsTooManyErrors(t *testing.T) {
	r := NewReporter(Profile{MaxErrorCount: 2, EnableDeduplication: false})
	for i := 0; i < 5; i++ {
		r.Collect(NewUndeclaredVariable(token.Position{Line: i + 1, Column: 1}, "x"))
	}
	result := r.Finalize(nil)
	require.LessOrEqual(t, len(result.Errors), 3, "cap(2) + 1 synthetic tooManyErrors")

	found := false
	for _, e := range result.Errors {
		if e.Kind == TooManyErrors {
			found = true
		}
	}
	require.True(t, found)
}

func TestReporterFinalizeIsIdempotent(t *testing.T) {
	r := NewReporter(DefaultProfile())
	r.Collect(NewBreakOutsideLoop(token.Position{Line: 1, Column: 1}))
	first := r.Finalize(nil)

	r.Collect(NewBreakOutsideLoop(token.Position{Line: 2, Column: 1}))
	second := r.Finalize(nil)

	require.Equal(t, first, second, "collect after finalize is a no-op")
}

func TestReporterReset(t *testing.T) {
	r := NewReporter(DefaultProfile())
	r.Collect(NewBreakOutsideLoop(token.Position{Line: 1, Column: 1}))
	r.Finalize(nil)

	r.Reset()
	r.Collect(NewBreakOutsideLoop(token.Position{Line: 1, Column: 1}))
	result := r.Finalize(nil)
	require.Len(t, result.Errors, 1)
}

func TestReporterWarningsDoNotAffectSuccess(t *testing.T) {
	r := NewReporter(DefaultProfile())
	r.Collect(NewVariableNotInitialized(token.Position{Line: 1, Column: 1}, "x"))
	result := r.Finalize(nil)
	require.True(t, result.IsSuccessful)
	require.Len(t, result.Warnings, 1)
	require.Empty(t, result.Errors)
}

func TestReporterCorrelationExcludesUnusedFunction(t *testing.T) {
	profile := DefaultProfile()
	profile.EnableErrorCorrelation = true
	r := NewReporter(profile)

	result := r.Finalize(func(add func(Diagnostic)) {
		add(NewUnusedVariable(token.Position{Line: 1, Column: 1}, "x"))
		add(NewUnusedFunction(token.Position{Line: 2, Column: 1}, "f"))
	})

	require.Len(t, result.Warnings, 1)
	require.Equal(t, UnusedVariable, result.Warnings[0].Kind)
}

func TestReporterCorrelationOffSkipsCallback(t *testing.T) {
	r := NewReporter(DefaultProfile()) // correlation off by default
	called := false
	r.Finalize(func(add func(Diagnostic)) {
		called = true
	})
	require.False(t, called)
}

func TestProfiles(t *testing.T) {
	d := DefaultProfile()
	require.True(t, d.EnableDeduplication)
	require.False(t, d.EnableErrorCorrelation)

	s := StrictProfile()
	require.True(t, s.EnableErrorCorrelation)
	require.True(t, s.VerboseOutput)

	f := FastProfile()
	require.False(t, f.EnableDeduplication)
}

func TestReporterConcurrentCollect(t *testing.T) {
	r := NewReporter(Profile{MaxErrorCount: 1000, EnableDeduplication: true})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Collect(NewUndeclaredVariable(token.Position{Line: i, Column: 1}, "x"))
		}(i)
	}
	wg.Wait()
	result := r.Finalize(nil)
	require.Len(t, result.Errors, 50)
}
