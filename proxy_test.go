// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/quick"

	"code.hybscloud.com/pipes"
)

func TestPureTerminates(t *testing.T) {
	r, err := pipes.Run(context.Background(), pipes.Pure[pipes.None, pipes.None, pipes.None, pipes.None](42))
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if r != 42 {
		t.Fatalf("got %d, want 42", r)
	}
}

func TestLiftRunsComputation(t *testing.T) {
	calls := 0
	e := pipes.Lift[pipes.None, pipes.None, pipes.None, pipes.None](func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	r, err := pipes.Run(context.Background(), e)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if r != 7 {
		t.Fatalf("got %d, want 7", r)
	}
	if calls != 1 {
		t.Fatalf("calls got %d, want 1", calls)
	}
}

func TestLiftObservesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	e := pipes.Lift[pipes.None, pipes.None, pipes.None, pipes.None](func(context.Context) (int, error) {
		called = true
		return 0, nil
	})
	_, err := pipes.Run(ctx, e)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if called {
		t.Fatal("computation ran under a cancelled context")
	}
}

func TestBindSequences(t *testing.T) {
	e := pipes.Bind(
		pipes.Lift[pipes.None, pipes.None, pipes.None, pipes.None](func(context.Context) (int, error) {
			return 20, nil
		}),
		func(n int) pipes.Effect[int] {
			return pipes.Pure[pipes.None, pipes.None, pipes.None, pipes.None](n + 1)
		},
	)
	r, err := pipes.Run(context.Background(), e)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if r != 21 {
		t.Fatalf("got %d, want 21", r)
	}
}

func TestBindShortCircuitsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	continued := false
	e := pipes.Bind(
		pipes.Lift[pipes.None, pipes.None, pipes.None, pipes.None](func(context.Context) (int, error) {
			return 0, boom
		}),
		func(int) pipes.Effect[int] {
			continued = true
			return pipes.Pure[pipes.None, pipes.None, pipes.None, pipes.None](0)
		},
	)
	_, err := pipes.Run(context.Background(), e)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
	if continued {
		t.Fatal("bind continuation ran after a failed step")
	}
}

// TestPropertyFunctorIdentity proves Map(id) does not change observable
// producer behavior for arbitrary payloads.
func TestPropertyFunctorIdentity(t *testing.T) {
	property := func(payload []int) bool {
		mapped := pipes.Map(pipes.Each(payload...), func(r struct{}) struct{} { return r })
		return reflect.DeepEqual(collect(t, mapped), collect(t, pipes.Each(payload...)))
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyFunctorComposition proves Map(f)∘Map(g) ≡ Map(f∘g) on the
// terminal result.
func TestPropertyFunctorComposition(t *testing.T) {
	f := func(n int) int { return n * 3 }
	g := func(n int) int { return n + 1 }

	property := func(seed int) bool {
		base := pipes.Pure[pipes.None, pipes.None, pipes.None, pipes.None](seed)
		lhs, err1 := pipes.Run(context.Background(), pipes.Map(pipes.Map(base, g), f))
		rhs, err2 := pipes.Run(context.Background(), pipes.Map(base, func(n int) int { return f(g(n)) }))
		return err1 == nil && err2 == nil && lhs == rhs
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func TestMatchInspectsVariants(t *testing.T) {
	kind := func(p node) byte { return inspect(p).kind }

	if k := kind(pipes.Request[int, int, int, int](1)); k != 'q' {
		t.Fatalf("Request kind got %c, want q", k)
	}
	if k := kind(pipes.Respond[int, int, int, int](1)); k != 's' {
		t.Fatalf("Respond kind got %c, want s", k)
	}
	if k := kind(pipes.Lift[int, int, int, int](func(context.Context) (int, error) { return 0, nil })); k != 'e' {
		t.Fatalf("Lift kind got %c, want e", k)
	}
	if k := kind(pipes.Pure[int, int, int, int](1)); k != 'p' {
		t.Fatalf("Pure kind got %c, want p", k)
	}
}

func TestAbsurdIsFatal(t *testing.T) {
	// A Request built over None ports type-checks only by handing the
	// eliminator a value nothing should ever produce; the driver must
	// refuse it loudly rather than misbehave.
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic from absurd eliminator")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "absurd") {
			t.Fatalf("panic got %v, want absurd invariant message", r)
		}
	}()
	open := pipes.Request[pipes.None, pipes.None, pipes.None, pipes.None](pipes.None{})
	_, _ = pipes.Run(context.Background(), open)
}
