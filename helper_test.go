// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes_test

import (
	"context"
	"fmt"
	"testing"

	"code.hybscloud.com/pipes"
)

// collect drains a producer on a background context, failing the test
// on error. Used wherever a test only cares about the emitted values.
func collect[B, R any](tb testing.TB, p pipes.Producer[B, R]) []B {
	tb.Helper()
	out, _, err := pipes.Collect(context.Background(), p)
	if err != nil {
		tb.Fatalf("collect error: %v", err)
	}
	return out
}

// node is the all-int proxy instantiation used by the observational
// harness: every port carries an int so arbitrary trees can be driven.
type node = pipes.Proxy[int, int, int, int, int]

// outcome is one inspected node, produced by Match.
type outcome struct {
	kind   byte // 'q' request, 's' respond, 'e' effect, 'p' pure
	value  int
	resume func(int) node
	step   pipes.Step[int, int, int, int, int]
	result int
}

func inspect(p node) outcome {
	return pipes.Match(p,
		func(v int, k func(int) node) outcome {
			return outcome{kind: 'q', value: v, resume: k}
		},
		func(v int, k func(int) node) outcome {
			return outcome{kind: 's', value: v, resume: k}
		},
		func(step pipes.Step[int, int, int, int, int]) outcome {
			return outcome{kind: 'e', step: step}
		},
		func(r int) outcome {
			return outcome{kind: 'p', result: r}
		},
	)
}

// walk drives p, answering every request with up(v) and every respond
// with down(v), recording the port traffic. Effect nodes run silently:
// composition wraps steps, so they are not part of observable behavior.
// Stops after limit port events, so infinite trees yield a trace prefix.
func walk(tb testing.TB, p node, up, down func(int) int, limit int) []string {
	tb.Helper()
	ctx := context.Background()
	var events []string
	for len(events) < limit {
		o := inspect(p)
		switch o.kind {
		case 'q':
			events = append(events, fmt.Sprintf("req:%d", o.value))
			p = o.resume(up(o.value))
		case 's':
			events = append(events, fmt.Sprintf("res:%d", o.value))
			p = o.resume(down(o.value))
		case 'e':
			next, err := o.step(ctx)
			if err != nil {
				return append(events, "err:"+err.Error())
			}
			p = next
		case 'p':
			return append(events, fmt.Sprintf("pure:%d", o.result))
		}
	}
	return events
}

// sameTrace compares two traces, reporting the first divergence.
func sameTrace(tb testing.TB, got, want []string) {
	tb.Helper()
	if len(got) != len(want) {
		tb.Fatalf("trace length got %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			tb.Fatalf("trace[%d] got %q, want %q\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}
