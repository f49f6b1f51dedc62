// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"errors"
	"testing"
)

func TestSafeCallbackDeliversFirstSignalOnly(t *testing.T) {
	var delivered []any
	var reported []error
	sc := newSafeCallback(
		funcCallback{
			success: func(v any) { delivered = append(delivered, v) },
			failure: func(err error) { delivered = append(delivered, err) },
		},
		func(err error) { reported = append(reported, err) },
	)

	sc.onSuccess(1)
	sc.onSuccess(2)
	sc.onError(errors.New("late failure"))

	if len(delivered) != 1 || delivered[0] != 1 {
		t.Fatalf("expected exactly one delivery of 1, got %v", delivered)
	}
	if len(reported) != 2 {
		t.Fatalf("expected both extra signals reported, got %v", reported)
	}
	for _, err := range reported {
		if !errors.Is(err, errDoubleCompletion) {
			t.Fatalf("expected errDoubleCompletion, got %v", err)
		}
	}
}

func TestTypedCallbackAdaptsInternalCallback(t *testing.T) {
	var got int
	var gotErr error
	inner := funcCallback{
		success: func(v any) { got = v.(int) },
		failure: func(err error) { gotErr = err },
	}
	tc := typedCallback[int]{inner: inner}

	tc.OnSuccess(7)
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}

	boom := errors.New("boom")
	tc.OnError(boom)
	if gotErr != boom {
		t.Fatalf("got %v, want %v", gotErr, boom)
	}
}
