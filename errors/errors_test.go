// Copyright 2026 The Packet Pipeline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors_test

import (
	"testing"

	"github.com/packetlang/p4front/errors"
	"github.com/packetlang/p4front/token"
)

func TestErrorStringWithValidPosition(t *testing.T) {
	f := token.NewFile("test.p4")
	pos := token.Pos{File: f, Line: 4, Column: 2}
	err := errors.Newf(errors.Syntax, pos, "unexpected %q", ";")
	want := `test.p4:4:2: syntax error: unexpected ";"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithNoPos(t *testing.T) {
	err := errors.Newf(errors.Internal, token.NoPos, "unreachable")
	want := "internal error: unreachable"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorMsgIsUnformatted(t *testing.T) {
	err := errors.Newf(errors.Redeclaration, token.NoPos, "%q redeclared", "x")
	if got := err.Msg(); got != `"x" redeclared` {
		t.Errorf("Msg() = %q, want %q", got, `"x" redeclared`)
	}
}

func TestKindStrings(t *testing.T) {
	cases := []struct {
		k    errors.Kind
		want string
	}{
		{errors.Lexical, "lexical error"},
		{errors.Syntax, "syntax error"},
		{errors.Redeclaration, "redeclaration"},
		{errors.UnresolvedName, "unresolved name"},
		{errors.Internal, "internal error"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("%d.String() = %q, want %q", c.k, got, c.want)
		}
	}
}

func TestRecoverCatchesFatal(t *testing.T) {
	var err error
	func() {
		defer errors.Recover(&err)
		errors.Fatalf(errors.Syntax, token.NoPos, "boom")
	}()
	if err == nil {
		t.Fatalf("Recover did not capture the Fatal error")
	}
	if got, want := err.Error(), "syntax error: boom"; got != want {
		t.Errorf("recovered error = %q, want %q", got, want)
	}
}

func TestRecoverLeavesErrNilWhenNoPanic(t *testing.T) {
	var err error
	func() {
		defer errors.Recover(&err)
	}()
	if err != nil {
		t.Errorf("Recover set err = %v on a clean return, want nil", err)
	}
}

func TestRecoverRepanicsUnrelatedPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("an unrelated panic was swallowed instead of being re-raised")
		}
		if _, ok := r.(string); !ok {
			t.Fatalf("re-raised panic = %v (%T), want the original string panic", r, r)
		}
	}()
	var err error
	func() {
		defer errors.Recover(&err)
		panic("not a fatalPanic")
	}()
}

func TestFatalPanicsWithGivenError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Fatal did not panic")
		}
	}()
	errors.Fatal(errors.Newf(errors.Lexical, token.NoPos, "bad byte"))
}
