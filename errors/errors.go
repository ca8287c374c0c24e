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

// Package errors defines the fatal error shape used by every pass (§7).
// Every error here is terminal at first detection — there is no List, no
// batching, no recovery.
package errors

import (
	"fmt"

	"github.com/packetlang/p4front/token"
)

// Kind classifies a fatal error without being part of its message, per
// spec §7's error taxonomy.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Redeclaration
	UnresolvedName
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Redeclaration:
		return "redeclaration"
	case UnresolvedName:
		return "unresolved name"
	case Internal:
		return "internal error"
	}
	return "error"
}

// Error is the common shape of every fatal error produced by this front
// end: a Kind, a position, and a message. There is no InputPositions/
// Path list — no multi-position diagnostics are needed once there is no
// recovery to diagnose around.
type Error struct {
	Kind Kind
	Pos  token.Pos
	msg  string
}

// Newf creates a new fatal Error positioned at pos.
func Newf(kind Kind, pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface, rendering "file:line:col: kind: msg".
func (e *Error) Error() string {
	pos := e.Pos.Position()
	if pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", pos.String(), e.Kind, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Msg returns the unformatted message.
func (e *Error) Msg() string { return e.msg }

// fatalPanic is the sentinel type thrown by Fatal and caught by Recover.
// Using a dedicated type (rather than panicking with *Error directly)
// keeps Recover from swallowing unrelated panics.
type fatalPanic struct{ err *Error }

// Fatal raises err as the first and only error of this compilation unit.
// Every pass calls this instead of returning (error, bool) pairs, since
// spec §7 defines every error as fatal-at-first-detection with no
// recovery; compile.Compile is the sole place that recovers it.
func Fatal(err *Error) {
	panic(fatalPanic{err})
}

// Fatalf is a convenience wrapper combining Newf and Fatal.
func Fatalf(kind Kind, pos token.Pos, format string, args ...interface{}) {
	Fatal(Newf(kind, pos, format, args...))
}

// Recover must be deferred at the single front-door entry point
// (compile.Compile). If the deferred function's goroutine is unwinding
// because of a Fatal call, Recover assigns *errOut and stops the panic;
// any other panic is re-raised unchanged.
func Recover(errOut *error) {
	if r := recover(); r != nil {
		if fp, ok := r.(fatalPanic); ok {
			*errOut = fp.err
			return
		}
		panic(r)
	}
}
