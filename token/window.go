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

package token

// Window is a read-only indexable sequence of tokens plus a one-token
// look-ahead cursor (C2). The backing slice is never mutated by Window
// itself; callers that need to rewrite a look-ahead token's Class (the
// parser's keyword/type-identifier feedback loop) keep their own copy of
// the current token and mutate that copy, never the slice — see
// parser.parser.cur.
type Window struct {
	toks []Token
	idx  int
}

// NewWindow wraps toks (assumed already terminated by an EOF token, or
// not — At/Peek synthesize a synthetic EOF past the end either way).
func NewWindow(toks []Token) *Window {
	return &Window{toks: toks}
}

// Len reports the number of tokens in the underlying sequence.
func (w *Window) Len() int { return len(w.toks) }

// At indexes directly into the read-only token sequence.
func (w *Window) At(i int) Token {
	if i < 0 || i >= len(w.toks) {
		return Token{Class: EOF}
	}
	return w.toks[i]
}

// Peek returns the token under the look-ahead cursor without advancing.
func (w *Window) Peek() Token {
	return w.At(w.idx)
}

// Next returns the token under the cursor and advances the cursor by one,
// unless already at or past end of input.
func (w *Window) Next() Token {
	t := w.Peek()
	if w.idx < len(w.toks) {
		w.idx++
	}
	return t
}
