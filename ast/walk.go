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

package ast

// Visitor is implemented by callers of Walk. Before is called when the
// walker descends into a node: if it returns a non-nil Visitor, walking
// continues into the node's children with that Visitor, and After is
// called with the same node once all children have been visited. If
// Before returns nil, the children are skipped (but After is still
// called).
type Visitor interface {
	Before(node Node) (w Visitor)
	After(node Node)
}

// Walk traverses the tree rooted at node in depth-first, left-to-right
// order (per spec §5: "sibling iteration inside an AST tree is
// left-to-right / insertion order"), invoking v at each node.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if w := v.Before(node); w != nil {
		for _, c := range node.Children() {
			Walk(w, c)
		}
	}
	v.After(node)
}

// inspector adapts a single before-func into a Visitor.
type inspector func(Node) bool

func (f inspector) Before(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

func (f inspector) After(Node) {}

// Inspect calls fn for every node in the tree rooted at node, in the
// same order as Walk. If fn returns false for a node, that node's
// children are skipped.
func Inspect(node Node, fn func(Node) bool) {
	Walk(inspector(fn), node)
}
