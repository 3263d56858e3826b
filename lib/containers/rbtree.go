// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"fmt"
)

type Color bool

const (
	Black Color = false
	Red   Color = true
)

type RBNode[V any] struct {
	Parent, Left, Right *RBNode[V]

	Color Color

	Value V
}

func (node *RBNode[V]) getColor() Color {
	if node == nil {
		return Black
	}
	return node.Color
}

// RBTree is a red-black tree of values that are ordered by a key
// extracted from each value by KeyFn.  No two values in the tree
// have the same key.
//
// KeyFn must be set before the tree is used.
type RBTree[K Ordered[K], V any] struct {
	KeyFn func(V) K
	root  *RBNode[V]
	len   int
}

func (t *RBTree[K, V]) Len() int {
	return t.len
}

// Range calls fn for each node in the tree, in ascending key order,
// stopping early if fn returns false.
func (t *RBTree[K, V]) Range(fn func(*RBNode[V]) bool) {
	t.root._range(fn)
}

func (node *RBNode[V]) _range(fn func(*RBNode[V]) bool) bool {
	if node == nil {
		return true
	}
	if !node.Left._range(fn) {
		return false
	}
	if !fn(node) {
		return false
	}
	if !node.Right._range(fn) {
		return false
	}
	return true
}

// Search the tree for a value that satisfied the given callback
// function.  A return value of 0 means to return this value; <0 means
// to go left on the tree (the value is too high), >0 means to go
// right on the tree (the value is too low).
//
//	        +-----+
//	        | v=8 | == 0 : this is it
//	        +-----+
//	       /       \
//	      /         \
//	<0 : go left   >0 : go right
//	    /             \
//	 +---+          +---+
//	 | 7 |          | 9 |
//	 +---+          +---+
//
// Returns nil if no such value is found.
func (t *RBTree[K, V]) Search(fn func(K) int) *RBNode[V] {
	ret, _ := t.search(fn)
	return ret
}

func (t *RBTree[K, V]) search(fn func(K) int) (exact, nearest *RBNode[V]) {
	var prev *RBNode[V]
	node := t.root
	for {
		if node == nil {
			return nil, prev
		}
		direction := fn(t.KeyFn(node.Value))
		prev = node
		switch {
		case direction < 0:
			node = node.Left
		case direction == 0:
			return node, nil
		case direction > 0:
			node = node.Right
		}
	}
}

// Lookup returns the node with exactly the given key, or nil.
func (t *RBTree[K, V]) Lookup(key K) *RBNode[V] {
	return t.Search(key.Compare)
}

// neighbor returns the node nearest to key on one side of it: the
// greatest node below key if below is set, otherwise the least node
// above key.  A node with exactly key is returned if inclusive is
// set, and skipped otherwise.
func (t *RBTree[K, V]) neighbor(key K, below, inclusive bool) *RBNode[V] {
	var best *RBNode[V]
	node := t.root
	for node != nil {
		direction := key.Compare(t.KeyFn(node.Value))
		switch {
		case direction == 0 && inclusive:
			return node
		case direction < 0, direction == 0 && below:
			if !below && direction < 0 {
				best = node
			}
			node = node.Left
		default:
			if below && direction > 0 {
				best = node
			}
			node = node.Right
		}
	}
	return best
}

// Floor returns the node with the greatest key ≤ key, or nil.
func (t *RBTree[K, V]) Floor(key K) *RBNode[V] {
	return t.neighbor(key, true, true)
}

// Lower returns the node with the greatest key < key, or nil.
func (t *RBTree[K, V]) Lower(key K) *RBNode[V] {
	return t.neighbor(key, true, false)
}

// Ceiling returns the node with the least key ≥ key, or nil.
func (t *RBTree[K, V]) Ceiling(key K) *RBNode[V] {
	return t.neighbor(key, false, true)
}

// Higher returns the node with the least key > key, or nil.
func (t *RBTree[K, V]) Higher(key K) *RBNode[V] {
	return t.neighbor(key, false, false)
}

// Min returns the node with the minimum key in the tree, or nil if
// the tree is empty.
func (t *RBTree[K, V]) Min() *RBNode[V] {
	return t.root.min()
}

func (node *RBNode[V]) min() *RBNode[V] {
	if node == nil {
		return nil
	}
	for {
		if node.Left == nil {
			return node
		}
		node = node.Left
	}
}

func (cur *RBNode[V]) Next() *RBNode[V] {
	if cur.Right != nil {
		return cur.Right.min()
	}
	child, parent := cur, cur.Parent
	for parent != nil && child == parent.Right {
		child, parent = parent, parent.Parent
	}
	return parent
}

// Subrange is like Search, but for when there may be more than one
// result; handleFn is called for each matching node in ascending
// order until it returns false.
func (t *RBTree[K, V]) Subrange(rangeFn func(K) int, handleFn func(*RBNode[V]) bool) {
	// Find the left-most acceptable node.
	_, node := t.search(func(k K) int {
		if rangeFn(k) <= 0 {
			return -1
		} else {
			return 1
		}
	})
	for node != nil && rangeFn(t.KeyFn(node.Value)) > 0 {
		node = node.Next()
	}
	// Now walk forward until we hit the end.
	for node != nil && rangeFn(t.KeyFn(node.Value)) == 0 {
		if keepGoing := handleFn(node); !keepGoing {
			return
		}
		node = node.Next()
	}
}

// Equal reports whether both trees hold the same sequence of keys;
// eqFn compares the values stored under equal keys.
func (t *RBTree[K, V]) Equal(u *RBTree[K, V], eqFn func(a, b V) bool) bool {
	if (t == nil) != (u == nil) {
		return false
	}
	if t == nil {
		return true
	}
	if t.len != u.len {
		return false
	}

	tNode, uNode := t.Min(), u.Min()
	for tNode != nil && uNode != nil {
		if t.KeyFn(tNode.Value).Compare(u.KeyFn(uNode.Value)) != 0 {
			return false
		}
		if !eqFn(tNode.Value, uNode.Value) {
			return false
		}
		tNode, uNode = tNode.Next(), uNode.Next()
	}
	return tNode == nil && uNode == nil
}

func (t *RBTree[K, V]) parentChild(node *RBNode[V]) **RBNode[V] {
	switch {
	case node.Parent == nil:
		return &t.root
	case node.Parent.Left == node:
		return &node.Parent.Left
	case node.Parent.Right == node:
		return &node.Parent.Right
	default:
		panic(fmt.Errorf("node %p is not a child of its parent %p", node, node.Parent))
	}
}

func (t *RBTree[K, V]) leftRotate(x *RBNode[V]) {
	//        p                        p
	//        |                        |
	//      +---+                    +---+
	//      | x |                    | y |
	//      +---+                    +---+
	//     /     \         =>       /     \
	//    a    +---+              +---+    c
	//         | y |              | x |
	//         +---+              +---+
	//        /     \            /     \
	//       b       c          a       b

	p := x.Parent
	pChild := t.parentChild(x)
	y := x.Right
	b := y.Left

	y.Parent = p
	*pChild = y

	x.Parent = y
	y.Left = x

	if b != nil {
		b.Parent = x
	}
	x.Right = b
}

func (t *RBTree[K, V]) rightRotate(y *RBNode[V]) {
	//nolint:dupword
	//
	//           |                |
	//         +---+            +---+
	//         | y |            | x |
	//         +---+            +---+
	//        /     \    =>    /     \
	//      +---+    c        a    +---+
	//      | x |                  | y |
	//      +---+                  +---+
	//     /     \                /     \
	//    a       b              b       c

	p := y.Parent
	pChild := t.parentChild(y)
	x := y.Left
	b := x.Right

	x.Parent = p
	*pChild = x

	y.Parent = x
	x.Right = y

	if b != nil {
		b.Parent = y
	}
	y.Left = b
}

// Insert adds val to the tree, replacing any existing value with the
// same key.  It returns the node holding val.
func (t *RBTree[K, V]) Insert(val V) *RBNode[V] {
	key := t.KeyFn(val)

	exact, parent := t.search(key.Compare)
	if exact != nil {
		exact.Value = val
		return exact
	}
	t.len++

	node := &RBNode[V]{
		Color:  Red,
		Parent: parent,
		Value:  val,
	}
	switch {
	case parent == nil:
		t.root = node
	case key.Compare(t.KeyFn(parent.Value)) < 0:
		parent.Left = node
	default:
		parent.Right = node
	}
	ret := node

	// Re-balance, following CLRS 3e §13.3.
	for node.Parent.getColor() == Red {
		if node.Parent == node.Parent.Parent.Left {
			uncle := node.Parent.Parent.Right
			if uncle.getColor() == Red {
				node.Parent.Color = Black
				uncle.Color = Black
				node.Parent.Parent.Color = Red
				node = node.Parent.Parent
			} else {
				if node == node.Parent.Right {
					node = node.Parent
					t.leftRotate(node)
				}
				node.Parent.Color = Black
				node.Parent.Parent.Color = Red
				t.rightRotate(node.Parent.Parent)
			}
		} else {
			uncle := node.Parent.Parent.Left
			if uncle.getColor() == Red {
				node.Parent.Color = Black
				uncle.Color = Black
				node.Parent.Parent.Color = Red
				node = node.Parent.Parent
			} else {
				if node == node.Parent.Left {
					node = node.Parent
					t.rightRotate(node)
				}
				node.Parent.Color = Black
				node.Parent.Parent.Color = Red
				t.leftRotate(node.Parent.Parent)
			}
		}
	}
	t.root.Color = Black
	return ret
}

func (t *RBTree[K, V]) transplant(oldNode, newNode *RBNode[V]) {
	*t.parentChild(oldNode) = newNode
	if newNode != nil {
		newNode.Parent = oldNode.Parent
	}
}

// Delete removes the value with the given key, if there is one.
func (t *RBTree[K, V]) Delete(key K) {
	t.DeleteNode(t.Lookup(key))
}

// DeleteNode removes a node from the tree.  Nodes are relinked rather
// than having their values swapped, so pointers to any other node in
// the tree remain valid across a DeleteNode.
func (t *RBTree[K, V]) DeleteNode(nodeToDelete *RBNode[V]) {
	if nodeToDelete == nil {
		return
	}
	t.len--

	// Following CLRS 3e §13.4.

	// phase 1: unlink

	var nodeToRebalance *RBNode[V]
	var nodeToRebalanceParent *RBNode[V] // in case 'nodeToRebalance' is nil, which it can be
	needsRebalance := nodeToDelete.Color == Black

	switch {
	case nodeToDelete.Left == nil:
		nodeToRebalance = nodeToDelete.Right
		nodeToRebalanceParent = nodeToDelete.Parent
		t.transplant(nodeToDelete, nodeToDelete.Right)
	case nodeToDelete.Right == nil:
		nodeToRebalance = nodeToDelete.Left
		nodeToRebalanceParent = nodeToDelete.Parent
		t.transplant(nodeToDelete, nodeToDelete.Left)
	default:
		// Two children: splice the successor into the deleted
		// node's position.
		next := nodeToDelete.Next()
		if next.Parent == nodeToDelete {
			//         p                  p
			//         |                  |
			//      +-----+            +-----+
			//      | ntd |            | nxt |
			//      +-----+            +-----+
			//      /     \       =>   /     \
			//     a     +-----+      a      b
			//           | nxt |
			//           +-----+
			//            /   \
			//          nil   b
			nodeToRebalance = next.Right
			nodeToRebalanceParent = next

			*t.parentChild(nodeToDelete) = next
			next.Parent = nodeToDelete.Parent

			next.Left = nodeToDelete.Left
			next.Left.Parent = next
		} else {
			//         p                 p
			//         |                 |
			//      +-----+           +-----+
			//      | ntd |           | nxt |
			//      +-----+           +-----+
			//      /     \           /     \
			//     a       x         a       x
			//            / \    =>         / \
			//           y   z             y   z
			//          / \               / \
			//    +-----+  c             b   c
			//    | nxt |
			//    +-----+
			//    /     \
			//  nil     b
			y := next.Parent
			b := next.Right
			nodeToRebalance = b
			nodeToRebalanceParent = y

			*t.parentChild(nodeToDelete) = next
			next.Parent = nodeToDelete.Parent

			next.Left = nodeToDelete.Left
			next.Left.Parent = next

			next.Right = nodeToDelete.Right
			next.Right.Parent = next

			y.Left = b
			if b != nil {
				b.Parent = y
			}
		}

		needsRebalance = next.Color == Black
		next.Color = nodeToDelete.Color
	}

	nodeToDelete.Parent, nodeToDelete.Left, nodeToDelete.Right = nil, nil, nil

	// phase 2: fix up colors

	if needsRebalance {
		node := nodeToRebalance
		nodeParent := nodeToRebalanceParent
		for node != t.root && node.getColor() == Black {
			if node == nodeParent.Left {
				sibling := nodeParent.Right
				if sibling.getColor() == Red {
					sibling.Color = Black
					nodeParent.Color = Red
					t.leftRotate(nodeParent)
					sibling = nodeParent.Right
				}
				if sibling.Left.getColor() == Black && sibling.Right.getColor() == Black {
					sibling.Color = Red
					node, nodeParent = nodeParent, nodeParent.Parent
				} else {
					if sibling.Right.getColor() == Black {
						sibling.Left.Color = Black
						sibling.Color = Red
						t.rightRotate(sibling)
						sibling = nodeParent.Right
					}
					sibling.Color = nodeParent.Color
					nodeParent.Color = Black
					sibling.Right.Color = Black
					t.leftRotate(nodeParent)
					node, nodeParent = t.root, nil
				}
			} else {
				sibling := nodeParent.Left
				if sibling.getColor() == Red {
					sibling.Color = Black
					nodeParent.Color = Red
					t.rightRotate(nodeParent)
					sibling = nodeParent.Left
				}
				if sibling.Right.getColor() == Black && sibling.Left.getColor() == Black {
					sibling.Color = Red
					node, nodeParent = nodeParent, nodeParent.Parent
				} else {
					if sibling.Left.getColor() == Black {
						sibling.Right.Color = Black
						sibling.Color = Red
						t.leftRotate(sibling)
						sibling = nodeParent.Left
					}
					sibling.Color = nodeParent.Color
					nodeParent.Color = Black
					sibling.Left.Color = Black
					t.rightRotate(nodeParent)
					node, nodeParent = t.root, nil
				}
			}
		}
		if node != nil {
			node.Color = Black
		}
	}
}
