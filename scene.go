// seehuhn.de/go/vectess - vector scene tessellation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vectess

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Node is a node of a scene graph.
//
// A node owns its shapes and children.  Clipper is a non-owning reference to
// another node: the union of the outlines of the clipper's shapes (and of
// its descendants) restricts the visible area of this node and of all of
// its descendants.  The transform of the clipper is relative to this node.
type Node struct {
	// Transform maps the node's coordinates to the coordinates of its
	// parent.  The zero matrix is treated as the identity.
	Transform matrix.Matrix

	Shapes   []*Shape
	Children []*Node
	Clipper  *Node
}

// Add appends the shapes of the given drawables to n and returns n.
func (n *Node) Add(ds ...Drawable) *Node {
	for _, d := range ds {
		n.Shapes = append(n.Shapes, d.Shape())
	}
	return n
}

// AddChild appends children to n and returns n.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Scene is a tree of nodes.  By convention the transform of the root is the
// identity.
type Scene struct {
	Root *Node
}

// ErrInvalidSceneGraph is returned for scene graphs which cannot be
// traversed, for example because a node is its own ancestor.
var ErrInvalidSceneGraph = errors.New("invalid scene graph")

// Walk calls fn for every node of the scene, in pre-order with children in
// list order.  The second argument of fn is the transform from node
// coordinates to scene coordinates.  Nodes reachable along several paths
// are visited once per path.  If fn returns an error, the walk stops and
// the error is returned.
func (s *Scene) Walk(fn func(n *Node, world matrix.Matrix) error) error {
	if s == nil || s.Root == nil {
		return fmt.Errorf("%w: scene has no root", ErrInvalidSceneGraph)
	}
	return walkNodes(s.Root, matrix.Identity, make(map[*Node]bool), fn)
}

func walkNodes(n *Node, parent matrix.Matrix, onPath map[*Node]bool, fn func(*Node, matrix.Matrix) error) error {
	if onPath[n] {
		return fmt.Errorf("%w: node is its own ancestor", ErrInvalidSceneGraph)
	}
	onPath[n] = true
	defer delete(onPath, n)

	world := n.local().Mul(parent)
	if err := fn(n, world); err != nil {
		return err
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := walkNodes(c, world, onPath, fn); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) local() matrix.Matrix {
	if n.Transform.IsZero() {
		return matrix.Identity
	}
	return n.Transform
}

// apply transforms the point p by m.
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := m.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}
