// Package combination enumerates the cartesian product of per-group
// candidate sets, used to lay out every possible recombination of parts.
package combination

import "errors"

// ErrEmptyGroup cancels enumeration: a group without candidates means the
// input cannot produce any combination. Callers skip the file, not the run.
var ErrEmptyGroup = errors.New("combination: group has no candidates")

// Node is one candidate choice for a group. Children fan out over the next
// group's candidates; a node without children sits at the last group.
type Node[T any] struct {
	Label    T
	Children []*Node[T]
}

// BuildTree converts per-group candidate sets into the candidate tree for
// group 0. Any group without candidates yields ErrEmptyGroup.
func BuildTree[T any](groups [][]T) ([]*Node[T], error) {
	for _, g := range groups {
		if len(g) == 0 {
			return nil, ErrEmptyGroup
		}
	}
	return build(groups), nil
}

func build[T any](groups [][]T) []*Node[T] {
	if len(groups) == 0 {
		return nil
	}
	nodes := make([]*Node[T], 0, len(groups[0]))
	for _, label := range groups[0] {
		nodes = append(nodes, &Node[T]{Label: label, Children: build(groups[1:])})
	}
	return nodes
}

// Flatten walks the tree depth first and emits one combination per
// root-to-leaf path, in sibling order.
func Flatten[T any](roots []*Node[T]) [][]T {
	var res [][]T
	var path []T
	var walk func(nodes []*Node[T])
	walk = func(nodes []*Node[T]) {
		for _, n := range nodes {
			path = append(path, n.Label)
			if len(n.Children) == 0 {
				combo := make([]T, len(path))
				copy(combo, path)
				res = append(res, combo)
			} else {
				walk(n.Children)
			}
			path = path[:len(path)-1]
		}
	}
	walk(roots)
	return res
}

// Enumerate returns every way of choosing one candidate per group, in
// group-major order. The result size is the product of the group sizes.
func Enumerate[T any](groups [][]T) ([][]T, error) {
	roots, err := BuildTree(groups)
	if err != nil {
		return nil, err
	}
	return Flatten(roots), nil
}
