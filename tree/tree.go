package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pbanos/id3/feature"
)

// Tree represents a decision tree: its root node and the name of the
// label feature it predicts.
type Tree struct {
	Root  Node
	Label string
}

// New takes the name of the label feature and the root Node and returns
// the tree they form.
func New(label string, root Node) *Tree {
	return &Tree{root, label}
}

// Traverse takes a bottomup boolean and an error-returning function that
// takes the path of criteria from the root to a node and the node itself,
// and goes through the tree running the function with every node.
// Traverse will call the function with a parent node before calling it
// for its children if bottomup is false, and call it after its children
// if bottomup is true. Children are visited in branch order. If the call
// to the function returns an error, the traversing is aborted and the
// error is returned.
func (t *Tree) Traverse(bottomup bool, f func(path []feature.Criterion, n Node) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return traverse(nil, t.Root, bottomup, f)
}

func traverse(path []feature.Criterion, n Node, bottomup bool, f func([]feature.Criterion, Node) error) error {
	var err error
	if !bottomup {
		err = f(path, n)
	}
	if err != nil {
		return err
	}
	if in, ok := n.(*Internal); ok {
		for _, b := range in.Branches {
			stPath := append(path[:len(path):len(path)], b.Criterion(in.Feature))
			err = traverse(stPath, b.Node, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(path, n)
	}
	return err
}

// Depth returns the number of internal nodes on the longest path from
// the root to a leaf: 0 for a tree that is a single leaf.
func (t *Tree) Depth() int {
	var depth int
	t.Traverse(false, func(path []feature.Criterion, n Node) error {
		if len(path) > depth {
			depth = len(path)
		}
		return nil
	})
	return depth
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	var count int
	t.Traverse(false, func(_ []feature.Criterion, n Node) error {
		if _, ok := n.(*Leaf); ok {
			count++
		}
		return nil
	})
	return count
}

/*
Rules returns one line per leaf of the tree describing the path of
criteria leading to it and its prediction, as in

	Weather is Sunny and Wind is Weak => Play is Yes
*/
func (t *Tree) Rules() []string {
	var rules []string
	t.Traverse(false, func(path []feature.Criterion, n Node) error {
		l, ok := n.(*Leaf)
		if !ok {
			return nil
		}
		conditions := make([]string, 0, len(path))
		for _, c := range path {
			conditions = append(conditions, c.String())
		}
		rule := fmt.Sprintf("=> %s is %v", t.Label, l.Value)
		if len(conditions) > 0 {
			rule = fmt.Sprintf("%s %s", strings.Join(conditions, " and "), rule)
		}
		rules = append(rules, rule)
		return nil
	})
	return rules
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n Node) string {
	var result string
	switch n := n.(type) {
	case *Leaf:
		return fmt.Sprintf("%s is %v [%d]\n", t.Label, n.Value, n.Samples)
	case *Internal:
		result = fmt.Sprintf("%s [%d]\n", n.Feature, n.Samples)
		for i, b := range n.Branches {
			subtree := fmt.Sprintf("{ %v }\n%s", b.Criterion(n.Feature), t.subtreeString(b.Node))
			for j, line := range strings.Split(subtree, "\n") {
				if len(line) > 0 {
					if j == 0 {
						result = fmt.Sprintf("%s|__%s\n", result, line)
					} else {
						if i == len(n.Branches)-1 {
							result = fmt.Sprintf("%s   %s\n", result, line)
						} else {
							result = fmt.Sprintf("%s|  %s\n", result, line)
						}
					}
				}
			}
		}
	}
	return result
}

/*
MarshalJSON returns a slice of bytes with the Tree serialized to JSON and an error.
The tree is serialized as nested objects: an internal node becomes an object
with the feature name as its only key, whose value is an object mapping each
branch value to its subtree, in branch order. A leaf becomes its label value
as a JSON string, number or boolean. For example:

	{"Weather":{"Sunny":"Yes","Rainy":"No"}}
*/
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if t.Root == nil {
		return []byte("null"), nil
	}
	err := writeJSONNode(&buf, t.Root)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONNode(buf *bytes.Buffer, n Node) error {
	switch n := n.(type) {
	case *Leaf:
		b, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case *Internal:
		fn, err := json.Marshal(n.Feature)
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		buf.Write(fn)
		buf.WriteString(":{")
		for i, b := range n.Branches {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(b.Value.String())
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			err = writeJSONNode(buf, b.Node)
			if err != nil {
				return err
			}
		}
		buf.WriteString("}}")
		return nil
	}
	return fmt.Errorf("unknown node type %T", n)
}
