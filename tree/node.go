package tree

import (
	"github.com/pbanos/id3/feature"
)

/*
Node is a node of a decision tree: either a *Leaf holding the predicted
label value or an *Internal node testing a feature.
*/
type Node interface {
	// Weight returns the number of training samples that reached the node.
	Weight() int
	isNode()
}

/*
Leaf is a terminal node of the tree
*/
type Leaf struct {
	// The label value predicted for samples reaching the leaf
	Value feature.Value
	// The number of training samples that reached the leaf
	Samples int
}

/*
Internal is a node that tests the value samples take on a feature and
sends them down the branch for that value.
*/
type Internal struct {
	// The name of the feature tested by the node
	Feature string
	// One branch per value of the feature observed in the training
	// samples reaching the node, in the order they were first observed.
	Branches []Branch
	// The number of training samples that reached the node
	Samples int
	// The information gain obtained splitting those samples on Feature
	InformationGain float64
}

// Branch links a value of an internal node's feature to the subtree for it.
type Branch struct {
	Value feature.Value
	Node  Node
}

// Weight returns the number of training samples that reached the leaf.
func (l *Leaf) Weight() int { return l.Samples }

// Weight returns the number of training samples that reached the node.
func (n *Internal) Weight() int { return n.Samples }

func (*Leaf) isNode()     {}
func (*Internal) isNode() {}

/*
Child returns the subtree for the given value of the node's feature and
whether there is one.
*/
func (n *Internal) Child(v feature.Value) (Node, bool) {
	for _, b := range n.Branches {
		if b.Value == v {
			return b.Node, true
		}
	}
	return nil, false
}

// Criterion returns the constraint a sample satisfies to go down the branch.
func (b Branch) Criterion(f string) feature.Criterion {
	return feature.NewDiscreteCriterion(f, b.Value)
}
