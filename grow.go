/*
Package id3 grows decision trees from datasets with the ID3 algorithm:
at every node the dataset is split on the attribute with the highest
information gain until the labels are pure or no attributes remain.
*/
package id3

import (
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
)

/*
Grow takes a dataset and returns the decision tree that predicts its
label column from the rest of its columns, or an error if the dataset is
nil or has no rows.

Nodes where every row shares a label become leaves predicting it. Nodes
where no attribute remains become leaves predicting the most frequent
label, the first one found in the rows in case of a tie. Every other
node splits on the attribute chosen by BestPartition, with one branch
per value observed for it.
*/
func Grow(ds *dataset.Dataset) (*tree.Tree, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if ds.Count() == 0 {
		return nil, ErrEmptyDataset
	}
	root, err := grow(ds)
	if err != nil {
		return nil, err
	}
	return tree.New(ds.Label(), root), nil
}

func grow(ds *dataset.Dataset) (tree.Node, error) {
	labels := ds.LabelCounts()
	if len(labels) == 1 || len(ds.Attributes()) == 0 {
		return &tree.Leaf{Value: mode(labels).Value, Samples: ds.Count()}, nil
	}
	p, err := BestPartition(ds)
	if err != nil {
		return nil, err
	}
	n := &tree.Internal{
		Feature:         p.Feature,
		Branches:        make([]tree.Branch, 0, len(p.Parts)),
		Samples:         ds.Count(),
		InformationGain: p.informationGain,
	}
	for _, part := range p.Parts {
		child, err := grow(part.Dataset)
		if err != nil {
			return nil, err
		}
		n.Branches = append(n.Branches, tree.Branch{Value: part.Value, Node: child})
	}
	return n, nil
}

// mode returns the most frequent entry of counts given in first-seen
// order, the earliest one among equals.
func mode(counts []dataset.ValueCount) dataset.ValueCount {
	var result dataset.ValueCount
	for _, vc := range counts {
		if vc.Count > result.Count {
			result = vc
		}
	}
	return result
}
