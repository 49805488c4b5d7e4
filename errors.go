package id3

import "go.trai.ch/zerr"

var (
	// ErrNilDataset is returned when growing a tree without a dataset.
	ErrNilDataset = zerr.New("nil dataset")

	// ErrEmptyDataset is returned when growing a tree from a dataset without rows.
	ErrEmptyDataset = zerr.New("cannot grow a tree from an empty dataset")

	// ErrNoAttributes is returned when looking for the best attribute to
	// split a dataset that has no columns besides the label.
	ErrNoAttributes = zerr.New("dataset has no attributes to split on")
)
