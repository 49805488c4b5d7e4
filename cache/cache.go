/*
Package cache keeps recently grown trees so that unchanged inputs are
not grown again.
*/
package cache

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbanos/id3/tree"
	"go.trai.ch/zerr"
)

// Key identifies a grown tree by the digest of its input and its label.
type Key struct {
	Digest uint64
	Label  string
}

// Trees is a fixed-size LRU cache of grown trees.
type Trees struct {
	lru *lru.Cache[Key, *tree.Tree]
}

// New returns a cache holding up to size trees.
func New(size int) (*Trees, error) {
	c, err := lru.New[Key, *tree.Tree](size)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "creating tree cache"), "size", size)
	}
	return &Trees{c}, nil
}

// Digest returns the XXHash of the given input bytes.
func Digest(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// KeyFor returns the key for the tree grown from input to predict label.
func KeyFor(input []byte, label string) Key {
	return Key{Digest(input), label}
}

// Get returns the tree cached under k, if any.
func (t *Trees) Get(k Key) (*tree.Tree, bool) {
	return t.lru.Get(k)
}

// Add caches tr under k and reports whether an older tree was evicted.
func (t *Trees) Add(k Key, tr *tree.Tree) bool {
	return t.lru.Add(k, tr)
}

// Len returns the number of cached trees.
func (t *Trees) Len() int {
	return t.lru.Len()
}
