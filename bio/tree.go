package bio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/id3/tree"
	"go.trai.ch/zerr"
)

// Formats in which trees can be written.
const (
	TextFormat  = "text"
	JSONFormat  = "json"
	RulesFormat = "rules"
)

// ErrUnknownFormat is returned for tree formats other than text, json and rules.
var ErrUnknownFormat = zerr.New("unknown format: valid formats are text, json and rules")

/*
ValidFormat returns an error if the given tree format is not known.
*/
func ValidFormat(format string) error {
	switch format {
	case TextFormat, JSONFormat, RulesFormat:
		return nil
	}
	return zerr.With(zerr.Wrap(ErrUnknownFormat, fmt.Sprintf("format %q", format)), "format", format)
}

/*
WriteTree takes an io.Writer, a tree and a format and writes the tree
onto the writer in the format. It returns an error if the format is
unknown or serialization or printing fails, nil otherwise.
*/
func WriteTree(w io.Writer, t *tree.Tree, format string) error {
	switch format {
	case JSONFormat:
		return WriteJSONTree(w, t)
	case RulesFormat:
		return WriteRules(w, t)
	case TextFormat:
		return WriteTextTree(w, t)
	}
	return ValidFormat(format)
}

/*
WriteTreeToFile takes a filepath string, a tree and a format and tries
to create a file on the given filepath and later use WriteTree to write
the tree on it.
*/
func WriteTreeToFile(filepath string, t *tree.Tree, format string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return zerr.Wrap(err, "creating output file")
	}
	err = WriteTree(f, t, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

/*
WriteJSONTree takes an io.Writer and a tree and prints an indented JSON
representation of the tree onto the writer.
*/
func WriteJSONTree(w io.Writer, t *tree.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(t)
	if err != nil {
		return zerr.Wrap(err, "serializing tree as JSON")
	}
	return nil
}

// WriteTextTree prints the tree drawn as text under a heading.
func WriteTextTree(w io.Writer, t *tree.Tree) error {
	_, err := fmt.Fprintf(w, "Decision Tree:\n%v", t)
	return err
}

// WriteRules prints the rules of the tree, one per line.
func WriteRules(w io.Writer, t *tree.Tree) error {
	for _, rule := range t.Rules() {
		if _, err := fmt.Fprintln(w, rule); err != nil {
			return err
		}
	}
	return nil
}
