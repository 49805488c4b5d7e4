/*
Package mongo reads datasets from the documents of a MongoDB collection.
*/
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pbanos/id3/bio"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	// DefaultCollection is the collection read when none is given.
	DefaultCollection = "samples"

	defaultDialTimeout = 10 * time.Second
)

// ErrInvalidFieldName is returned for feature names MongoDB reserves.
var ErrInvalidFieldName = zerr.New("invalid feature name")

/*
Dial takes a context and a MongoDB connection URL and returns a session
on it or an error. The dial is given until the context deadline, or a
default timeout when the context has none.
*/
func Dial(ctx context.Context, url string) (*mgo.Session, error) {
	timeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	session, err := mgo.DialWithTimeout(url, timeout)
	if err != nil {
		return nil, zerr.Wrap(err, "connecting to mongodb")
	}
	return session, nil
}

/*
ReadDataset takes a context, a MongoDB session, the name of a collection in
the session's default database, a slice of features and the name of the
label feature, and returns the dataset with a row per document of the
collection or an error.

Documents carry no column order, so the features are required and give the
columns of the dataset. The _id field is ignored. An empty collection name
reads DefaultCollection and an empty label takes the last feature.
*/
func ReadDataset(ctx context.Context, session *mgo.Session, collection string, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	if len(features) == 0 {
		return nil, bio.ErrNoFeatures
	}
	if collection == "" {
		collection = DefaultCollection
	}
	projection := bson.M{"_id": 0}
	names := make([]string, 0, len(features))
	for _, f := range features {
		err := validateFieldName(f.Name())
		if err != nil {
			return nil, err
		}
		projection[f.Name()] = 1
		names = append(names, f.Name())
	}
	iter := session.DB("").C(collection).Find(nil).Select(projection).Sort("$natural").Iter()
	defer iter.Close()
	var rows [][]feature.Value
	var doc bson.M
	for i := 1; iter.Next(&doc); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := recordFromDocument(doc, features)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, fmt.Sprintf("reading document %d of %s", i, collection)), "document", i)
		}
		rows = append(rows, row)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("reading collection %s", collection))
	}
	return dataset.New(names, bio.LabelOrLast(label, names), rows)
}

func recordFromDocument(doc bson.M, features []*feature.Feature) ([]feature.Value, error) {
	row := make([]feature.Value, 0, len(features))
	for _, f := range features {
		raw, ok := doc[f.Name()]
		if !ok {
			return nil, zerr.With(zerr.Wrap(feature.ErrMissingValue, fmt.Sprintf("feature %s", f.Name())), "feature", f.Name())
		}
		v, err := f.Convert(raw)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

func validateFieldName(name string) error {
	if name == "_id" {
		return zerr.Wrap(ErrInvalidFieldName, fmt.Sprintf("invalid feature name %q: reserved collection field", name))
	}
	if strings.ContainsAny(name, ".$") {
		return zerr.Wrap(ErrInvalidFieldName, fmt.Sprintf("invalid feature name %q: contains reserved characters %q or %q", name, ".", "$"))
	}
	return nil
}
