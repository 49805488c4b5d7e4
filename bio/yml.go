package bio

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata describes the features of a dataset and which of them is the
label to predict.
*/
type Metadata struct {
	Label    string
	Features []*feature.Feature
}

/*
Feature returns the feature with the given name, or nil if the metadata
does not describe it.
*/
func (md *Metadata) Feature(name string) *feature.Feature {
	for _, f := range md.Features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

/*
ReadYMLMetadata takes a slice of bytes with a feature specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object containing a features property and
optionally a label property. The value for features should be an object with
a property for each feature with its name and either the name of a kind
(string, int or bool) for features whose values are not restricted, or a
list of valid values for them. The kind of a list of values is that of its
elements, so values YML would read as booleans or numbers must be quoted to
be taken as strings. Features keep the order in which they are declared.
*/
func ReadYMLMetadata(md []byte) (*Metadata, error) {
	metadata := struct {
		Label    string        `yaml:"label"`
		Features yaml.MapSlice `yaml:"features"`
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, zerr.Wrap(err, "parsing yml features")
	}
	if len(metadata.Features) == 0 {
		return nil, ErrNoFeatures
	}
	result := &Metadata{Label: metadata.Label}
	for _, item := range metadata.Features {
		fn := fmt.Sprintf("%v", item.Key)
		f, err := parseYMLFeature(fn, item.Value)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, fmt.Sprintf("feature %s", fn)), "feature", fn)
		}
		result.Features = append(result.Features, f)
	}
	if result.Label != "" && result.Feature(result.Label) == nil {
		return nil, zerr.With(zerr.Wrap(ErrUnknownFeature, fmt.Sprintf("label %s", result.Label)), "feature", result.Label)
	}
	return result, nil
}

func parseYMLFeature(name string, declaration interface{}) (*feature.Feature, error) {
	switch d := declaration.(type) {
	case string:
		kind, err := feature.ParseKind(d)
		if err != nil {
			return nil, err
		}
		return feature.New(name, kind, nil), nil
	case []interface{}:
		if len(d) == 0 {
			return nil, zerr.Wrap(ErrInvalidFeatureDeclaration, "empty list of values")
		}
		values := make([]feature.Value, 0, len(d))
		for _, raw := range d {
			v, err := feature.ValueOf(raw)
			if err != nil {
				return nil, err
			}
			if len(values) > 0 && v.Kind() != values[0].Kind() {
				return nil, zerr.Wrap(ErrInvalidFeatureDeclaration, fmt.Sprintf("value %v is %v but %v is %v", v, v.Kind(), values[0], values[0].Kind()))
			}
			values = append(values, v)
		}
		return feature.New(name, values[0].Kind(), values), nil
	}
	return nil, zerr.Wrap(ErrInvalidFeatureDeclaration, fmt.Sprintf("declaration of type %T", declaration))
}

/*
ReadYMLMetadataFromFile takes a filepath string, reads its contents and uses
ReadYMLMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadYMLMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("reading features yml file %s", filepath))
	}
	metadata, err := ReadYMLMetadata(md)
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("parsing features yml file %s", filepath))
	}
	return metadata, nil
}
