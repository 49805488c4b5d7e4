package bio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/id3/bio"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTree() *tree.Tree {
	return tree.New("Play", &tree.Internal{
		Feature: "Weather",
		Samples: 4,
		Branches: []tree.Branch{
			{Value: feature.StringValue("Sunny"), Node: &tree.Leaf{Value: feature.StringValue("Yes"), Samples: 2}},
			{Value: feature.StringValue("Rainy"), Node: &tree.Leaf{Value: feature.StringValue("No"), Samples: 2}},
		},
	})
}

func TestWriteTree(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{bio.TextFormat, "Decision Tree:\nWeather [4]\n|__{ Weather is Sunny }\n|  Play is Yes [2]\n|__{ Weather is Rainy }\n   Play is No [2]\n"},
		{bio.JSONFormat, "{\n  \"Weather\": {\n    \"Sunny\": \"Yes\",\n    \"Rainy\": \"No\"\n  }\n}\n"},
		{bio.RulesFormat, "Weather is Sunny => Play is Yes\nWeather is Rainy => Play is No\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, bio.WriteTree(&buf, weatherTree(), tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteTreeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := bio.WriteTree(&buf, weatherTree(), "xml")
	assert.ErrorIs(t, err, bio.ErrUnknownFormat)
	assert.Empty(t, buf.String())
	assert.NoError(t, bio.ValidFormat(bio.RulesFormat))
}

func TestWriteTreeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, bio.WriteTreeToFile(path, weatherTree(), bio.RulesFormat))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Weather is Sunny => Play is Yes\nWeather is Rainy => Play is No\n", string(b))
}
