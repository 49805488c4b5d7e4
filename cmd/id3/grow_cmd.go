package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/bio"
	"github.com/pbanos/id3/bio/mongo"
	biosql "github.com/pbanos/id3/bio/sql"
	"github.com/pbanos/id3/bio/sql/pgadapter"
	"github.com/pbanos/id3/bio/sql/sqlite3adapter"
	"github.com/pbanos/id3/cache"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/watch"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const watchCacheSize = 16

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	output        string
	label         string
	format        string
	table         string
	collection    string
	maxDBConns    int
	watch         bool
	debounce      time.Duration
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to predict its label column.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate()
			if err != nil {
				return err
			}
			if config.dataInput == "" {
				config.dataInput, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter file path/name: ")
				if err != nil {
					return err
				}
				if err = config.Validate(); err != nil {
					return err
				}
			}
			var features []*feature.Feature
			label := config.label
			if config.metadataInput != "" {
				md, err := bio.ReadYMLMetadataFromFile(config.metadataInput)
				if err != nil {
					return err
				}
				features = md.Features
				if label == "" {
					label = md.Label
				}
			}
			if config.watch {
				return config.watchAndGrow(cmd, features, label)
			}
			ds, err := config.trainingSet(cmd.Context(), cmd.InOrStdin(), features, label)
			if err != nil {
				return err
			}
			t, err := config.grow(ds)
			if err != nil {
				return err
			}
			return config.outputTree(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV or SQLite3 (.db, .sqlite, .sqlite3) file, a PostgreSQL or MongoDB connection URL, or - for CSV on STDIN (prompted for when not given)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features on the input (required for MongoDB)")
	cmd.Flags().StringVarP(&(config.label), "label", "l", "", "name of the feature the generated tree should predict (defaults to the metadata label or the last column)")
	cmd.Flags().StringVarP(&(config.format), "format", "f", bio.TextFormat, "format in which the tree is written: text, json or rules")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written (defaults to STDOUT)")
	cmd.Flags().StringVar(&(config.table), "table", "samples", "table to read from SQL databases")
	cmd.Flags().StringVar(&(config.collection), "collection", mongo.DefaultCollection, "collection to read from MongoDB databases")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.Flags().BoolVarP(&(config.watch), "watch", "w", false, "grow the tree again every time the input file changes, until interrupted")
	cmd.Flags().DurationVar(&(config.debounce), "debounce", 100*time.Millisecond, "time to wait for further changes to the input file before growing the tree again")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if err := bio.ValidFormat(gcc.format); err != nil {
		return err
	}
	if gcc.maxDBConns < 0 {
		return zerr.New("max-db-conns cannot be negative")
	}
	if gcc.watch {
		if gcc.dataInput == "-" || isURL(gcc.dataInput) {
			return zerr.New("watch requires the input to be a file")
		}
		if gcc.debounce <= 0 {
			return zerr.New("debounce must be positive")
		}
	}
	return nil
}

func prompt(r io.Reader, w io.Writer, message string) (string, error) {
	fmt.Fprint(w, message)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", zerr.Wrap(err, "reading file path")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", zerr.New("no file path given")
	}
	return line, nil
}

func isURL(input string) bool {
	return isPostgreSQL(input) || isMongoDB(input)
}

func isPostgreSQL(input string) bool {
	return strings.HasPrefix(input, "postgres://") || strings.HasPrefix(input, "postgresql://")
}

func isMongoDB(input string) bool {
	return strings.HasPrefix(input, "mongodb://")
}

func isSQLite3(input string) bool {
	lower := strings.ToLower(input)
	for _, suffix := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func (gcc *growCmdConfig) trainingSet(ctx context.Context, stdin io.Reader, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	switch {
	case gcc.dataInput == "-":
		gcc.logger.Debug("reading CSV training set from standard input")
		ds, err := bio.ReadCSVDataset(stdin, features, label)
		if err != nil {
			return nil, zerr.Wrap(err, "parsing CSV from standard input")
		}
		return ds, nil
	case isPostgreSQL(gcc.dataInput):
		return gcc.postgreSQLTrainingSet(ctx, features, label)
	case isMongoDB(gcc.dataInput):
		return gcc.mongoDBTrainingSet(ctx, features, label)
	case isSQLite3(gcc.dataInput):
		return gcc.sqlite3TrainingSet(ctx, features, label)
	}
	gcc.logger.Debug("reading CSV training set", zap.String("input", gcc.dataInput))
	return bio.ReadCSVDatasetFromFilePath(gcc.dataInput, features, label)
}

func (gcc *growCmdConfig) sqlite3TrainingSet(ctx context.Context, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	gcc.logger.Debug("opening SQLite3 training set", zap.String("input", gcc.dataInput), zap.String("table", gcc.table))
	adapter, err := sqlite3adapter.New(ctx, gcc.dataInput, gcc.maxDBConns)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()
	return biosql.ReadDataset(ctx, adapter, gcc.table, features, label)
}

func (gcc *growCmdConfig) postgreSQLTrainingSet(ctx context.Context, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	gcc.logger.Debug("opening PostgreSQL training set", zap.String("table", gcc.table))
	adapter, err := pgadapter.New(ctx, gcc.dataInput, gcc.maxDBConns)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()
	return biosql.ReadDataset(ctx, adapter, gcc.table, features, label)
}

func (gcc *growCmdConfig) mongoDBTrainingSet(ctx context.Context, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	gcc.logger.Debug("opening MongoDB training set", zap.String("collection", gcc.collection))
	session, err := mongo.Dial(ctx, gcc.dataInput)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return mongo.ReadDataset(ctx, session, gcc.collection, features, label)
}

func (gcc *growCmdConfig) grow(ds *dataset.Dataset) (*tree.Tree, error) {
	gcc.logger.Info("growing tree",
		zap.Int("samples", ds.Count()),
		zap.Int("attributes", len(ds.Attributes())),
		zap.String("label", ds.Label()))
	start := time.Now()
	t, err := id3.Grow(ds)
	if err != nil {
		return nil, zerr.Wrap(err, "growing the tree")
	}
	gcc.logger.Info("tree grown",
		zap.Int("depth", t.Depth()),
		zap.Int("leaves", t.LeafCount()),
		zap.Duration("elapsed", time.Since(start)))
	return t, nil
}

func (gcc *growCmdConfig) outputTree(stdout io.Writer, t *tree.Tree) error {
	if gcc.output == "" {
		return bio.WriteTree(stdout, t, gcc.format)
	}
	return bio.WriteTreeToFile(gcc.output, t, gcc.format)
}

/*
watchAndGrow grows and writes the tree, then does it again every time the
input file changes until the command's context is done or the process is
interrupted. Failures to read the input or grow the tree are logged and
the previous output is kept, so that a file being edited can be fixed.
Inputs whose content was already seen are served from a cache.
*/
func (gcc *growCmdConfig) watchAndGrow(cmd *cobra.Command, features []*feature.Feature, label string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	trees, err := cache.New(watchCacheSize)
	if err != nil {
		return err
	}
	w, err := watch.New(gcc.dataInput, gcc.debounce)
	if err != nil {
		return err
	}
	changes := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx, changes)
	})
	g.Go(func() error {
		for {
			t, err := gcc.growFile(gctx, trees, features, label)
			if err == nil {
				err = gcc.outputTree(cmd.OutOrStdout(), t)
			}
			if err != nil {
				gcc.logger.Error("growing tree from changed input", zap.String("input", gcc.dataInput), zap.Error(err))
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-changes:
				gcc.logger.Debug("input changed", zap.String("input", gcc.dataInput))
			}
		}
	})
	err = g.Wait()
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (gcc *growCmdConfig) growFile(ctx context.Context, trees *cache.Trees, features []*feature.Feature, label string) (*tree.Tree, error) {
	b, err := os.ReadFile(gcc.dataInput)
	if err != nil {
		return nil, zerr.Wrap(err, "reading training set")
	}
	key := cache.KeyFor(b, label)
	if t, ok := trees.Get(key); ok {
		gcc.logger.Debug("input seen before, reusing tree", zap.Uint64("digest", key.Digest))
		return t, nil
	}
	var ds *dataset.Dataset
	if isSQLite3(gcc.dataInput) {
		ds, err = gcc.sqlite3TrainingSet(ctx, features, label)
	} else {
		ds, err = bio.ReadCSVDataset(bytes.NewReader(b), features, label)
	}
	if err != nil {
		return nil, err
	}
	t, err := gcc.grow(ds)
	if err != nil {
		return nil, err
	}
	trees.Add(key, t)
	return t, nil
}
