package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

type rootCmdConfig struct {
	verbose       bool
	logFile       string
	logMaxSize    int
	logMaxBackups int
	logger        *zap.Logger
	logWriter     *lumberjack.Logger
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd, config := cliParser()
	defer config.closeLog()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func cliParser() (*cobra.Command, *rootCmdConfig) {
	config := &rootCmdConfig{logger: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:           "id3",
		Short:         "id3 grows decision trees with the ID3 algorithm",
		Long:          `A tool to grow decision trees from labeled tabular data using the ID3 algorithm`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := config.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			config.logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress and debug information")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to which logs are also written in JSON format, rotated by size")
	rootCmd.PersistentFlags().IntVar(&(config.logMaxSize), "log-max-size", 10, "size in megabytes at which the log file is rotated")
	rootCmd.PersistentFlags().IntVar(&(config.logMaxBackups), "log-max-backups", 3, "number of rotated log files to keep")
	rootCmd.AddCommand(versionCmd(), growCmd(config))
	return rootCmd, config
}
