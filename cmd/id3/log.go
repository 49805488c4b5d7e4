package main

import (
	"io"

	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger returns a logger writing human-readable entries to w and,
// when a log file is configured, JSON entries to that file. Only warnings
// and errors are logged unless the verbose flag is set.
func (c *rootCmdConfig) newLogger(w io.Writer) (*zap.Logger, error) {
	if c.logMaxSize < 0 || c.logMaxBackups < 0 {
		return nil, zerr.New("log-max-size and log-max-backups cannot be negative")
	}
	level := zapcore.WarnLevel
	if c.verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level),
	}
	if c.logFile != "" {
		c.logWriter = &lumberjack.Logger{
			Filename:   c.logFile,
			MaxSize:    c.logMaxSize,
			MaxBackups: c.logMaxBackups,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(c.logWriter), level))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// closeLog flushes the logger and closes the log file, if one was opened.
func (c *rootCmdConfig) closeLog() error {
	c.logger.Sync()
	if c.logWriter == nil {
		return nil
	}
	err := c.logWriter.Close()
	c.logWriter = nil
	return err
}
