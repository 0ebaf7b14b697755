/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Microsoft Corporation. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// SWFDEBUG_LOG_FILE names a file that receives JSON formatted logs at debug level.
	SWFDEBUG_LOG_FILE = "SWFDEBUG_LOG_FILE"

	verbosityFlagName      = "verbosity"
	verbosityFlagShortName = "v"
	defaultLevel           = zapcore.ErrorLevel
)

type Logger struct {
	logr.Logger
	name        string
	atomicLevel zap.AtomicLevel
	flush       func()
}

// New creates a logger writing human readable output to stderr.
func New(name string) *Logger {
	return NewWithOutput(name, zapcore.Lock(os.Stderr))
}

// NewWithOutput creates a logger writing console formatted output to out.
// Only errors are written until the level is raised.
func NewWithOutput(name string, out zapcore.WriteSyncer) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	consoleAtomicLevel := zap.NewAtomicLevelAt(defaultLevel)
	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, out, consoleAtomicLevel)}

	var logFile *os.File
	var logFileErr error
	if path, found := os.LookupEnv(SWFDEBUG_LOG_FILE); found && path != "" {
		if logCore, file, err := newFileCore(path, encoderConfig); err != nil {
			logFileErr = err
		} else {
			cores = append(cores, logCore)
			logFile = file
		}
	}

	zapLogger := zap.New(zapcore.NewTee(cores...))
	closeFile := sync.OnceFunc(func() {
		_ = logFile.Close()
	})
	logger := zapr.NewLogger(zapLogger).WithName(name)

	if logFileErr != nil {
		logger.Error(logFileErr, "failed to enable log file output")
	}

	return &Logger{
		Logger:      logger,
		name:        name,
		atomicLevel: consoleAtomicLevel,
		flush: func() {
			_ = zapLogger.Sync()
			if logFile != nil {
				closeFile()
			}
		},
	}
}

func newFileCore(path string, encoderConfig zapcore.EncoderConfig) (zapcore.Core, *os.File, error) {
	logOutput, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Machine readable
	logEncoder := zapcore.NewJSONEncoder(encoderConfig)
	return zapcore.NewCore(logEncoder, zapcore.AddSync(logOutput), zap.NewAtomicLevelAt(zap.DebugLevel)), logOutput, nil
}

func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) SetLevel(level zapcore.Level) {
	l.atomicLevel.SetLevel(level)
}

func (l *Logger) Level() zapcore.Level {
	return l.atomicLevel.Level()
}

// Flush syncs buffered output and closes the SWFDEBUG_LOG_FILE file, if any.
// Call it once logging is done.
func (l *Logger) Flush() {
	l.flush()
}

// AddLevelFlag adds the verbosity flag controlling console log output.
func (l *Logger) AddLevelFlag(fs *pflag.FlagSet) {
	levelVal := NewLevelFlagValue(func(level zapcore.Level) {
		l.SetLevel(level)
	})
	fs.VarP(&levelVal, verbosityFlagName, verbosityFlagShortName, "Logging verbosity level (e.g. -v=debug). Can be one of 'debug', 'info', or 'error', or a positive integer for increasing levels of debug verbosity.")
}
