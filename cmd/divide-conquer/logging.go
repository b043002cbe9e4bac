package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/op/go-logging"

	"github.com/lixenwraith/divide-conquer/constants"
)

var log = logging.MustGetLogger("divide-conquer")

const (
	logDir      = constants.LogDir
	logFileName = constants.LogFileName
	maxLogSize  = constants.MaxLogSize
)

// logFormat prints time, module, level and the message; the terminal is owned by tcell so output goes to a file
const logFormat = `%{time:15:04:05.000} %{module} %{level:.4s} %{shortfile} %{message}`

// setupLogging routes every go-logging module to logs/divide-conquer.log when debug is set and discards otherwise
// Returns the open log file for the caller to close, nil when disabled or on failure
func setupLogging(debug bool) *os.File {
	if !debug {
		logging.SetBackend(logging.NewLogBackend(io.Discard, "", 0))
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		logging.SetBackend(logging.NewLogBackend(io.Discard, "", 0))
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotateErr = os.Rename(logPath, rotatedLogPath(time.Now()))
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.SetBackend(logging.NewLogBackend(io.Discard, "", 0))
		return nil
	}

	backend := logging.NewBackendFormatter(
		logging.NewLogBackend(f, "", 0),
		logging.MustStringFormatter(logFormat),
	)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(logging.DEBUG, "")
	// Badger is chatty at info
	leveled.SetLevel(logging.WARNING, "scores")
	logging.SetBackend(leveled)

	log.Infof("logging started, pid %d", os.Getpid())
	if rotateErr != nil {
		log.Warningf("log rotation failed, appending: %v", rotateErr)
	}
	return f
}

// rotatedLogPath names the archive of an oversized log
var rotatedLogPath = func(now time.Time) string {
	return filepath.Join(logDir, fmt.Sprintf("divide-conquer-%s.log", now.Format("20060102-150405")))
}
