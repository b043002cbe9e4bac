package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/op/go-logging"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}

	log.Info("discarded message")
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory when debug=false")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Expected log file to be created")
	}

	log.Info("Test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer os.RemoveAll(logDir)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)

	largeFile, err := os.Create(logPath)
	if err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}
	if _, err := largeFile.Write(make([]byte, maxLogSize+1)); err != nil {
		t.Fatalf("Failed to write to log file: %v", err)
	}
	largeFile.Close()

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_ScoresModuleAtWarning(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	if got := logging.GetLevel("scores"); got != logging.WARNING {
		t.Errorf("Expected scores level WARNING, got %v", got)
	}
	if got := logging.GetLevel("divide-conquer"); got != logging.DEBUG {
		t.Errorf("Expected app level DEBUG, got %v", got)
	}

	scoresLog := logging.MustGetLogger("scores")
	scoresLog.Info("badger housekeeping")
	scoresLog.Warning("badger value log full")
	log.Debug("frame drawn")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "badger housekeeping") {
		t.Error("Expected scores info to be filtered")
	}
	for _, want := range []string{"scores WARN", "badger value log full", "divide-conquer DEBU", "frame drawn"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in log:\n%s", want, out)
		}
	}
}

func TestSetupLogging_RotationFailureLogged(t *testing.T) {
	defer os.RemoveAll(logDir)

	// A non-empty directory in the archive's place makes the rename fail
	blocker := filepath.Join(logDir, "blocked.log")
	if err := os.MkdirAll(filepath.Join(blocker, "keep"), 0755); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}
	orig := rotatedLogPath
	rotatedLogPath = func(time.Time) string { return blocker }
	defer func() { rotatedLogPath = orig }()

	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write log file: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data[maxLogSize+1:]), "log rotation failed") {
		t.Error("Expected rotation failure in the log")
	}
}
