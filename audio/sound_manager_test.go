package audio

import (
	"testing"
	"time"

	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/game"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(0.5)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayLineStart()
	sm.PlayLineHit()
	sm.PlaySplit()
	sm.PlayLevelComplete()
	sm.PlayGameOver()
	for typ := game.EventLevelStart; typ <= game.EventResume; typ++ {
		sm.HandleEvent(game.Event{Type: typ})
	}
	if sm.Play(SoundSplit) {
		t.Error("Expected Play to report nothing queued without a speaker")
	}
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(0.5)

	// Speaker initialization fails on machines without an audio device; the game runs silent then
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	sm.Cleanup()
}

func TestSoundManagerOperationsAfterCleanup(t *testing.T) {
	sm := NewSoundManager(0.5)
	_ = sm.Initialize()
	sm.Cleanup()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked after cleanup: %v", r)
		}
	}()

	sm.PlayLineHit()
	sm.PlayGameOver()
	sm.Cleanup()
}

func TestMuteToggle(t *testing.T) {
	sm := NewSoundManager(0.5)
	if sm.Muted() {
		t.Fatal("Expected unmuted by default")
	}
	if !sm.ToggleMute() || !sm.Muted() {
		t.Error("Expected muted after toggle")
	}
	if sm.ToggleMute() {
		t.Error("Expected unmuted after second toggle")
	}
	sm.SetMuted(true)
	if !sm.Muted() {
		t.Error("Expected SetMuted(true) to mute")
	}
}

func TestVolumeClamped(t *testing.T) {
	if v := NewSoundManager(3).Volume(); v != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", v)
	}
	if v := NewSoundManager(-1).Volume(); v != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", v)
	}
}

func TestAllowEnforcesGap(t *testing.T) {
	sm := NewSoundManager(0.5)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if !sm.allow(SoundSplit, now) {
		t.Fatal("Expected first play allowed")
	}
	if sm.allow(SoundSplit, now.Add(constants.MinSoundGap/2)) {
		t.Error("Expected repeat inside the gap rejected")
	}
	if !sm.allow(SoundLineHit, now.Add(constants.MinSoundGap/2)) {
		t.Error("Expected a different effect allowed")
	}
	if !sm.allow(SoundSplit, now.Add(constants.MinSoundGap)) {
		t.Error("Expected play allowed after the gap")
	}
	if sm.allow(SoundType(99), now) {
		t.Error("Expected unknown effect rejected")
	}
}
