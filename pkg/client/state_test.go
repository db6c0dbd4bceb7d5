package client

import (
	"path/filepath"
	"testing"
)

func openTestState(t *testing.T) *State {
	t.Helper()
	state, err := OpenState(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenState() error: %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestStateConfigRoundTrip(t *testing.T) {
	s := openTestState(t)

	val, err := s.GetConfig("missing")
	if err != nil {
		t.Fatalf("GetConfig() error: %v", err)
	}
	if val != "" {
		t.Errorf("GetConfig(missing) = %q, want empty", val)
	}

	if err := s.SetConfig("key", "value"); err != nil {
		t.Fatalf("SetConfig() error: %v", err)
	}
	val, err = s.GetConfig("key")
	if err != nil {
		t.Fatalf("GetConfig() error: %v", err)
	}
	if val != "value" {
		t.Errorf("GetConfig(key) = %q, want %q", val, "value")
	}

	// Overwrite
	if err := s.SetConfig("key", "updated"); err != nil {
		t.Fatalf("SetConfig() error: %v", err)
	}
	val, _ = s.GetConfig("key")
	if val != "updated" {
		t.Errorf("GetConfig(key) = %q, want %q", val, "updated")
	}
}

func TestStateLastConversation(t *testing.T) {
	s := openTestState(t)

	if got := s.GetLastConversation(); got != "" {
		t.Errorf("GetLastConversation() = %q, want empty", got)
	}
	if err := s.SetLastConversation("C1"); err != nil {
		t.Fatalf("SetLastConversation() error: %v", err)
	}
	if got := s.GetLastConversation(); got != "C1" {
		t.Errorf("GetLastConversation() = %q, want %q", got, "C1")
	}
}

func TestStateReadTs(t *testing.T) {
	s := openTestState(t)

	ts, err := s.GetReadTs("C1")
	if err != nil {
		t.Fatalf("GetReadTs() error: %v", err)
	}
	if ts != "" {
		t.Errorf("GetReadTs() = %q for never-read conversation, want empty", ts)
	}

	if err := s.SetReadTs("C1", "123.456"); err != nil {
		t.Fatalf("SetReadTs() error: %v", err)
	}
	ts, _ = s.GetReadTs("C1")
	if ts != "123.456" {
		t.Errorf("GetReadTs() = %q, want %q", ts, "123.456")
	}

	// Marker advances on re-mark
	if err := s.SetReadTs("C1", "789.012"); err != nil {
		t.Fatalf("SetReadTs() error: %v", err)
	}
	ts, _ = s.GetReadTs("C1")
	if ts != "789.012" {
		t.Errorf("GetReadTs() = %q, want %q", ts, "789.012")
	}
}

func TestStateFirstRun(t *testing.T) {
	s := openTestState(t)

	if !s.GetFirstRun() {
		t.Error("GetFirstRun() = false on fresh database")
	}
	if err := s.SetFirstRunComplete(); err != nil {
		t.Fatalf("SetFirstRunComplete() error: %v", err)
	}
	if s.GetFirstRun() {
		t.Error("GetFirstRun() = true after SetFirstRunComplete")
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenState(path)
	if err != nil {
		t.Fatalf("OpenState() error: %v", err)
	}
	if err := s.SetReadTs("C1", "1"); err != nil {
		t.Fatalf("SetReadTs() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s, err = OpenState(path)
	if err != nil {
		t.Fatalf("OpenState() reopen error: %v", err)
	}
	defer s.Close()

	ts, err := s.GetReadTs("C1")
	if err != nil {
		t.Fatalf("GetReadTs() error: %v", err)
	}
	if ts != "1" {
		t.Errorf("GetReadTs() = %q after reopen, want %q", ts, "1")
	}
}
