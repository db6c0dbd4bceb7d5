package client

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// State manages client-side persistent state: the last opened
// conversation, a local cache of per-conversation read markers, and
// first-run tracking. Message content is never persisted.
type State struct {
	db  *sql.DB
	dir string
}

// OpenState opens or creates the client state database.
func OpenState(path string) (*State, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// Client only needs one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	state := &State{db: db, dir: dir}

	if err := state.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return state, nil
}

func (s *State) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS Config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS ReadState (
			conversation_id TEXT PRIMARY KEY,
			last_read_ts TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	return err
}

// Close closes the state database.
func (s *State) Close() error {
	return s.db.Close()
}

// GetConfig retrieves a configuration value.
func (s *State) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM Config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetConfig stores a configuration value.
func (s *State) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO Config (key, value) VALUES (?, ?)
	`, key, value)
	return err
}

// GetLastConversation returns the conversation that was open when the
// client last exited, or "" if none.
func (s *State) GetLastConversation() string {
	id, _ := s.GetConfig("last_conversation")
	return id
}

// SetLastConversation remembers the currently open conversation.
func (s *State) SetLastConversation(conversationID string) error {
	return s.SetConfig("last_conversation", conversationID)
}

// GetReadTs returns the locally cached read marker for a conversation.
// Returns "" if the conversation has never been read.
func (s *State) GetReadTs(conversationID string) (string, error) {
	var ts string
	err := s.db.QueryRow(`
		SELECT last_read_ts FROM ReadState WHERE conversation_id = ?
	`, conversationID).Scan(&ts)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return ts, err
}

// SetReadTs caches the read marker for a conversation after a
// successful server-side mark.
func (s *State) SetReadTs(conversationID, ts string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO ReadState (conversation_id, last_read_ts, updated_at)
		VALUES (?, ?, ?)
	`, conversationID, ts, time.Now().Unix())
	return err
}

// GetFirstRun checks if this is the first time running the client.
func (s *State) GetFirstRun() bool {
	val, _ := s.GetConfig("first_run_complete")
	return val != "true"
}

// SetFirstRunComplete marks first run as complete.
func (s *State) SetFirstRunComplete() error {
	return s.SetConfig("first_run_complete", "true")
}

// GetStateDir returns the directory where state is stored.
func (s *State) GetStateDir() string {
	return s.dir
}
