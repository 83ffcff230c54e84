package models

import (
	"sync"
	"time"

	"namecorrector/domain/core"
	"namecorrector/domain/dataset"
	"namecorrector/domain/taxon"
)

// SessionState represents where a browser session is in the upload/correct flow
type SessionState string

const (
	SessionStateIdle       SessionState = "idle"
	SessionStateLoaded     SessionState = "loaded"
	SessionStateCorrecting SessionState = "correcting"
	SessionStateComplete   SessionState = "complete"
	SessionStateError      SessionState = "error"
)

// Session holds one browser's uploaded table and its latest correction result.
// It is shared between requests, so fields are read through the accessor
// methods.
type Session struct {
	ID          core.SessionID `json:"id"`
	State       SessionState   `json:"state"`
	Filename    string         `json:"filename"`
	Column      string         `json:"column"`
	Done        int            `json:"done"`
	Total       int            `json:"total"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`

	table   *dataset.Table
	records []taxon.CorrectionRecord
	merged  *dataset.Table
	export  *dataset.Export
	mu      sync.RWMutex
}

// SessionStatus is a point-in-time copy of the session's progress
type SessionStatus struct {
	ID       string       `json:"id"`
	State    SessionState `json:"state"`
	Filename string       `json:"filename"`
	Column   string       `json:"column"`
	Done     int          `json:"done"`
	Total    int          `json:"total"`
	Error    string       `json:"error,omitempty"`
}

// NewSession creates an empty session
func NewSession(id core.SessionID) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		State:     SessionStateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load replaces the uploaded table. Any previous result is discarded.
func (s *Session) Load(filename string, table *dataset.Table, column string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Filename = filename
	s.Column = column
	s.table = table
	s.records = nil
	s.merged = nil
	s.export = nil
	s.Done, s.Total = 0, 0
	s.Error = ""
	s.CompletedAt = nil
	s.State = SessionStateLoaded
	s.UpdatedAt = time.Now()
}

// StartCorrection records the chosen column and resets progress
func (s *Session) StartCorrection(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Column = column
	s.Done = 0
	if s.table != nil {
		s.Total = s.table.RowCount()
	}
	s.Error = ""
	s.State = SessionStateCorrecting
	s.UpdatedAt = time.Now()
}

// UpdateProgress records how many rows have been corrected
func (s *Session) UpdateProgress(done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Done = done
	s.Total = total
	s.UpdatedAt = time.Now()
}

// Complete stores a finished correction run
func (s *Session) Complete(records []taxon.CorrectionRecord, merged *dataset.Table, export *dataset.Export) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.merged = merged
	s.export = export
	s.Done = len(records)
	s.setState(SessionStateComplete)
}

// SetError sets an error state with message. The uploaded table is kept so
// the user can retry.
func (s *Session) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Error = err
	s.setState(SessionStateError)
}

func (s *Session) setState(state SessionState) {
	s.State = state
	now := time.Now()
	s.UpdatedAt = now
	if state == SessionStateComplete || state == SessionStateError {
		s.CompletedAt = &now
	}
}

// Table returns the uploaded table, or nil before an upload
func (s *Session) Table() *dataset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Result returns the latest correction run, or ok=false if none finished
func (s *Session) Result() (records []taxon.CorrectionRecord, merged *dataset.Table, export *dataset.Export, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.export == nil {
		return nil, nil, nil, false
	}
	return s.records, s.merged, s.export, true
}

// GetStatus returns a snapshot of the current session status
func (s *Session) GetStatus() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SessionStatus{
		ID:       s.ID.String(),
		State:    s.State,
		Filename: s.Filename,
		Column:   s.Column,
		Done:     s.Done,
		Total:    s.Total,
		Error:    s.Error,
	}
}
