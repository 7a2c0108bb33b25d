package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// Store is the append-only CSV event log. The file is created with its
// header row on first write and tolerates being deleted between runs.
// A mutex serializes writers within this process; cross-process locking
// is out of scope (single-instance deployment).
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store writing to the given file path. The file is
// not touched until the first Record call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store file location, for raw export.
func (s *Store) Path() string {
	return s.path
}

// validate rejects events that would corrupt the log.
func validate(e Event) error {
	if e.UserID == "" {
		return &StoreError{Kind: ErrOther, Cause: errors.New("user id required")}
	}
	if !e.Type.Valid() {
		return &StoreError{Kind: ErrOther, Cause: fmt.Errorf("unknown event type %q", e.Type)}
	}
	return nil
}

// Record appends one event. Open-and-append discipline: the file is
// opened O_APPEND for every write so earlier rows are never truncated.
func (s *Store) Record(e Event) error {
	if err := validate(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recordLocked(e)
}

// RecordOnce appends the event only when the user has no event of its
// type on record yet, and reports whether it wrote. The check and the
// append share one critical section, so two in-process submissions from
// the same visitor cannot both record an activation.
func (s *Store) RecordOnce(e Event) (bool, error) {
	if err := validate(e); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readAllLocked()
	if err != nil {
		return false, err
	}
	for _, have := range events {
		if have.UserID == e.UserID && have.Type == e.Type {
			return false, nil
		}
	}

	if err := s.recordLocked(e); err != nil {
		return false, err
	}
	return true, nil
}

// recordLocked writes one row; the caller holds the mutex.
func (s *Store) recordLocked(e Event) error {
	// Stat before opening so we know whether the header is still needed.
	writeHeader := false
	if fi, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		writeHeader = true
	} else if err != nil {
		return storeErr(err)
	} else if fi.Size() == 0 {
		writeHeader = true
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return storeErr(err)
	}
	defer file.Close()

	if writeHeader {
		if _, err := file.WriteString(csvHeader + "\n"); err != nil {
			return storeErr(err)
		}
	}

	w := csv.NewWriter(file)
	if err := w.Write(e.row()); err != nil {
		return storeErr(err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return storeErr(err)
	}

	return nil
}

// ReadAll returns every event in insertion order. A missing file is an
// empty history, not an error. Rows that fail to parse (a manually edited
// file) are skipped rather than failing the whole read.
func (s *Store) ReadAll() ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAllLocked()
}

// readAllLocked scans the file; the caller holds the mutex.
func (s *Store) readAllLocked() ([]Event, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var events []Event
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, storeErr(err)
		}
		if first {
			first = false
			if len(record) > 0 && record[0] == "user_id" {
				continue
			}
		}
		e, err := eventFromRow(record)
		if err != nil {
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

// Export streams the store file unmodified. When no event has been
// recorded yet, only the header row is written so the download is still
// a valid CSV.
func (s *Store) Export(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			_, werr := io.WriteString(w, csvHeader+"\n")
			if werr != nil {
				return storeErr(werr)
			}
			return nil
		}
		return storeErr(err)
	}
	defer file.Close()

	if _, err := io.Copy(w, file); err != nil {
		return storeErr(err)
	}
	return nil
}

// Ping verifies the store location is writable. Used by the readiness
// endpoint; it creates the file if absent, like a first Record would.
func (s *Store) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return storeErr(err)
	}
	return file.Close()
}
