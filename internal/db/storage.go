package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNoData is returned by a Storage when nothing has been stored yet
// (missing or empty target).
var ErrNoData = errors.New("no stored data")

// CorruptError is returned by a Storage whose content cannot be decoded.
type CorruptError struct {
	Backup string // copy of the unreadable content, if one was kept
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Backup != "" {
		return fmt.Sprintf("store is corrupt (copy kept at %s): %v", e.Backup, e.Err)
	}
	return fmt.Sprintf("store is corrupt: %v", e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Storage is the durable side of the record store. Load reads the whole
// container; Persist overwrites it in full.
type Storage interface {
	Load() (*Data, error)
	Persist(data *Data) error
}

func encodeData(data *Data) ([]byte, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode store: %w", err)
	}
	return raw, nil
}

func decodeData(raw []byte) (*Data, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrNoData
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &CorruptError{Err: err}
	}
	normalize(&data)
	return &data, nil
}

// normalize fills in whatever an older or hand-edited file left out.
func normalize(data *Data) {
	if data.Accounts == nil {
		data.Accounts = []Account{}
	}
	if data.Folders == nil {
		data.Folders = []Folder{}
	}
	if data.Notes == nil {
		data.Notes = []Note{}
	}

	var maxAccount, maxFolder, maxNote int64
	for _, a := range data.Accounts {
		maxAccount = max(maxAccount, a.ID)
	}
	for _, f := range data.Folders {
		maxFolder = max(maxFolder, f.ID)
	}
	for i := range data.Notes {
		if data.Notes[i].Tags == nil {
			data.Notes[i].Tags = []string{}
		}
		maxNote = max(maxNote, data.Notes[i].ID)
	}

	// ids are never reused, even if the counters were lost
	data.Counters.Account = max(data.Counters.Account, maxAccount+1, 1)
	data.Counters.Folder = max(data.Counters.Folder, maxFolder+1, 1)
	data.Counters.Note = max(data.Counters.Note, maxNote+1, 1)
}

// MemoryStorage keeps the encoded container in memory. It uses the same
// codec as the durable adapters.
type MemoryStorage struct {
	mu     sync.Mutex
	raw    []byte
	writes int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// NewMemoryStorageFrom starts from raw bytes, which need not be valid.
func NewMemoryStorageFrom(raw []byte) *MemoryStorage {
	return &MemoryStorage{raw: append([]byte(nil), raw...)}
}

func (s *MemoryStorage) Load() (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeData(s.raw)
}

func (s *MemoryStorage) Persist(data *Data) error {
	raw, err := encodeData(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.writes++
	return nil
}

// Bytes returns a copy of the stored document.
func (s *MemoryStorage) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.raw...)
}

// Writes counts successful Persist calls.
func (s *MemoryStorage) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
