package db

import (
	"slices"
	"strings"
	"time"

	"github.com/Dezmoral/Askar/internal/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

const DeadlineLayout = "2006-01-02"

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(DeadlineLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ListNotes returns the owner's notes that are not deleted, optionally
// limited to one folder and to notes whose title, content or tags contain
// the search text. Pinned notes come first, then most recently updated.
func (db *DB) ListNotes(ownerID int64, filter NoteFilter) []Note {
	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	lower := cases.Lower(collationTag)
	needle := lower.String(strings.TrimSpace(filter.Search))

	notes := []Note{}
	for _, n := range data.Notes {
		if n.OwnerID != ownerID || n.Deleted {
			continue
		}
		if filter.FolderID != nil && (n.FolderID == nil || *n.FolderID != *filter.FolderID) {
			continue
		}
		if needle != "" {
			haystack := n.Title + "\n" + n.Content + "\n" + strings.Join(n.Tags, ",")
			if !strings.Contains(lower.String(haystack), needle) {
				continue
			}
		}
		notes = append(notes, n)
	}

	slices.SortStableFunc(notes, func(a, b Note) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return strings.Compare(string(b.UpdatedAt), string(a.UpdatedAt))
	})
	return notes
}

// CreateNote adds an empty note and returns its id. folderID is stored as
// given; notes hold a weak folder reference and it is not checked against
// the owner's folders.
func (db *DB) CreateNote(ownerID int64, folderID *int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	now := db.timestamp()
	note := Note{
		ID:        nextID(&data.Counters.Note),
		OwnerID:   ownerID,
		FolderID:  copyID(folderID),
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	data.Notes = append(data.Notes, note)

	if err := db.persist(data); err != nil {
		return 0, err
	}

	db.logger.Debug("note created", zap.Int64("note_id", note.ID), zap.Int64("owner_id", ownerID))
	return note.ID, nil
}

// GetNote returns nil unless the note exists and belongs to ownerID.
// Deleted notes are still returned.
func (db *DB) GetNote(ownerID, noteID int64) *NoteView {
	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	if n := findNote(data, ownerID, noteID); n != nil {
		return n.View()
	}
	return nil
}

// SaveNote overwrites every editable field of the note. A blank title is
// replaced by the UntitledNote text of the language active at save time, and
// that text is what gets stored. FolderID is stored unchecked, as in
// CreateNote.
func (db *DB) SaveNote(ownerID, noteID int64, fields NoteFields) error {
	t := i18n.T()

	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	note := findNote(data, ownerID, noteID)
	if note == nil {
		return &NotFoundError{Message: t.NoteNotFound}
	}

	var deadline *string
	if d := strings.TrimSpace(fields.Deadline); d != "" {
		if _, err := parseDeadline(d); err != nil {
			return &ValidationError{Message: t.InvalidDeadline}
		}
		deadline = &d
	}

	title := strings.TrimSpace(fields.Title)
	if title == "" {
		title = t.UntitledNote
	}

	note.Title = title
	note.Content = fields.Content
	note.FolderID = copyID(fields.FolderID)
	note.ImagePath = strings.TrimSpace(fields.ImagePath)
	note.Deadline = deadline
	note.Pinned = fields.Pinned
	note.Tags = ParseTags(fields.Tags)
	note.UpdatedAt = db.timestamp()

	return db.persist(data)
}

// DeleteNote marks the note deleted. Deleting twice is not an error.
func (db *DB) DeleteNote(ownerID, noteID int64) error {
	t := i18n.T()

	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	note := findNote(data, ownerID, noteID)
	if note == nil {
		return &NotFoundError{Message: t.NoteNotFound}
	}

	note.Deleted = true
	note.UpdatedAt = db.timestamp()

	if err := db.persist(data); err != nil {
		return err
	}

	db.logger.Debug("note deleted", zap.Int64("note_id", noteID), zap.Int64("owner_id", ownerID))
	return nil
}

func findNote(data *Data, ownerID, noteID int64) *Note {
	for i := range data.Notes {
		if data.Notes[i].ID == noteID && data.Notes[i].OwnerID == ownerID {
			return &data.Notes[i]
		}
	}
	return nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
