package db

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampLayout has fixed millisecond precision so that string order
// matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is an ISO-8601 UTC instant.
type Timestamp string

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(TimestampLayout))
}

func (ts Timestamp) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, string(ts))
}

func (ts Timestamp) String() string {
	return string(ts)
}

type Counters struct {
	Account int64 `json:"account"`
	Folder  int64 `json:"folder"`
	Note    int64 `json:"note"`
}

// Data is the whole durable container. It is loaded and persisted as one unit.
type Data struct {
	Counters Counters  `json:"counters"`
	Accounts []Account `json:"accounts"`
	Folders  []Folder  `json:"folders"`
	Notes    []Note    `json:"notes"`
}

func NewData() *Data {
	return &Data{
		Counters: Counters{Account: 1, Folder: 1, Note: 1},
		Accounts: []Account{},
		Folders:  []Folder{},
		Notes:    []Note{},
	}
}

type Account struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Credential string    `json:"credential"`
	CreatedAt  Timestamp `json:"created_at"`
}

// PublicAccount is the part of an Account that may leave the store.
type PublicAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (a *Account) Public() *PublicAccount {
	return &PublicAccount{ID: a.ID, Username: a.Username, Email: a.Email}
}

type Folder struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_id"`
	CreatedAt Timestamp `json:"created_at"`
}

// FolderNode is a folder positioned in a depth-first walk of its owner's tree.
type FolderNode struct {
	Folder
	Depth int `json:"depth"`
}

type Note struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	FolderID  *int64    `json:"folder_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImagePath string    `json:"image_path"`
	Deadline  *string   `json:"deadline"`
	Pinned    bool      `json:"pinned"`
	Deleted   bool      `json:"deleted"`
	Tags      []string  `json:"tags"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Overdue reports whether the note has a deadline strictly before now.
func (n *Note) Overdue(now time.Time) bool {
	if n.Deadline == nil {
		return false
	}
	deadline, err := parseDeadline(*n.Deadline)
	if err != nil {
		return false
	}
	return deadline.Before(now)
}

// Preview flattens the content onto one line and cuts it to max runes.
func (n *Note) Preview(max int) string {
	s := strings.ReplaceAll(n.Content, "\n", " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// NoteView is the single-note read projection: tags are rendered as one string.
type NoteView struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	FolderID  *int64    `json:"folder_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImagePath string    `json:"image_path"`
	Deadline  *string   `json:"deadline"`
	Pinned    bool      `json:"pinned"`
	Deleted   bool      `json:"deleted"`
	Tags      string    `json:"tags"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (n *Note) View() *NoteView {
	return &NoteView{
		ID:        n.ID,
		OwnerID:   n.OwnerID,
		FolderID:  n.FolderID,
		Title:     n.Title,
		Content:   n.Content,
		ImagePath: n.ImagePath,
		Deadline:  n.Deadline,
		Pinned:    n.Pinned,
		Deleted:   n.Deleted,
		Tags:      JoinTags(n.Tags),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NoteFields carries every editable field of a note. Tags is the raw
// comma-separated input.
type NoteFields struct {
	Title     string
	Content   string
	FolderID  *int64
	ImagePath string
	Deadline  string
	Pinned    bool
	Tags      string
}

// Fields turns a loaded note back into the editable field set, so a caller
// can change one value and save the rest unchanged.
func (v *NoteView) Fields() NoteFields {
	fields := NoteFields{
		Title:     v.Title,
		Content:   v.Content,
		FolderID:  v.FolderID,
		ImagePath: v.ImagePath,
		Pinned:    v.Pinned,
		Tags:      v.Tags,
	}
	if v.Deadline != nil {
		fields.Deadline = *v.Deadline
	}
	return fields
}

type NoteFilter struct {
	FolderID *int64
	Search   string
}
