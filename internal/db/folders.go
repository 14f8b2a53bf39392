package db

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/Dezmoral/Askar/internal/i18n"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const MaxFolderNameLength = 255

// collationTag orders folder names and folds search text. Russian tailoring
// sorts Cyrillic correctly and keeps Latin in root order.
var collationTag = language.Russian

// scriptRank groups names by their first character the way the Russian locale
// does: names without a leading letter, then Cyrillic, then Latin, then
// other scripts. x/text/collate cannot reorder scripts itself.
func scriptRank(name string) int {
	for _, r := range name {
		switch {
		case !unicode.IsLetter(r):
			return 0
		case unicode.Is(unicode.Cyrillic, r):
			return 1
		case unicode.Is(unicode.Latin, r):
			return 2
		default:
			return 3
		}
	}
	return 0
}

// ListFolders returns the owner's folders ordered by name.
func (db *DB) ListFolders(ownerID int64) []Folder {
	db.mu.Lock()
	defer db.mu.Unlock()

	return ownedFolders(db.load(), ownerID)
}

func ownedFolders(data *Data, ownerID int64) []Folder {
	folders := []Folder{}
	for _, f := range data.Folders {
		if f.OwnerID == ownerID {
			folders = append(folders, f)
		}
	}
	sortFolders(folders)
	return folders
}

func sortFolders(folders []Folder) {
	c := collate.New(collationTag)
	slices.SortStableFunc(folders, func(a, b Folder) int {
		if r := cmp.Compare(scriptRank(a.Name), scriptRank(b.Name)); r != 0 {
			return r
		}
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// CreateFolder adds a folder under parentID, or at the root when parentID is
// nil. The parent must be one of the owner's folders.
func (db *DB) CreateFolder(ownerID int64, name string, parentID *int64) (*Folder, error) {
	t := i18n.T()
	cleanName := strings.TrimSpace(name)

	err := validate(cleanName,
		validation.Required.Error(t.FolderNameRequired),
		validation.RuneLength(1, MaxFolderNameLength).Error(t.FolderNameTooLong),
	)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	if parentID != nil {
		found := false
		for _, f := range data.Folders {
			if f.ID == *parentID && f.OwnerID == ownerID {
				found = true
				break
			}
		}
		if !found {
			return nil, &ValidationError{Message: t.ParentFolderNotFound}
		}
	}

	folder := Folder{
		ID:        nextID(&data.Counters.Folder),
		OwnerID:   ownerID,
		Name:      cleanName,
		ParentID:  copyID(parentID),
		CreatedAt: db.timestamp(),
	}
	data.Folders = append(data.Folders, folder)

	if err := db.persist(data); err != nil {
		return nil, err
	}

	db.logger.Debug("folder created",
		zap.Int64("folder_id", folder.ID),
		zap.Int64("owner_id", ownerID),
	)
	return &folder, nil
}

// FolderTree walks the owner's folders depth-first from the roots, siblings
// in name order. Folders whose parent is gone are treated as roots, and a
// folder is never emitted twice even if parent links form a loop.
func (db *DB) FolderTree(ownerID int64) []FolderNode {
	db.mu.Lock()
	defer db.mu.Unlock()

	return buildTree(ownedFolders(db.load(), ownerID))
}

func buildTree(folders []Folder) []FolderNode {
	exists := make(map[int64]bool, len(folders))
	for _, f := range folders {
		exists[f.ID] = true
	}

	children := make(map[int64][]Folder)
	var roots []Folder
	for _, f := range folders {
		if f.ParentID == nil || !exists[*f.ParentID] || *f.ParentID == f.ID {
			roots = append(roots, f)
			continue
		}
		children[*f.ParentID] = append(children[*f.ParentID], f)
	}

	nodes := make([]FolderNode, 0, len(folders))
	visited := make(map[int64]bool, len(folders))

	var walk func(f Folder, depth int)
	walk = func(f Folder, depth int) {
		if visited[f.ID] {
			return
		}
		visited[f.ID] = true
		nodes = append(nodes, FolderNode{Folder: f, Depth: depth})
		for _, child := range children[f.ID] {
			walk(child, depth+1)
		}
	}

	for _, f := range roots {
		walk(f, 0)
	}
	// whatever is left only hangs off a loop
	for _, f := range folders {
		walk(f, 0)
	}
	return nodes
}
