package main

import (
	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/spf13/cobra"
)

var (
	noteOwner    int64
	noteFolder   int64
	noteSearch   string
	noteTitle    string
	noteContent  string
	noteTags     string
	noteDeadline string
	noteImage    string
	notePinned   bool
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Work with notes",
	Long: `Work with an account's notes.

Subcommands:
  list    - List visible notes, pinned first then most recently changed
  create  - Create an empty note
  get     - Print one note
  save    - Change some fields of a note and keep the rest
  delete  - Move a note to the trash`,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible notes",
	Args:  cobra.NoArgs,
	RunE:  runNotesList,
}

var notesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty note",
	Args:  cobra.NoArgs,
	RunE:  runNotesCreate,
}

var notesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print one note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesGet,
}

var notesSaveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Change fields of a note",
	Long: `Change fields of a note. Only the flags given are changed;
--folder 0 moves the note out of any folder and --deadline "" clears it.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotesSave,
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Move a note to the trash",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesDelete,
}

func init() {
	for _, c := range []*cobra.Command{notesListCmd, notesCreateCmd, notesGetCmd, notesSaveCmd, notesDeleteCmd} {
		c.Flags().Int64Var(&noteOwner, "user", 0, "Owner account id")
		_ = c.MarkFlagRequired("user")
		notesCmd.AddCommand(c)
	}

	notesListCmd.Flags().Int64Var(&noteFolder, "folder", 0, "Only notes in this folder")
	notesListCmd.Flags().StringVar(&noteSearch, "search", "", "Case-insensitive match on title, content and tags")

	notesCreateCmd.Flags().Int64Var(&noteFolder, "folder", 0, "Folder for the new note")

	f := notesSaveCmd.Flags()
	f.StringVar(&noteTitle, "title", "", "Title")
	f.StringVar(&noteContent, "content", "", "Content")
	f.Int64Var(&noteFolder, "folder", 0, "Folder id (0 for none)")
	f.StringVar(&noteTags, "tags", "", "Comma-separated tags")
	f.StringVar(&noteDeadline, "deadline", "", "Deadline, YYYY-MM-DD or RFC 3339")
	f.StringVar(&noteImage, "image", "", "Image path")
	f.BoolVar(&notePinned, "pinned", false, "Pin the note")
}

func runNotesList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := db.NoteFilter{Search: noteSearch}
	if cmd.Flags().Changed("folder") {
		filter.FolderID = optionalID(noteFolder)
	}
	return emit(map[string]any{"notes": store.ListNotes(noteOwner, filter)})
}

func runNotesCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.CreateNote(noteOwner, optionalID(noteFolder))
	if err != nil {
		return fail(err)
	}
	return emit(map[string]any{"id": id})
}

func runNotesGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	note := store.GetNote(noteOwner, id)
	if note == nil {
		return fail(&db.NotFoundError{Message: i18n.T().NoteNotFound})
	}
	return emit(map[string]any{"note": note})
}

func runNotesSave(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	current := store.GetNote(noteOwner, id)
	if current == nil {
		return fail(&db.NotFoundError{Message: i18n.T().NoteNotFound})
	}

	fields := current.Fields()
	flags := cmd.Flags()
	if flags.Changed("title") {
		fields.Title = noteTitle
	}
	if flags.Changed("content") {
		fields.Content = noteContent
	}
	if flags.Changed("folder") {
		fields.FolderID = optionalID(noteFolder)
	}
	if flags.Changed("tags") {
		fields.Tags = noteTags
	}
	if flags.Changed("deadline") {
		fields.Deadline = noteDeadline
	}
	if flags.Changed("image") {
		fields.ImagePath = noteImage
	}
	if flags.Changed("pinned") {
		fields.Pinned = notePinned
	}

	if err := store.SaveNote(noteOwner, id, fields); err != nil {
		return fail(err)
	}
	return emit(map[string]any{"note": store.GetNote(noteOwner, id)})
}

func runNotesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteNote(noteOwner, id); err != nil {
		return fail(err)
	}
	return emit(nil)
}
