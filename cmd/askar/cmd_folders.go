package main

import (
	"fmt"

	"github.com/Dezmoral/Askar/internal/db"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
)

var (
	folderOwner  int64
	folderName   string
	folderParent int64
	folderTree   bool
	folderText   bool
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List and create folders",
	Long: `List and create folders.

Subcommands:
  list    - List an account's folders, flat or as a tree
  create  - Create a folder, optionally under a parent`,
}

var foldersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an account's folders",
	Args:  cobra.NoArgs,
	RunE:  runFoldersList,
}

var foldersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a folder",
	Args:  cobra.NoArgs,
	RunE:  runFoldersCreate,
}

func init() {
	foldersListCmd.Flags().Int64Var(&folderOwner, "user", 0, "Owner account id")
	foldersListCmd.Flags().BoolVar(&folderTree, "tree", false, "Depth-first tree with depth annotations")
	foldersListCmd.Flags().BoolVar(&folderText, "text", false, "Draw the tree instead of printing JSON")
	_ = foldersListCmd.MarkFlagRequired("user")

	foldersCreateCmd.Flags().Int64Var(&folderOwner, "user", 0, "Owner account id")
	foldersCreateCmd.Flags().StringVar(&folderName, "name", "", "Folder name")
	foldersCreateCmd.Flags().Int64Var(&folderParent, "parent", 0, "Parent folder id (0 for a root folder)")
	_ = foldersCreateCmd.MarkFlagRequired("user")

	foldersCmd.AddCommand(foldersListCmd)
	foldersCmd.AddCommand(foldersCreateCmd)
}

func runFoldersList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if folderText {
		_, err := fmt.Fprintln(stdout, renderTree(store.FolderTree(folderOwner)))
		return err
	}
	if folderTree {
		return emit(map[string]any{"folders": store.FolderTree(folderOwner)})
	}
	return emit(map[string]any{"folders": store.ListFolders(folderOwner)})
}

func runFoldersCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	folder, err := store.CreateFolder(folderOwner, folderName, optionalID(folderParent))
	if err != nil {
		return fail(err)
	}
	return emit(map[string]any{"folder": folder})
}

// renderTree draws depth-first nodes. Each node's depth is at most one more
// than the node before it.
func renderTree(nodes []db.FolderNode) string {
	root := tree.New()
	stack := []*tree.Tree{root}
	for _, n := range nodes {
		depth := min(n.Depth, len(stack)-1)
		branch := tree.Root(fmt.Sprintf("%s (%d)", n.Name, n.ID))
		stack[depth].Child(branch)
		stack = append(stack[:depth+1], branch)
	}
	return root.String()
}
