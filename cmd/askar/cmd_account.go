package main

import (
	"github.com/spf13/cobra"
)

var (
	accountUsername string
	accountEmail    string
	accountPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account together with its default folder.

The password is prompted for when --password is not given.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check credentials and print the account",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var accountCmd = &cobra.Command{
	Use:   "account <id>",
	Short: "Print the public fields of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccount,
}

func init() {
	registerCmd.Flags().StringVar(&accountUsername, "username", "", "Display name")
	registerCmd.Flags().StringVar(&accountEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&accountPassword, "password", "", "Password")

	loginCmd.Flags().StringVar(&accountEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&accountPassword, "password", "", "Password")
}

func passwordFrom(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return accountPassword, nil
	}
	return promptPassword()
}

func runRegister(cmd *cobra.Command, args []string) error {
	password, err := passwordFrom(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	account, err := store.Register(accountUsername, accountEmail, password)
	if err != nil {
		return fail(err)
	}
	return emit(map[string]any{"account": account})
}

func runLogin(cmd *cobra.Command, args []string) error {
	password, err := passwordFrom(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	account, err := store.Login(accountEmail, password)
	if err != nil {
		return fail(err)
	}
	return emit(map[string]any{"account": account})
}

// runAccount prints "account": null for an unknown id; absence is not an error.
func runAccount(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return emit(map[string]any{"account": store.GetAccount(id)})
}
