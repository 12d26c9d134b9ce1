package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fbarchive/pkg/auth"
	"fbarchive/pkg/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored page access tokens",
	Long: `Store, inspect and remove page access tokens. Tokens are kept in the
system keychain when available, otherwise in an encrypted file under the
config directory.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Store a page access token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthLogin,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List stored credentials",
	Args:  cobra.NoArgs,
	RunE:  runAuthShow,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [name]",
	Short: "Remove a stored credential",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthLogout,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func credentialName(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "default"
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	name := credentialName(args)

	var token string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("Access token for %q: ", name)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	} else {
		// Piped input, e.g. "echo $TOKEN | fbarchive auth login"
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading token: %w", err)
		}
		token = strings.TrimSpace(line)
	}

	if token == "" {
		return fmt.Errorf("no token provided")
	}

	manager, err := auth.NewManager()
	if err != nil {
		return err
	}

	if err := manager.Store(&auth.Credential{Name: name, AccessToken: token}); err != nil {
		ui.PrintError("Failed to store credential: %v", err)
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Stored credential %q (%s)", name, auth.MaskToken(token)))
	return nil
}

func runAuthShow(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return err
	}

	creds, err := manager.List()
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		ui.PrintWarning("No stored credentials")
		return nil
	}

	for _, cred := range creds {
		line := fmt.Sprintf("%-12s %s", cred.Name, auth.MaskToken(cred.AccessToken))
		if !cred.LastModified.IsZero() {
			line += "  " + ui.Dim("(updated "+cred.LastModified.Format("2006-01-02 15:04")+")")
		}
		fmt.Println(line)
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	name := credentialName(args)

	manager, err := auth.NewManager()
	if err != nil {
		return err
	}

	if err := manager.Delete(name); err != nil {
		ui.PrintError("Failed to remove credential: %v", err)
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Removed credential %q", name))
	return nil
}
