package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginIdentifier string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in on this machine",
	Long: `Store a local session so catalog commands can run.

Both an identifier (email) and a password are required. Nothing is sent to
a server and the password is never stored.

Examples:
  dexter login
  dexter login --identifier ash@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session exists",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	loginCmd.Flags().StringVar(&loginIdentifier, "identifier", "", "identifier (email) to log in with")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	identifier := strings.TrimSpace(loginIdentifier)
	if identifier == "" {
		cmd.Print("Email: ")
		identifier = readLine(reader)
	}

	cmd.Print("Password: ")
	secret := readSecret(cmd.InOrStdin(), reader)
	cmd.Println()

	session, err := sessionService.Login(commandContext(cmd), identifier, secret)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s\n", session.Identifier)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if err := sessionService.Logout(commandContext(cmd)); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	session, err := sessionService.Current(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if session == nil {
		cmd.Println("Not logged in.")
		return nil
	}

	cmd.Printf("Logged in as %s\n", session.Identifier)
	if !session.CreatedAt.IsZero() {
		cmd.Printf("  Since:   %s\n", session.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if session.ID != "" {
		cmd.Printf("  Session: %s\n", session.ID)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo when in is a terminal and falls back to a
// plain line otherwise.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(secret)
		}
	}
	return readLine(reader)
}
