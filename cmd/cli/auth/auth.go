package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"syscall"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
}

// promptPassword reads a password without echoing it. Falls back to plain
// stdin when not attached to a terminal (e.g. piped input in scripts).
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(b), err
	}
	var p string
	_, err := fmt.Scanln(&p)
	return p, err
}

func registerCmd() *cobra.Command {
	var username string
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user with username, email, and password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" {
				return fmt.Errorf("username and email are required")
			}

			password, err := promptPassword()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			var out struct {
				Message string `json:"message"`
			}
			payload := map[string]string{"username": username, "email": email, "password": password}
			if err := callJSONEndpoint(http.DefaultClient, "/auth/register", payload, &out); err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}

			fmt.Println(out.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name for the new user")
	cmd.Flags().StringVar(&email, "email", "", "Email address (must be unique)")

	return cmd
}

// loginCmd authenticates and stores the session token locally.
func loginCmd() *cobra.Command {
	var email string
	var captchaResp string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Expense Tracker API",
		Long:  "Authenticate with the Expense Tracker API and store a session token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("email is required")
			}
			if captchaResp == "" {
				captchaResp = os.Getenv("EXPENSE_CAPTCHA_RESPONSE")
			}
			if captchaResp == "" {
				return fmt.Errorf("a captcha response is required (--captcha or EXPENSE_CAPTCHA_RESPONSE)")
			}

			password, err := promptPassword()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			var loginResp struct {
				Token string `json:"token"`
				User  struct {
					Username string `json:"username"`
				} `json:"user"`
			}
			payload := map[string]string{"email": email, "password": password, "captcha": captchaResp}
			if err := callJSONEndpoint(http.DefaultClient, "/auth/login", payload, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(loginResp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Logged in as %s. Token stored locally.\n", loginResp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email to authenticate as")
	cmd.Flags().StringVar(&captchaResp, "captcha", "", "Human-verification challenge response")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DeleteToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func callJSONEndpoint(client *http.Client, path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", config.APIURL()+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
	}

	return nil
}
