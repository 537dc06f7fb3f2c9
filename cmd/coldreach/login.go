package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saloni/coldreach/internal/auth"
	"github.com/saloni/coldreach/internal/config"
)

var (
	loginConfigPath string
	loginTokenFile  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize Gmail access and store a token for CLI runs",
	Long: `Prints a Google consent URL, waits for the authorization code, and
stores the resulting OAuth token so 'coldreach run' can create drafts
without a browser session.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginConfigPath, "config", "", "Path to config.json file")
	loginCmd.Flags().StringVar(&loginTokenFile, "token-file", "token.json", "Where to store the OAuth token")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if loginConfigPath != "" {
		loaded, err := config.LoadConfig(loginConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		TokenFile:          loginTokenFile,
	})
	if cmd.Flags().Changed("token-file") {
		cfg.TokenFile = loginTokenFile
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}

	// Out-of-band flow: the user pastes the code shown by Google.
	oauthCfg := auth.OAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, "urn:ietf:wg:oauth:2.0:oob")

	fmt.Println("Open this URL in your browser and authorize access:")
	fmt.Println()
	fmt.Println("  " + oauthCfg.AuthCodeURL("state-token"))
	fmt.Println()
	fmt.Print("Paste the authorization code here: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	token, err := oauthCfg.Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(cfg.TokenFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	fmt.Printf("Token saved to %s\n", cfg.TokenFile)
	return nil
}
