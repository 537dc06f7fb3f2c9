package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/saloni/coldreach/internal/auth"
	"github.com/saloni/coldreach/internal/config"
	"github.com/saloni/coldreach/internal/db"
	"github.com/saloni/coldreach/internal/gmail"
	"github.com/saloni/coldreach/internal/logging"
	"github.com/saloni/coldreach/internal/pipeline"
	"github.com/saloni/coldreach/internal/resolve"
	"github.com/saloni/coldreach/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Create drafts for every contact in a spreadsheet",
	Long: `Reads the contacts spreadsheet, resolves a template and resume for each
contact's role from the templates directory, and saves one personalized
Gmail draft per contact.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runBatchCmd,
}

var (
	runConfigPath   string
	runContacts     string
	runTemplatesDir string
	runFullName     string
	runPhone        string
	runLinkedIn     string
	runTokenFile    string
	runConcurrency  int
	runDatabaseURL  string
	runVerbose      bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runContacts, "contacts", "f", "", "Path to the contacts spreadsheet (.xlsx)")
	runCommand.Flags().StringVarP(&runTemplatesDir, "templates-dir", "t", "", "Directory containing templates and resumes")
	runCommand.Flags().StringVarP(&runFullName, "name", "n", "", "Your full name (used in signatures and attachment names)")
	runCommand.Flags().StringVar(&runPhone, "phone", "", "Your phone number")
	runCommand.Flags().StringVar(&runLinkedIn, "linkedin", "", "Your LinkedIn URL (optional)")
	runCommand.Flags().StringVar(&runTokenFile, "token-file", "token.json", "OAuth token file created by 'coldreach login'")
	runCommand.Flags().IntVar(&runConcurrency, "concurrency", 0, "Parallel draft creation (0 = sequential)")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL for run history (optional, defaults to DATABASE_URL env var)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(runCommand)
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	// Command-line args take priority over config file values.
	if cmd.Flags().Changed("contacts") {
		cfg.Contacts = runContacts
	}
	if cmd.Flags().Changed("templates-dir") {
		cfg.TemplatesDir = runTemplatesDir
	}
	if cmd.Flags().Changed("name") {
		cfg.FullName = runFullName
	}
	if cmd.Flags().Changed("phone") {
		cfg.PhoneNumber = runPhone
	}
	if cmd.Flags().Changed("linkedin") {
		cfg.LinkedInURL = runLinkedIn
	}
	if cmd.Flags().Changed("token-file") {
		cfg.TokenFile = runTokenFile
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		TokenFile:          "token.json",
		LogLevel:           "info",
		LogFormat:          "console",
	})
	if runVerbose {
		cfg.LogLevel = "debug"
	}

	switch {
	case cfg.Contacts == "":
		return fmt.Errorf("--contacts is required")
	case cfg.TemplatesDir == "":
		return fmt.Errorf("--templates-dir is required")
	case cfg.FullName == "":
		return fmt.Errorf("--name is required")
	case cfg.PhoneNumber == "":
		return fmt.Errorf("--phone is required")
	case cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "":
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	token, err := loadToken(cfg.TokenFile)
	if err != nil {
		return fmt.Errorf("failed to load token (run 'coldreach login' first): %w", err)
	}

	oauthCfg := auth.OAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, "urn:ietf:wg:oauth:2.0:oob")
	svc, err := gmail.NewService(ctx, oauthCfg.Client(ctx, token), log)
	if err != nil {
		return fmt.Errorf("failed to build Gmail client: %w", err)
	}

	var history pipeline.History
	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		history = store
	}

	spreadsheet, err := os.Open(cfg.Contacts)
	if err != nil {
		return fmt.Errorf("failed to open contacts file: %w", err)
	}
	defer spreadsheet.Close()

	processor := pipeline.NewProcessor(pipeline.Options{
		Sender: types.SenderProfile{
			FullName:    cfg.FullName,
			PhoneNumber: cfg.PhoneNumber,
			LinkedInURL: cfg.LinkedInURL,
		},
		Resolver:    resolve.NewDirResolver(cfg.TemplatesDir, log),
		Dispatcher:  svc,
		Identity:    svc,
		History:     history,
		Log:         log,
		Concurrency: cfg.Concurrency,
	})

	rep := processor.Process(ctx, spreadsheet)

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(out))

	if rep.ErrorCount > 0 {
		return fmt.Errorf("%d of %d contacts failed", rep.ErrorCount, rep.TotalProcessed)
	}
	return nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", path, err)
	}
	return &token, nil
}
