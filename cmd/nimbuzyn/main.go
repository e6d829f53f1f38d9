// ABOUTME: Entry point for the nimbuzyn data store
// ABOUTME: Bootstraps config, logging and the SQLite store; the UI layer consumes the core packages

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/nimbuzyn/nimbuzyn/internal/auth"
	"github.com/nimbuzyn/nimbuzyn/internal/config"
	"github.com/nimbuzyn/nimbuzyn/internal/inventory"
	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
       _           _
 _ __ (_)_ __ ___ | |__  _   _ _____   _ _ __
| '_ \| | '_ ' _ \| '_ \| | | |_  / | | | '_ \
| | | | | | | | | | |_) | |_| |/ /| |_| | | | |
|_| |_|_|_| |_| |_|_.__/ \__,_/___|\__, |_| |_|
                                   |___/
`

// getConfigPath returns the path to the nimbuzyn config file.
// Priority: NIMBUZYN_CONFIG env var > XDG_CONFIG_HOME/nimbuzyn/nimbuzyn.yaml > ~/.config/nimbuzyn/nimbuzyn.yaml
func getConfigPath() string {
	if envPath := os.Getenv("NIMBUZYN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "nimbuzyn.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "nimbuzyn", "nimbuzyn.yaml")
}

// getDataPath returns the path to the nimbuzyn data directory.
// Priority: XDG_DATA_HOME/nimbuzyn > ~/.local/share/nimbuzyn
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "nimbuzyn")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: nimbuzyn <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  init                 Create a config file and initialize the store")
		fmt.Println("  register             Register a new user interactively")
		fmt.Println("  summary --user UID   Print an inventory summary for a user")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit()
	case "register":
		err = runRegister(ctx)
	case "summary":
		err = runSummary(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInit() error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := filepath.Join(getDataPath(), "nimbuzyn.db")
	content := fmt.Sprintf(`database:
  path: %q

auth:
  token_secret: "${NIMBUZYN_TOKEN_SECRET}"
  token_ttl: "24h"

logging:
  level: "info"
  format: "text"
`, dbPath)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Open once so the schema exists before first use
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer st.Close()

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", dbPath)
	return nil
}

func openStore() (*store.SQLiteStore, *config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(setupLogger(cfg.Logging))

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return st, cfg, nil
}

func runRegister(ctx context.Context) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	fmt.Print("Display name (optional): ")
	displayName, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading display name: %w", err)
	}

	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	user, err := auth.NewService(st).Register(ctx,
		strings.TrimSpace(username),
		strings.TrimSpace(displayName),
		strings.TrimSpace(password),
	)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Registered %s\n", user.Username)
	green.Print("    ▶ ")
	fmt.Print("Public ID: ")
	color.New(color.FgCyan).Println(user.PublicID)
	return nil
}

func runSummary(ctx context.Context) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	userUID := fs.String("user", "", "public ID of the inventory owner")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	if *userUID == "" {
		return fmt.Errorf("--user is required")
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := inventory.NewLedger(st).Summarize(ctx, *userUID)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Products:     %d\n", summary.TotalProducts)
	green.Print("    ▶ ")
	fmt.Printf("Net value:    %.2f\n", summary.TotalNetValue)
	green.Print("    ▶ ")
	fmt.Printf("Profit value: %.2f\n", summary.TotalProfitValue)
	if summary.OutOfStockCount > 0 {
		color.New(color.FgYellow).Print("    ▶ ")
		fmt.Printf("Out of stock: %d\n", summary.OutOfStockCount)
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
