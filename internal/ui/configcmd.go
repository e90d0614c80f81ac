package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcallahan/taskschedule/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  taskschedule config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Provider.Backend = promptValue(reader, "Provider backend (taskwarrior, sqlite)", cfg.Provider.Backend)
	cfg.Taskwarrior.Command = promptValue(reader, "Taskwarrior command", cfg.Taskwarrior.Command)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Refresh = promptInt(reader, "Refresh interval (seconds)", cfg.UI.Refresh)
	cfg.UI.Scheduled = promptValue(reader, "Default day to show", cfg.UI.Scheduled)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[provider]")
	fmt.Printf("  backend        = %s\n", cfg.Provider.Backend)
	fmt.Println("\n[taskwarrior]")
	fmt.Printf("  command        = %s\n", cfg.Taskwarrior.Command)
	if len(cfg.Taskwarrior.Args) > 0 {
		fmt.Printf("  args           = %s\n", strings.Join(cfg.Taskwarrior.Args, " "))
	}
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  refresh        = %d\n", cfg.UI.Refresh)
	fmt.Printf("  scheduled      = %s\n", cfg.UI.Scheduled)
	fmt.Printf("  show_all_hours = %t\n", cfg.UI.ShowAllHours)
	fmt.Printf("  hide_completed = %t\n", cfg.UI.HideCompleted)
	fmt.Printf("  hide_project   = %t\n", cfg.UI.HideProject)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Printf("  Invalid number %q.\n", value)
	}
}
