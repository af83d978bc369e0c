// ABOUTME: Root Cobra command for bmi CLI.
// ABOUTME: Handles config, logger, and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/bmi/internal/config"
	"github.com/harperreed/bmi/internal/logger"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	repo storage.Repository
	cfg  *config.Config
	log  = logger.Nop()

	dataDirFlag string
	backendFlag string
	verboseFlag bool
)

// skipStorage marks commands that never touch the data store.
const skipStorage = "skip-storage"

var rootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Body Mass Index calculator and history tracker",
	Long: `BMI records weight and height for named people, classifies the resulting
Body Mass Index, and charts each person's history over time.

CATEGORIES:

  Underweight   BMI below 18.5
  Normal        18.5 up to 24.9
  Overweight    24.9 up to 29.9
  Obese         29.9 and above

QUICK START:

  $ bmi gui                          # Open the desktop form
  $ bmi calc Ada 36 70 1.75          # Record a measurement
  $ bmi history Ada                  # Chart Ada's history to a PNG
  $ bmi list --name Ada              # Show Ada's stored measurements
  $ bmi people                       # Everyone with measurements

BACKUP AND STORAGE:

  $ bmi export json -o backup.json   # Full backup
  $ bmi import backup.json           # Append a backup
  $ bmi migrate --to markdown --dest ~/notes/bmi

MCP INTEGRATION:

  Run 'bmi mcp' to start the Model Context Protocol server for AI
  assistants. Add to your MCP client config:

  {
    "mcpServers": {
      "bmi": { "command": "bmi", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Measurements are stored in SQLite at ~/.local/share/bmi/bmi_users.db
  (table bmi_data). Set "backend": "markdown" in ~/.config/bmi/config.json
  to keep one markdown file per measurement instead.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		l, err := logger.New(verboseFlag)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		log = l

		if cmd.Annotations[skipStorage] == "true" {
			return nil
		}

		// A previous failed run in the same process may not have reached PostRun
		closeStorage()

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		log.Debug("opened storage",
			zap.String("backend", cfg.GetBackend()),
			zap.String("data_dir", cfg.GetDataDir()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		closeStorage()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func closeStorage() {
	if repo != nil {
		if err := repo.Close(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
		repo = nil
	}
	_ = log.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite or markdown (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}
