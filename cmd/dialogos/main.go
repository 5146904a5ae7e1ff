package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/config"
	"github.com/abdulachik/dialogos/internal/logging"
	"github.com/abdulachik/dialogos/internal/registry"
)

var (
	appConfig *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "dialogos",
	Short: "Turn Plato's dialogues into illustrated Jupyter notebooks",
	Long: `dialogos parses plain-text transcripts of Plato's dialogues into
dialogue units and assembles them into Jupyter notebooks, where each passage
can be paired with an AI-generated illustration.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appConfig = cfg

		// Reconfigure logging now that the config file has been read
		closer := logging.Init(logging.Options{
			Level:  cfg.LogLevel,
			Format: os.Getenv("LOG_FORMAT"),
			File:   cfg.LogFile,
		})
		if logCloser != nil {
			logCloser.Close()
		}
		logCloser = closer
		return nil
	},
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	// Set up logging
	logCloser = logging.Init(logging.Options{Level: os.Getenv("LOG_LEVEL")})
}

// newRegistry builds the title registry from the loaded config without
// touching the filesystem.
func newRegistry() *registry.Registry {
	return registry.New(registry.Dirs{
		Texts:     appConfig.TextsDir,
		Dialogues: appConfig.DialoguesDir,
	})
}

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
