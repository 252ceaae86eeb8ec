package cli

import (
	"os"

	"github.com/spf13/cobra"

	"go-alttext-generator/internal/logger"

	"github.com/sirupsen/logrus"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "alttext",
	Short: "Generate multilingual WCAG alt text for images",
	Long: `Alttext generates accessibility alt text for images using vision
language models, with translation into any of the supported EU languages
and optional CSV/HTML reports.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Text logs read better on a terminal; the env var still wins when
		// set explicitly.
		if os.Getenv("LOG_FORMAT") == "" {
			logger.Logger.SetFormatter(&logrus.TextFormatter{
				TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
				FullTimestamp:   true,
			})
		}
		if verbose {
			logger.Logger.SetLevel(logrus.DebugLevel)
		}
	}
}

func Execute() error {
	return rootCmd.Execute()
}
