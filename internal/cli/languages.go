package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-alttext-generator/internal/languages"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported language codes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, code := range languages.Codes() {
			name, _ := languages.DisplayName(code)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
