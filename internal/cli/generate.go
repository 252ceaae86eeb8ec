package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go-alttext-generator/internal/config"
	"go-alttext-generator/internal/container"
	"go-alttext-generator/internal/report"
	"go-alttext-generator/pkg/models"
)

var (
	genContext         string
	genLanguages       []string
	genMode            string
	genLegacyFull      bool
	genGeoBoost        bool
	genVisionSpec      string
	genProcessingSpec  string
	genTranslationSpec string
	genHTMLPath        string
	genCSVPath         string
)

var generateCmd = &cobra.Command{
	Use:   "generate <image-reference>",
	Short: "Generate alt text for one image",
	Long: `Generate alt text for a single image given as an HTTP(S) URL, an
Azure blob URL or a local file path. The first language listed is the
primary language; the rest are translated or regenerated depending on the
selected mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genContext, "context", "c", "", "Surrounding page context for the image")
	generateCmd.Flags().StringSliceVarP(&genLanguages, "languages", "l", []string{"en"}, "Target language codes, primary first")
	generateCmd.Flags().StringVarP(&genMode, "mode", "m", "fast", "Translation mode: fast or accurate")
	generateCmd.Flags().BoolVar(&genLegacyFull, "full-translation", false, "Legacy flag forcing accurate mode")
	generateCmd.Flags().BoolVar(&genGeoBoost, "geo", false, "Optimize alt text for generative search")
	generateCmd.Flags().StringVar(&genVisionSpec, "vision", "", "Vision stage override as provider/model")
	generateCmd.Flags().StringVar(&genProcessingSpec, "processing", "", "Processing stage override as provider/model")
	generateCmd.Flags().StringVar(&genTranslationSpec, "translation", "", "Translation stage override as provider/model")
	generateCmd.Flags().StringVar(&genHTMLPath, "html", "", "Write an HTML report to this path")
	generateCmd.Flags().StringVar(&genCSVPath, "csv", "", "Write a CSV report to this path")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}

	req := models.GenerationRequest{
		ImageReference:      args[0],
		ContextText:         genContext,
		TargetLanguages:     genLanguages,
		TranslationMode:     models.TranslationMode(genMode),
		FullTranslationMode: genLegacyFull,
		GeoBoost:            genGeoBoost,
	}
	if genVisionSpec != "" {
		sel, err := parseStageSpec(genVisionSpec)
		if err != nil {
			return err
		}
		req.Overrides.Vision = sel
	}
	if genProcessingSpec != "" {
		sel, err := parseStageSpec(genProcessingSpec)
		if err != nil {
			return err
		}
		req.Overrides.Processing = sel
	}
	if genTranslationSpec != "" {
		sel, err := parseStageSpec(genTranslationSpec)
		if err != nil {
			return err
		}
		req.Overrides.Translation = sel
	}

	record, err := c.GenerationService().Generate(ctx, req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if genHTMLPath != "" {
		if err := writeReport(genHTMLPath, record, report.WriteHTML); err != nil {
			return err
		}
	}
	if genCSVPath != "" {
		if err := writeReport(genCSVPath, record, report.WriteCSV); err != nil {
			return err
		}
	}
	return nil
}

// parseStageSpec splits "provider/model" into a stage selection
func parseStageSpec(spec string) (*models.StageSelection, error) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '/' {
			if i == 0 || i == len(spec)-1 {
				break
			}
			return &models.StageSelection{Provider: spec[:i], Model: spec[i+1:]}, nil
		}
	}
	return nil, errors.New("stage override must be provider/model")
}

func writeReport(path string, record *models.GenerationRecord, render func(w io.Writer, records []*models.GenerationRecord) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	return render(f, []*models.GenerationRecord{record})
}
