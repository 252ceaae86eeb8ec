package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go-alttext-generator/pkg/models"
)

// csvHeader is the stable column order of the CSV export; one row per
// language per record.
var csvHeader = []string{
	"id",
	"image_reference",
	"page_url",
	"language",
	"image_type",
	"alt_text",
	"reasoning",
	"character_count",
	"over_length_limit",
	"succeeded",
	"translation_method",
	"geo_boost",
	"processing_time_seconds",
	"timestamp",
}

// WriteCSV streams generation records as CSV, one row per localized output
func WriteCSV(w io.Writer, records []*models.GenerationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		for _, out := range rec.LocalizedOutputs {
			row := []string{
				rec.ID,
				rec.ImageReference,
				rec.Source.PageURL,
				out.LanguageCode,
				string(out.ImageType),
				out.AltText,
				out.Reasoning,
				strconv.Itoa(out.CharacterCount),
				strconv.FormatBool(out.OverLengthLimit),
				strconv.FormatBool(out.Succeeded),
				string(rec.TranslationMethod),
				strconv.FormatBool(rec.GeoBoostApplied),
				strconv.FormatFloat(rec.ProcessingTimeSeconds, 'f', 3, 64),
				rec.Timestamp.UTC().Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
