package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "go-alttext-generator/internal/errors"
)

// Fragment is one configured prompt template piece
type Fragment struct {
	Name string
	Text string
}

// requiredFragment must exist; without it there is no base instruction to
// build on.
const requiredFragment = "default_prompt.txt"

// LoadFragments reads the configured fragment files from dir, in order.
// A missing required fragment is a configuration error; other missing files
// are skipped.
func LoadFragments(dir string, files []string) ([]Fragment, error) {
	var fragments []Fragment
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if name == requiredFragment {
				return nil, apperrors.NewConfigurationError(
					fmt.Sprintf("required prompt template %s not found in %s", name, dir), err)
			}
			continue
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		fragments = append(fragments, Fragment{Name: name, Text: text})
	}
	if len(fragments) == 0 {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("no usable prompt templates in %s", dir), nil)
	}
	return fragments, nil
}
