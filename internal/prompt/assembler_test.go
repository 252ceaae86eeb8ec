package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testAssembler(t *testing.T, fragments ...Fragment) *Assembler {
	t.Helper()
	a, err := NewAssembler(fragments, "\n\n")
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}
	return a
}

func TestVision_LanguagePlaceholderSubstitution(t *testing.T) {
	a := testAssembler(t, Fragment{Name: "base", Text: "Write alt text in {LANGUAGE} for this image."})

	prompt, err := a.Vision("de", false, "")
	if err != nil {
		t.Fatalf("Vision failed: %v", err)
	}
	if !strings.Contains(prompt, "German") {
		t.Errorf("Expected display name substitution, got %q", prompt)
	}
	if strings.Contains(prompt, "{LANGUAGE}") {
		t.Error("Placeholder must not survive assembly")
	}
}

func TestVision_MissingPlaceholderAppendsDirective(t *testing.T) {
	a := testAssembler(t, Fragment{Name: "base", Text: "Describe this image."})

	prompt, err := a.Vision("fr", false, "")
	if err != nil {
		t.Fatalf("Vision failed: %v", err)
	}
	if !strings.Contains(prompt, "in French") {
		t.Errorf("Expected appended language directive, got %q", prompt)
	}
}

func TestVision_FragmentsMergedInOrder(t *testing.T) {
	a := testAssembler(t,
		Fragment{Name: "one", Text: "First part."},
		Fragment{Name: "two", Text: "Second part."},
	)

	prompt, err := a.Vision("en", false, "")
	if err != nil {
		t.Fatalf("Vision failed: %v", err)
	}
	first := strings.Index(prompt, "First part.")
	second := strings.Index(prompt, "Second part.")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Fragments out of order in %q", prompt)
	}
}

func TestVision_ContextAndGeoBoost(t *testing.T) {
	a := testAssembler(t, Fragment{Name: "base", Text: "Describe this image in {LANGUAGE}."})

	plain, err := a.Vision("en", false, "")
	if err != nil {
		t.Fatalf("Vision failed: %v", err)
	}
	withContext, err := a.Vision("en", false, "Product page for hiking boots")
	if err != nil {
		t.Fatalf("Vision failed: %v", err)
	}
	withGeo, err := a.Vision("en", true, "")
	if err != nil {
		t.Fatalf("Vision failed: %v", err)
	}

	if !strings.Contains(withContext, "hiking boots") {
		t.Error("Context text missing from prompt")
	}
	if withGeo == plain {
		t.Error("GEO boost must change the prompt")
	}
	if !strings.Contains(withGeo, "semantic density") {
		t.Error("GEO instruction missing from boosted prompt")
	}
}

func TestVision_UnsupportedLanguage(t *testing.T) {
	a := testAssembler(t, Fragment{Name: "base", Text: "Describe."})
	if _, err := a.Vision("xx", false, ""); err == nil {
		t.Fatal("Expected error for unsupported language")
	}
}

func TestProcessingAndTranslationPrompts(t *testing.T) {
	a := testAssembler(t, Fragment{Name: "base", Text: "Describe."})

	proc, err := a.Processing("draft output", "es")
	if err != nil {
		t.Fatalf("Processing failed: %v", err)
	}
	if !strings.Contains(proc, "draft output") || !strings.Contains(proc, "Spanish") {
		t.Errorf("Processing prompt incomplete: %q", proc)
	}

	tr, err := a.Translation("A red door", "It is the main subject.", "it")
	if err != nil {
		t.Fatalf("Translation failed: %v", err)
	}
	if !strings.Contains(tr, "A red door") || !strings.Contains(tr, "Italian") {
		t.Errorf("Translation prompt incomplete: %q", tr)
	}
}

func TestLoadFragments(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("default_prompt.txt", "Base instruction with {LANGUAGE}.")
	writeFile("extra.txt", "Extra guidance.")
	writeFile("empty.txt", "   \n")

	t.Run("Loads configured files in order", func(t *testing.T) {
		fragments, err := LoadFragments(dir, []string{"default_prompt.txt", "extra.txt"})
		if err != nil {
			t.Fatalf("LoadFragments failed: %v", err)
		}
		if len(fragments) != 2 {
			t.Fatalf("Expected 2 fragments, got %d", len(fragments))
		}
		if fragments[0].Name != "default_prompt.txt" {
			t.Errorf("Expected default_prompt.txt first, got %s", fragments[0].Name)
		}
	})

	t.Run("Missing optional file is skipped", func(t *testing.T) {
		fragments, err := LoadFragments(dir, []string{"default_prompt.txt", "missing.txt"})
		if err != nil {
			t.Fatalf("LoadFragments failed: %v", err)
		}
		if len(fragments) != 1 {
			t.Errorf("Expected 1 fragment, got %d", len(fragments))
		}
	})

	t.Run("Empty file is skipped", func(t *testing.T) {
		fragments, err := LoadFragments(dir, []string{"default_prompt.txt", "empty.txt"})
		if err != nil {
			t.Fatalf("LoadFragments failed: %v", err)
		}
		if len(fragments) != 1 {
			t.Errorf("Expected 1 fragment, got %d", len(fragments))
		}
	})

	t.Run("Missing required file fails", func(t *testing.T) {
		if _, err := LoadFragments(t.TempDir(), []string{"default_prompt.txt"}); err == nil {
			t.Fatal("Expected error for missing required fragment")
		}
	})
}
