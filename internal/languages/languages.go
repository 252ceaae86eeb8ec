package languages

import "sort"

// supported maps ISO 639-1 codes to the display names substituted into
// prompts. The set matches the 24 languages the generator accepts; anything
// outside it is rejected at the request boundary.
var supported = map[string]string{
	"bg": "Bulgarian",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"et": "Estonian",
	"fi": "Finnish",
	"fr": "French",
	"ga": "Irish",
	"hr": "Croatian",
	"hu": "Hungarian",
	"it": "Italian",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"mt": "Maltese",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sv": "Swedish",
}

// IsSupported reports whether the given ISO 639-1 code is in the allowlist.
func IsSupported(code string) bool {
	_, ok := supported[code]
	return ok
}

// DisplayName returns the human-readable name for a language code.
func DisplayName(code string) (string, bool) {
	name, ok := supported[code]
	return name, ok
}

// Codes returns all supported language codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// All returns the full code-to-name allowlist as a copy.
func All() map[string]string {
	out := make(map[string]string, len(supported))
	for code, name := range supported {
		out[code] = name
	}
	return out
}
