// Package language holds the static registry of languages the application
// can translate between. The registry is a process-wide constant: languages
// are never added or removed at runtime.
package language

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage is returned when a language code is not in the registry.
var ErrUnknownLanguage = errors.New("unknown language code")

// Language is an immutable static value describing a supported language.
type Language struct {
	Code   string
	Name   string
	Symbol string
}

var supported = []Language{
	{Code: "en", Name: "English", Symbol: "🇬🇧"},
	{Code: "es", Name: "Spanish", Symbol: "🇪🇸"},
	{Code: "fr", Name: "French", Symbol: "🇫🇷"},
	{Code: "de", Name: "German", Symbol: "🇩🇪"},
	{Code: "it", Name: "Italian", Symbol: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", Symbol: "🇵🇹"},
	{Code: "ja", Name: "Japanese", Symbol: "🇯🇵"},
	{Code: "zh", Name: "Chinese", Symbol: "🇨🇳"},
	{Code: "ko", Name: "Korean", Symbol: "🇰🇷"},
}

// Supported returns all registered languages in display order.
// The returned slice is a copy; callers may not mutate the registry.
func Supported() []Language {
	result := make([]Language, len(supported))
	copy(result, supported)
	return result
}

// Get returns the language for a code, or ErrUnknownLanguage.
func Get(code string) (Language, error) {
	for _, lang := range supported {
		if lang.Code == code {
			return lang, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// IsSupported reports whether a code is in the registry.
func IsSupported(code string) bool {
	_, err := Get(code)
	return err == nil
}
