package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	"github.com/spf13/viper"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// DetectLanguage returns the ISO 639-1 code of the text, or an empty string when it cannot tell.
func DetectLanguage(content string) string {
	if !viper.GetBool("language.detect") || len(strings.TrimSpace(content)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Russian).
			Build()
	})

	if lang, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return ""
}
