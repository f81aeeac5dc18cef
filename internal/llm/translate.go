package llm

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Translation is the JSON object the model is asked to return from a
// language-detection prompt.
type Translation struct {
	Language       string `json:"language"`
	TranslatedText string `json:"translated_text"`
}

// DetectAndTranslate detects the query language and translates it to English
// with a single completion. It never fails: on any completion or parse error
// the query is assumed to be English and returned unchanged. Malformed model
// output is logged, since it can mis-detect genuinely non-English queries.
func DetectAndTranslate(ctx context.Context, c Completer, query string, logger *zap.Logger) (language, translated string) {
	language, translated = "en", query

	raw, err := c.Complete(ctx, TranslatePrompt(query))
	if err != nil {
		logger.Warn("translation request failed, assuming English", zap.Error(err))
		return language, translated
	}

	var t Translation
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &t); err != nil {
		logger.Warn("could not parse translation response, assuming English",
			zap.String("response", raw), zap.Error(err))
		return language, translated
	}

	if t.Language != "" {
		language = t.Language
	}
	if t.TranslatedText != "" {
		translated = t.TranslatedText
	}
	return language, translated
}

// StripCodeFences removes markdown code fences that models often wrap around
// JSON responses.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
