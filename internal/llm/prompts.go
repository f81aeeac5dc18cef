package llm

import "fmt"

// TranslatePrompt asks the model to detect the query language and translate
// it to English, returning a strict JSON object.
func TranslatePrompt(query string) string {
	return fmt.Sprintf("Detect the language of the following text and translate it to English. "+
		"Return ONLY a JSON object with 'language' (e.g., 'en', 'hi', 'gu') and 'translated_text' keys. "+
		"Text: '%s'", query)
}

// BackTranslatePrompt translates an English answer back to the detected
// query language.
func BackTranslatePrompt(language, text string) string {
	return fmt.Sprintf("Translate the following English text to %s: '%s'", language, text)
}

// AnswerSummaryPrompt asks for a concise summary of a generated answer.
func AnswerSummaryPrompt(answer string) string {
	return fmt.Sprintf("Summarize the following answer concisely: %s", answer)
}

// DocumentSummaryPrompt asks for a 2-3 sentence summary of a document.
func DocumentSummaryPrompt(name, content string) string {
	return fmt.Sprintf("Summarize the content of this document titled '%s' in 2-3 sentences, "+
		"focusing on key information.\n\nContent: %s", name, content)
}

// KeywordsPrompt asks for 5-10 comma-separated search keywords derived from
// a document summary and a content snippet.
func KeywordsPrompt(summary, snippet string) string {
	return fmt.Sprintf("Extract 5-10 relevant keywords or phrases from the following document summary "+
		"and content that would help in searching for this document. Keywords should be comma-separated."+
		"\n\nSummary: %s\n\nContent snippet: %s", summary, snippet)
}

// CleanTextPrompt asks the model to normalize raw OCR output.
func CleanTextPrompt(text string) string {
	return fmt.Sprintf("Clean and normalize this text for better readability: %s", text)
}

// RewriteTablePrompt asks the model to rewrite mechanical table facts as
// natural language.
func RewriteTablePrompt(facts string) string {
	return fmt.Sprintf("Rewrite this table data into natural language facts: %s", facts)
}
