package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"go.uber.org/zap"
)

// TableToSentences converts one table into natural-language sentences. The
// first row is treated as header labels; tables with fewer than two rows
// produce nothing. Academic timetables (day/subject/time) get a dedicated
// template, other rows are rendered as "header: value" facts, and rows whose
// cell count does not match the header are joined with spaces.
func TableToSentences(table [][]string) []string {
	var sentences []string
	if len(table) < 2 {
		return sentences
	}

	headers := table[0]
	timetable := isTimetable(headers)

	for _, row := range table[1:] {
		switch {
		case len(row) != len(headers):
			sentences = append(sentences, strings.Join(row, " "))
		case timetable:
			sentences = append(sentences,
				fmt.Sprintf("On %s, the %s class is scheduled at %s.", row[0], row[1], row[2]))
		default:
			var facts []string
			for i, cell := range row {
				if cell != "" {
					facts = append(facts, fmt.Sprintf("%s: %s", headers[i], cell))
				}
			}
			sentences = append(sentences, strings.Join(facts, ", "))
		}
	}

	return sentences
}

func isTimetable(headers []string) bool {
	return len(headers) == 3 &&
		strings.Contains(strings.ToLower(headers[0]), "day") &&
		strings.Contains(strings.ToLower(headers[1]), "subject") &&
		strings.Contains(strings.ToLower(headers[2]), "time")
}

// ConvertTables converts every table on a page to sentences and, when a
// rewriter is available, replaces them wholesale with a single rewritten
// paragraph. Table conversion never fails: on rewrite errors the mechanical
// sentences are kept. The second return value is the number of tables
// processed.
func ConvertTables(ctx context.Context, rewriter llm.Completer, tables [][][]string, logger *zap.Logger) ([]string, int) {
	var sentences []string
	for _, table := range tables {
		sentences = append(sentences, TableToSentences(table)...)
	}

	if rewriter != nil && len(sentences) > 0 {
		combined := strings.Join(sentences, " ")
		rewritten, err := rewriter.Complete(ctx, llm.RewriteTablePrompt(combined))
		if err != nil {
			logger.Warn("table rewrite failed, keeping mechanical sentences", zap.Error(err))
		} else if rewritten != "" {
			sentences = []string{rewritten}
		}
	}

	return sentences, len(tables)
}
