package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubCompleter struct {
	fn    func(prompt string) (string, error)
	calls []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.calls = append(s.calls, prompt)
	if s.fn == nil {
		return "", nil
	}
	return s.fn(prompt)
}

func TestTableToSentencesTimetable(t *testing.T) {
	table := [][]string{
		{"Day", "Subject", "Time"},
		{"Monday", "Math", "10am"},
		{"Tuesday", "Physics", "11am"},
	}

	got := TableToSentences(table)

	assert.Equal(t, []string{
		"On Monday, the Math class is scheduled at 10am.",
		"On Tuesday, the Physics class is scheduled at 11am.",
	}, got)
}

func TestTableToSentencesTimetableHeaderVariants(t *testing.T) {
	table := [][]string{
		{"Weekday", "Subject Name", "Start Time"},
		{"Friday", "Chemistry", "2pm"},
	}

	got := TableToSentences(table)

	assert.Equal(t, []string{"On Friday, the Chemistry class is scheduled at 2pm."}, got)
}

func TestTableToSentencesGeneral(t *testing.T) {
	table := [][]string{
		{"Name", "Age", "City"},
		{"Alice", "30", "Pune"},
		{"Bob", "", "Delhi"},
	}

	got := TableToSentences(table)

	assert.Equal(t, []string{
		"Name: Alice, Age: 30, City: Pune",
		"Name: Bob, City: Delhi",
	}, got)
}

func TestTableToSentencesMismatchedRow(t *testing.T) {
	table := [][]string{
		{"Name", "Age"},
		{"merged", "row", "spills over"},
	}

	got := TableToSentences(table)

	assert.Equal(t, []string{"merged row spills over"}, got)
}

func TestTableToSentencesTooFewRows(t *testing.T) {
	assert.Empty(t, TableToSentences(nil))
	assert.Empty(t, TableToSentences([][]string{{"Name", "Age"}}))
}

func TestConvertTablesWithoutRewriter(t *testing.T) {
	tables := [][][]string{
		{{"Name", "Age"}, {"Alice", "30"}},
		{{"Name", "Age"}, {"Bob", "41"}},
	}

	sentences, count := ConvertTables(context.Background(), nil, tables, zap.NewNop())

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"Name: Alice, Age: 30", "Name: Bob, Age: 41"}, sentences)
}

func TestConvertTablesRewrite(t *testing.T) {
	rewriter := &stubCompleter{fn: func(string) (string, error) {
		return "Alice is 30 years old.", nil
	}}
	tables := [][][]string{{{"Name", "Age"}, {"Alice", "30"}}}

	sentences, count := ConvertTables(context.Background(), rewriter, tables, zap.NewNop())

	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"Alice is 30 years old."}, sentences)
	assert.Len(t, rewriter.calls, 1)
	assert.Contains(t, rewriter.calls[0], "Name: Alice, Age: 30")
}

func TestConvertTablesRewriteFailureKeepsSentences(t *testing.T) {
	rewriter := &stubCompleter{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	tables := [][][]string{{{"Name", "Age"}, {"Alice", "30"}}}

	sentences, count := ConvertTables(context.Background(), rewriter, tables, zap.NewNop())

	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"Name: Alice, Age: 30"}, sentences)
}

func TestConvertTablesNoTablesSkipsRewriter(t *testing.T) {
	rewriter := &stubCompleter{}

	sentences, count := ConvertTables(context.Background(), rewriter, nil, zap.NewNop())

	assert.Zero(t, count)
	assert.Empty(t, sentences)
	assert.Empty(t, rewriter.calls)
}
