package format

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crablang/internal/domain"
	"github.com/phrazzld/crablang/internal/platform/logger"
)

func TestParseExample(t *testing.T) {
	t.Parallel()

	content := "apple\tA sweet red fruit\nbook\tCollection of written pages"
	res := NewParser(TSV, DefaultOptions(), testLogger(t)).Parse(content)

	assert.Equal(t, []domain.Flashcard{
		{Term: "apple", Definition: "A sweet red fruit"},
		{Term: "book", Definition: "Collection of written pages"},
	}, res.Cards)
	assert.Equal(t, Stats{TotalLines: 2, ValidPairs: 2}, res.Stats)
	assert.Empty(t, res.Warnings)
}

func TestParseIdempotent(t *testing.T) {
	t.Parallel()

	content := "# fruit\nkiwi | fuzzy fruit\nfig|sweet\n\nlime |  sour  "
	p := NewParser(Pipe, DefaultOptions(), testLogger(t))

	first := p.Parse(content)
	second := p.Parse(content)

	assert.Equal(t, first, second)
	require.Len(t, first.Cards, 3)
	assert.Equal(t, domain.Flashcard{Term: "lime", Definition: "sour"}, first.Cards[2])
}

func TestParseCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	content := "# Fruits\napple\tred fruit\n\n# More fruits\n   \nbanana\tyellow fruit\n"
	res := NewParser(TSV, DefaultOptions(), testLogger(t)).Parse(content)

	require.Len(t, res.Cards, 2)
	for _, card := range res.Cards {
		assert.False(t, strings.HasPrefix(card.Term, "#"))
	}
	assert.Equal(t, 6, res.Stats.TotalLines)
	assert.Equal(t, 4, res.Stats.SkippedLines)
	assert.Equal(t, 0, res.Stats.Errors)
}

func TestParseMalformedLines(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"apple\tred fruit",
		"malformed_line",
		"too\tmany\ttabs",
		"\"\"\tno term",
		"no definition\t\"\"",
		"banana\tyellow fruit",
	}, "\n")

	res := NewParser(TSV, DefaultOptions(), testLogger(t)).Parse(content)

	require.Len(t, res.Cards, 2)
	assert.Equal(t, "apple", res.Cards[0].Term)
	assert.Equal(t, "banana", res.Cards[1].Term)
	assert.Equal(t, 4, res.Stats.Errors)
	require.Len(t, res.Warnings, 4)

	assert.Equal(t, 2, res.Warnings[0].Line)
	assert.ErrorIs(t, res.Warnings[0], ErrMalformedLine)
	assert.ErrorIs(t, res.Warnings[1], ErrMalformedLine)
	assert.ErrorIs(t, res.Warnings[2], ErrEmptySide)
	assert.ErrorIs(t, res.Warnings[2], domain.ErrEmptyTerm)
	assert.ErrorIs(t, res.Warnings[3], domain.ErrEmptyDefinition)

	var le *LineError
	require.True(t, errors.As(res.Warnings[1], &le))
	assert.Equal(t, "too\tmany\ttabs", le.Content)
	assert.Contains(t, le.Error(), "line 3")
}

func TestParseDoubleHashRuns(t *testing.T) {
	t.Parallel()

	content := "a##b\nc###d\ne####f\n\"x###y\"##z"
	res := NewParser(DoubleHash, DefaultOptions(), testLogger(t)).Parse(content)

	require.Len(t, res.Cards, 2)
	assert.Equal(t, domain.Flashcard{Term: "a", Definition: "b"}, res.Cards[0])
	assert.Equal(t, domain.Flashcard{Term: "x###y", Definition: "z"}, res.Cards[1])
	assert.Equal(t, 2, res.Stats.Errors)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 2, res.Warnings[0].Line)
	assert.ErrorIs(t, res.Warnings[0], ErrMalformedLine)
	assert.Equal(t, 3, res.Warnings[1].Line)
}

func TestParseQuotes(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		`"Paris, France",capital city`,
		`'hola', "hello"`,
		`"say ""hi""",greeting`,
		`"unclosed,value`,
	}, "\n")

	res := NewParser(CSV, DefaultOptions(), testLogger(t)).Parse(content)

	assert.Equal(t, []domain.Flashcard{
		{Term: "Paris, France", Definition: "capital city"},
		{Term: "hola", Definition: "hello"},
		{Term: `say "hi"`, Definition: "greeting"},
		{Term: `"unclosed`, Definition: "value"},
	}, res.Cards)

	opts := DefaultOptions()
	opts.StripQuotes = false
	res = NewParser(CSV, opts, testLogger(t)).Parse(`'hola',"hello"`)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, domain.Flashcard{Term: "'hola'", Definition: `"hello"`}, res.Cards[0])
}

func TestParseDuplicates(t *testing.T) {
	t.Parallel()

	content := "apple;red fruit\nApple;green fruit"
	res := NewParser(Semicolon, DefaultOptions(), testLogger(t)).Parse(content)

	require.Len(t, res.Cards, 2, "duplicates keep their position in the deck")
	assert.Equal(t, 1, res.Stats.Duplicates)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrDuplicateTerm)
	assert.Equal(t, 2, res.Warnings[0].Line)
}

func TestParseStripMarkup(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.StripMarkup = true
	content := "<b>salt</b> &amp; pepper##<i>seasoning</i> <script>x()</script>\n<br>##empty"

	res := NewParser(DoubleHash, opts, testLogger(t)).Parse(content)

	require.Len(t, res.Cards, 1)
	assert.Equal(t, domain.Flashcard{Term: "salt & pepper", Definition: "seasoning"}, res.Cards[0])
	assert.Equal(t, 1, res.Stats.Errors)
}

func TestParseCommentPrefixDisabled(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CommentPrefix = ""
	res := NewParser(TSV, opts, testLogger(t)).Parse("#hashtag\tsocial media label")

	require.Len(t, res.Cards, 1)
	assert.Equal(t, "#hashtag", res.Cards[0].Term)
}

func TestParseLogsWarnings(t *testing.T) {
	t.Parallel()

	out := logger.CaptureLogs(t, func(l *slog.Logger) {
		NewParser(TSV, DefaultOptions(), l).Parse("good\tline\nbad line\ngood\tagain")
	})

	assert.Contains(t, out, `"msg":"skipping line"`)
	assert.Contains(t, out, `"line":2`)
	assert.Contains(t, out, `"component":"record_parser"`)
	assert.Contains(t, out, `"msg":"keeping duplicate term"`)
}
