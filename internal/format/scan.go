package format

import "strings"

const quote = '"'

// scanDelimiter counts the occurrences of delim in line that fall outside
// double-quoted spans and returns the byte offset of the first one, or -1.
// When the quotes in line are unbalanced, or delim itself contains a quote,
// every occurrence counts.
//
// For a delimiter made of one repeated byte, such as "##", a longer run of
// that byte counts as ceil(run/len(delim)) occurrences, so "a###b" has two
// and is never split into "a" and "#b".
func scanDelimiter(line, delim string) (count, first int) {
	if delim == "" {
		return 0, -1
	}
	if strings.ContainsRune(delim, quote) {
		count, first, _ = scan(line, delim, false)
		return count, first
	}
	count, first, balanced := scan(line, delim, true)
	if !balanced {
		count, first, _ = scan(line, delim, false)
	}
	return count, first
}

func scan(line, delim string, quotes bool) (count, first int, balanced bool) {
	first = -1
	inQuote := false
	repeated := isRepeatedByte(delim)
	for i := 0; i < len(line); {
		if quotes && line[i] == quote {
			inQuote = !inQuote
			i++
			continue
		}
		if inQuote || !strings.HasPrefix(line[i:], delim) {
			i++
			continue
		}
		if first < 0 {
			first = i
		}
		n := len(delim)
		if repeated {
			for i+n < len(line) && line[i+n] == delim[0] {
				n++
			}
		}
		count += (n + len(delim) - 1) / len(delim)
		i += n
	}
	return count, first, !inQuote
}

func isRepeatedByte(s string) bool {
	if len(s) < 2 {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}

// splitLines normalises line endings and splits content into lines. A
// single trailing newline does not produce an extra empty line.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// isSkippable reports whether a trimmed line is blank or a comment.
func isSkippable(line, commentPrefix string) bool {
	return line == "" || (commentPrefix != "" && strings.HasPrefix(line, commentPrefix))
}
