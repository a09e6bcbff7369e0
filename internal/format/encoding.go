package format

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/phrazzld/crablang/internal/domain"
)

// DefaultEncoding is used when detection fails.
const DefaultEncoding = "utf-8"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

type decodeAttempt struct {
	name   string
	decode func([]byte) (string, bool)
}

// Decode converts raw file bytes to text. It honours a byte order mark,
// then accepts valid UTF-8, then tries UTF-16 when NUL bytes fall on every
// other position, then tries the encoding guessed from the content, and
// finally falls back to UTF-8 with invalid sequences replaced. It returns
// the text, the name of the encoding used, and domain.ErrEncoding only when
// every attempt fails. Text containing NUL characters is treated as a failed
// attempt.
func Decode(raw []byte) (string, string, error) {
	for _, attempt := range decodeAttempts(raw) {
		text, ok := attempt.decode(raw)
		if !ok || strings.ContainsRune(text, 0) {
			continue
		}
		return text, attempt.name, nil
	}
	return "", "", domain.ErrEncoding
}

func decodeAttempts(raw []byte) []decodeAttempt {
	var attempts []decodeAttempt

	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		attempts = append(attempts, decodeAttempt{"utf-8", func(b []byte) (string, bool) {
			rest := b[len(bomUTF8):]
			return string(rest), utf8.Valid(rest)
		}})
	case bytes.HasPrefix(raw, bomUTF16LE):
		attempts = append(attempts, decodeAttempt{"utf-16le", withDecoder(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM))})
	case bytes.HasPrefix(raw, bomUTF16BE):
		attempts = append(attempts, decodeAttempt{"utf-16be", withDecoder(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM))})
	}

	attempts = append(attempts, decodeAttempt{"utf-8", func(b []byte) (string, bool) {
		return string(b), utf8.Valid(b)
	}})

	if order, ok := guessUTF16(raw); ok {
		name := "utf-16be"
		if order == unicode.LittleEndian {
			name = "utf-16le"
		}
		attempts = append(attempts, decodeAttempt{name, withDecoder(unicode.UTF16(order, unicode.IgnoreBOM))})
	}

	if enc, name, _ := charset.DetermineEncoding(raw, "text/plain"); enc != nil && name != DefaultEncoding {
		attempts = append(attempts, decodeAttempt{name, withDecoder(enc)})
	}

	attempts = append(attempts, decodeAttempt{DefaultEncoding, func(b []byte) (string, bool) {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)), true
	}})

	return attempts
}

// guessUTF16 recognises BOM-less UTF-16 by its NUL bytes: mostly Latin text
// has a zero high byte in at least half of its code units, always on the
// same side.
func guessUTF16(raw []byte) (unicode.Endianness, bool) {
	if len(raw) < 2 || len(raw)%2 != 0 {
		return unicode.BigEndian, false
	}
	var even, odd int
	for i := 0; i < len(raw); i += 2 {
		if raw[i] == 0 {
			even++
		}
		if raw[i+1] == 0 {
			odd++
		}
	}
	units := len(raw) / 2
	switch {
	case odd*2 >= units && even*4 <= odd:
		return unicode.LittleEndian, true
	case even*2 >= units && odd*4 <= even:
		return unicode.BigEndian, true
	}
	return unicode.BigEndian, false
}

func withDecoder(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(b []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}
