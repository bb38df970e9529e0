package bridge

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/ffi-primitives/errors"
)

// EncodeText converts managed UTF-16 text to UTF-8. Text with an unpaired
// surrogate or a NUL character has no NUL-terminated UTF-8 form and is
// rejected.
func EncodeText(op string, chars []uint16) (string, error) {
	var b strings.Builder
	b.Grow(len(chars))

	for i := 0; i < len(chars); i++ {
		c := rune(chars[i])
		switch {
		case c == 0:
			return "", errors.New(errors.PhaseConvert, errors.KindUnencodable).
				Op(op).
				Value(i).
				Detail("NUL character at index %d", i).
				Build()
		case !utf16.IsSurrogate(c):
			b.WriteRune(c)
		default:
			r := utf8.RuneError
			if i+1 < len(chars) {
				r = utf16.DecodeRune(c, rune(chars[i+1]))
			}
			if r == utf8.RuneError {
				return "", errors.New(errors.PhaseConvert, errors.KindUnencodable).
					Op(op).
					Value(i).
					Detail("unpaired surrogate 0x%04x at index %d", c, i).
					Build()
			}
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}

// DecodeText converts UTF-8 text to managed UTF-16.
func DecodeText(s string) []uint16 {
	return utf16.Encode([]rune(s))
}
