package docxscrub

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// charsetKeyRune resolves one charset config key to a code point. A key is
// either U+XXXX escape notation (1 to 6 hex digits) or a single literal
// character.
func charsetKeyRune(key string) (rune, error) {
	if key == "" {
		return 0, fmt.Errorf("key is empty")
	}
	if strings.HasPrefix(key, "U+") || strings.HasPrefix(key, "u+") {
		hex := key[2:]
		if hex == "" || len(hex) > 6 {
			return 0, fmt.Errorf("escape must have 1 to 6 hex digits")
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid escape: %v", err)
		}
		r := rune(n)
		if r > unicode.MaxRune || utf16.IsSurrogate(r) {
			return 0, fmt.Errorf("U+%04X is not a valid code point", n)
		}
		return r, nil
	}
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("key is not valid UTF-8")
	}
	if size != len(key) {
		return 0, fmt.Errorf("key must be a single character or U+XXXX escape")
	}
	return r, nil
}

// validateCharset rejects sets that could corrupt XML structure if
// honored. Stripping the characters XML uses for markup would be
// indistinguishable from a rewriter bug, so they are refused up front.
func validateCharset(c *Charset) error {
	for r := range c.runes {
		switch r {
		case '<', '>', '&', '"', '\'':
			return fmt.Errorf("%w: refusing to strip XML markup character %q", ErrValidation, r)
		}
	}
	return nil
}
