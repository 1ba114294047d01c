package docxscrub

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// ParseCharset builds a Charset from its JSON configuration.
//
// The configuration is a JSON object. Each key identifies one code point,
// either as the literal character or in U+XXXX escape notation. The value
// is a human-readable description, given as a plain string or as an array
// whose first element is the description:
//
//	{
//	  "U+200B": "ZERO WIDTH SPACE",
//	  "U+FEFF": ["ZERO WIDTH NO-BREAK SPACE"],
//	  "U+00AD": ["SOFT HYPHEN", "-"]
//	}
//
// Array elements beyond the first are accepted and ignored for
// compatibility with older configurations that carried a replacement
// character; docxscrub always removes, never substitutes.
//
// ParseCharset returns ErrValidation for malformed keys or values, and
// ErrLimitExceeded if the object holds more entries than the default
// limits allow.
func ParseCharset(data []byte) (*Charset, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: charset config: %v", ErrValidation, err)
	}
	limits := defaultLimits()
	if len(raw) > limits.MaxCharsetEntries {
		return nil, fmt.Errorf("%w: charset has %d entries", ErrLimitExceeded, len(raw))
	}

	c := &Charset{
		runes: make(map[rune]struct{}, len(raw)),
		names: make(map[rune]string, len(raw)),
	}
	for key, val := range raw {
		r, err := charsetKeyRune(key)
		if err != nil {
			return nil, fmt.Errorf("%w: charset key %q: %v", ErrValidation, key, err)
		}
		if _, dup := c.runes[r]; dup {
			return nil, fmt.Errorf("%w: duplicate charset code point U+%04X", ErrValidation, r)
		}
		name, err := charsetValueName(val)
		if err != nil {
			return nil, fmt.Errorf("%w: charset key %q: %v", ErrValidation, key, err)
		}
		c.runes[r] = struct{}{}
		if name != "" {
			c.names[r] = name
		}
	}
	if err := validateCharset(c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCharset reads and parses a charset configuration file.
func LoadCharset(path string) (*Charset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCharset(data)
}

// charsetValueName extracts the description from a charset config value.
func charsetValueName(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case []any:
		if len(v) == 0 {
			return "", nil
		}
		s, ok := v[0].(string)
		if !ok {
			return "", fmt.Errorf("description must be a string")
		}
		return s, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("value must be a string or array")
	}
}
