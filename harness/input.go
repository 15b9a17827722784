package harness

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/bitpack/errs"
)

// ParseInput parses an integer sequence.
//
// A bracketed literal list such as "[1, 2, 3]" is read as a YAML flow
// sequence. Any other text is split on commas and whitespace. Blank text
// yields an empty, non-nil sequence.
//
// Range checks are left to the codecs: a negative value parses and is
// rejected later by Compress.
//
// Returns:
//   - []int64: Parsed values in input order
//   - error: errs.ErrInvalidInput wrapping the offending token
func ParseInput(text string) ([]int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []int64{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var values []int64
		if err := yaml.Unmarshal([]byte(trimmed), &values); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
		}
		if values == nil {
			values = []int64{}
		}

		return values, nil
	}

	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errs.ErrInvalidInput, f)
		}
		values = append(values, v)
	}

	return values, nil
}

// ReadInput reads all of r and parses it with ParseInput.
func ReadInput(r io.Reader) ([]int64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return ParseInput(string(raw))
}
