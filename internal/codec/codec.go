// Package codec holds the JSON wire rules shared by the client and the stub backend.
//
// Field names come from struct tags; a field without a tag keeps its Go name.
// Money values (decimal.Decimal) are written as JSON numbers and date-times as
// LocalDateTime strings.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func Marshal(v any) ([]byte, error) {
	const op = "codec.Marshal"

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func Unmarshal(data []byte, v any) error {
	const op = "codec.Unmarshal"

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Decode reads a single JSON value from r.
func Decode(r io.Reader, v any) error {
	const op = "codec.Decode"

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// NewReader marshals v and returns a reader over the encoded bytes.
func NewReader(v any) (io.Reader, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(b), nil
}
