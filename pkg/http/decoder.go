package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Decoder turns response bytes into a value.
type Decoder interface {
	Decode(data []byte, v any) error
}

// JSONDecoder decodes a single JSON value. Trailing data is an error.
type JSONDecoder struct {
	DisallowUnknownFields bool
}

func (d JSONDecoder) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if d.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}
