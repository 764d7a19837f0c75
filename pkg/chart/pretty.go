package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const indentUnit = "  "

// Indent re-serializes a JSON document for reading: two-space indentation, ": " between
// keys and values, object key order kept, numbers kept as written, and strings emitted
// with non-ASCII characters and <, >, & left literal. The result has no trailing newline.
func Indent(data []byte) ([]byte, error) {
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeValue(dec, &buf, 0); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON document")
	}
	return buf.Bytes(), nil
}

// MarshalIndent encodes v and formats it with Indent
func MarshalIndent(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Indent(b)
}

func writeValue(dec *json.Decoder, buf *bytes.Buffer, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		return writeContainer(dec, buf, depth, t)
	case string:
		return writeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected JSON token %v", tok)
	}
	return nil
}

func writeContainer(dec *json.Decoder, buf *bytes.Buffer, depth int, open json.Delim) error {
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	buf.WriteByte(byte(open))
	n := 0
	for dec.More() {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indentUnit, depth+1))

		if open == '{' {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := tok.(string)
			if !ok {
				return fmt.Errorf("expected object key, got %v", tok)
			}
			if err := writeString(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
		}

		if err := writeValue(dec, buf, depth+1); err != nil {
			return err
		}
		n++
	}

	// consume the closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}

	if n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indentUnit, depth))
	}
	buf.WriteByte(closing)
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var sb bytes.Buffer
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(sb.Bytes(), []byte("\n")))
	return nil
}
