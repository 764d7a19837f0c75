package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// node is one JSON value with object members kept in document order
type node struct {
	delim json.Delim // '{' or '[' for containers, 0 for scalars
	keys  []string
	items []node
	value any // string, json.Number, bool or nil
}

// encodeMsgPack converts JSON text to MessagePack, keeping object key order. Numbers
// written with a fraction or exponent are stored as floats, all others as integers.
func encodeMsgPack(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeNode(enc, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseNode(dec *json.Decoder) (node, error) {
	tok, err := dec.Token()
	if err != nil {
		return node{}, err
	}

	d, ok := tok.(json.Delim)
	if !ok {
		return node{value: tok}, nil
	}

	n := node{delim: d}
	for dec.More() {
		if d == '{' {
			kt, err := dec.Token()
			if err != nil {
				return node{}, err
			}
			n.keys = append(n.keys, kt.(string))
		}
		child, err := parseNode(dec)
		if err != nil {
			return node{}, err
		}
		n.items = append(n.items, child)
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return node{}, err
	}
	return n, nil
}

func encodeNode(enc *msgpack.Encoder, n node) error {
	switch n.delim {
	case '{':
		if err := enc.EncodeMapLen(len(n.items)); err != nil {
			return err
		}
		for i, child := range n.items {
			if err := enc.EncodeString(n.keys[i]); err != nil {
				return err
			}
			if err := encodeNode(enc, child); err != nil {
				return err
			}
		}
		return nil
	case '[':
		if err := enc.EncodeArrayLen(len(n.items)); err != nil {
			return err
		}
		for _, child := range n.items {
			if err := encodeNode(enc, child); err != nil {
				return err
			}
		}
		return nil
	}

	switch v := n.value.(type) {
	case nil:
		return enc.EncodeNil()
	case bool:
		return enc.EncodeBool(v)
	case string:
		return enc.EncodeString(v)
	case json.Number:
		return encodeNumber(enc, v)
	default:
		return fmt.Errorf("unexpected JSON token %v", v)
	}
}

func encodeNumber(enc *msgpack.Encoder, num json.Number) error {
	s := num.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return enc.EncodeInt(i)
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return enc.EncodeUint(u)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", s, err)
	}
	return enc.EncodeFloat64(f)
}

// decodeMsgPack rebuilds indented JSON text from MessagePack written by encodeMsgPack
func decodeMsgPack(data []byte) (string, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	var buf bytes.Buffer
	if err := decodeValue(dec, &buf); err != nil {
		return "", err
	}
	if _, err := dec.PeekCode(); err != io.EOF {
		return "", errors.New("unexpected data after top-level value")
	}

	pretty, err := chart.Indent(buf.Bytes())
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}

func decodeValue(dec *msgpack.Decoder, buf *bytes.Buffer) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}

	switch {
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		for i := 0; i < n; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := dec.DecodeString()
			if err != nil {
				return fmt.Errorf("map key: %w", err)
			}
			writeJSONString(buf, key)
			buf.WriteByte(':')
			if err := decodeValue(dec, buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		buf.WriteByte('[')
		for i := 0; i < n; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := decodeValue(dec, buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return err
		}
		buf.WriteString("null")
	case c == msgpcode.True || c == msgpcode.False:
		b, err := dec.DecodeBool()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(b))
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		writeJSONString(buf, s)
	case c == msgpcode.Float || c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return err
		}
		buf.WriteString(formatFloat(f))
	case c == msgpcode.Uint8 || c == msgpcode.Uint16 || c == msgpcode.Uint32 || c == msgpcode.Uint64:
		u, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatUint(u, 10))
	case msgpcode.IsFixedNum(c) || (c >= msgpcode.Int8 && c <= msgpcode.Int64):
		i, err := dec.DecodeInt64()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatInt(i, 10))
	default:
		return fmt.Errorf("unsupported MessagePack code 0x%02x", c)
	}
	return nil
}

// formatFloat renders f the way the calculation service prints floats: shortest
// round-trip digits, a trailing ".0" on whole numbers, exponent form outside [1e-4, 1e16)
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// strings re-render through chart.Indent, so escaping here only needs to be valid
	b, _ := json.Marshal(s)
	buf.Write(b)
}
