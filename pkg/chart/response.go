// Package chart models the chart service's calculate response and the parameters used to
// request it.
package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is a decoded calculate response. The original document is retained so that
// re-encoding a Response reproduces what the service sent, key order included.
type Response struct {
	Chart *Chart `json:"chart"`

	raw []byte
}

// Chart is the top-level "chart" object
type Chart struct {
	Graha     Grahas               `json:"graha"`
	Panchanga *Panchanga           `json:"panchanga,omitempty"`
	Rising    map[string][]RiseSet `json:"rising,omitempty"`
}

// Graha is one celestial body's position
type Graha struct {
	Longitude    Value              `json:"longitude"`
	Rashi        Value              `json:"rashi"`
	Nakshatra    *NakshatraPosition `json:"nakshatra,omitempty"`
	Speed        Value              `json:"speed"`
	RashiAvastha Value              `json:"rashiAvastha"`
}

type NakshatraPosition struct {
	Name Value `json:"name"`
	Pada Value `json:"pada"`
}

// Panchanga holds the five calendar elements. Elements the service omitted decode as
// zero values and render as N/A.
type Panchanga struct {
	Tithi     Tithi              `json:"tithi"`
	Nakshatra PanchangaNakshatra `json:"nakshatra"`
	Yoga      Element            `json:"yoga"`
	Karana    Element            `json:"karana"`
	Vara      Element            `json:"vara"`
}

type Tithi struct {
	Name   Value `json:"name"`
	Paksha Value `json:"paksha"`
	Left   Value `json:"left"`
}

type PanchangaNakshatra struct {
	Name Value `json:"name"`
	Pada Value `json:"pada"`
	Left Value `json:"left"`
}

// Element is a yoga, karana or vara entry; vara carries no "left"
type Element struct {
	Name Value `json:"name"`
	Left Value `json:"left"`
}

// RiseSet is one day's rising and setting times for a body
type RiseSet struct {
	Rising  Value `json:"rising"`
	Setting Value `json:"setting"`
}

// Parse decodes a calculate response
func Parse(data []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unable to decode chart response: %w", err)
	}
	return &r, nil
}

// ParseString decodes a calculate response held as text
func ParseString(s string) (*Response, error) {
	return Parse([]byte(s))
}

func (r *Response) UnmarshalJSON(b []byte) error {
	var doc struct {
		Chart *Chart `json:"chart"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	r.Chart = doc.Chart
	r.raw = append([]byte(nil), b...)
	return nil
}

func (r Response) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(struct {
		Chart *Chart `json:"chart"`
	}{r.Chart})
}

// SunRising returns the Sun's daily rising/setting entries in document order
func (c *Chart) SunRising() []RiseSet {
	return c.Rising[SunCode]
}

// Grahas is the "graha" mapping with the document's key order preserved
type Grahas struct {
	codes  []string
	byCode map[string]Graha
}

// Codes returns the graha codes in document order
func (g Grahas) Codes() []string {
	return g.codes
}

// Get returns the graha for a code
func (g Grahas) Get(code string) (Graha, bool) {
	gr, ok := g.byCode[code]
	return gr, ok
}

func (g Grahas) Len() int {
	return len(g.codes)
}

// Set adds or replaces a graha. New codes are appended to the iteration order.
func (g *Grahas) Set(code string, gr Graha) {
	if g.byCode == nil {
		g.byCode = make(map[string]Graha)
	}
	if _, exists := g.byCode[code]; !exists {
		g.codes = append(g.codes, code)
	}
	g.byCode[code] = gr
}

func (g *Grahas) UnmarshalJSON(b []byte) error {
	*g = Grahas{}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("graha: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := tok.(string)
		if !ok {
			return fmt.Errorf("graha: expected key, got %v", tok)
		}

		var gr Graha
		if err := dec.Decode(&gr); err != nil {
			return fmt.Errorf("graha %s: %w", code, err)
		}
		g.Set(code, gr)
	}

	// closing brace
	_, err = dec.Token()
	return err
}

func (g Grahas) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range g.codes {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.byCode[code])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
