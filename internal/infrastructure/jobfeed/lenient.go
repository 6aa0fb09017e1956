package jobfeed

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The feed is loosely typed: a field that usually holds a string sometimes
// arrives as a number, a list as a bare string. These types never fail to
// decode; an unusable value decodes to the zero value, which the ingest
// mapping replaces with its default.

type text string

func (t *text) UnmarshalJSON(b []byte) error {
	*t = text(scalarString(b))
	return nil
}

type textList []string

func (l *textList) UnmarshalJSON(b []byte) error {
	*l = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if b[0] != '[' {
		if s := scalarString(b); s != "" {
			*l = textList{s}
		}
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil
	}
	out := make(textList, 0, len(elems))
	for _, e := range elems {
		if s := scalarString(e); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	*n = 0
	s := scalarString(b)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = number(f)
	return nil
}

// salaryRaw holds salary_raw.value.minValue; any other shape yields zero.
type salaryRaw struct {
	MinValue number
}

func (s *salaryRaw) UnmarshalJSON(b []byte) error {
	*s = salaryRaw{}
	var outer struct {
		Value json.RawMessage `json:"value"`
	}
	if !isObject(b) || json.Unmarshal(b, &outer) != nil || !isObject(outer.Value) {
		return nil
	}
	var inner struct {
		MinValue number `json:"minValue"`
	}
	if json.Unmarshal(outer.Value, &inner) == nil {
		s.MinValue = inner.MinValue
	}
	return nil
}

// scalarString renders a JSON string, number or bool as text. Objects,
// arrays and null give "".
func scalarString(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{', '[', 'n':
		return ""
	default:
		var v any
		d := json.NewDecoder(bytes.NewReader(b))
		d.UseNumber()
		if d.Decode(&v) != nil {
			return ""
		}
		switch x := v.(type) {
		case json.Number:
			return x.String()
		case bool:
			return strconv.FormatBool(x)
		}
		return ""
	}
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}
