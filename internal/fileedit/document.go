package fileedit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value interface{}
}

// Object is a JSON object that preserves member order. encoding/json
// serializes plain maps with sorted keys, which would move every
// unrelated key of an existing config file around on the first write;
// Object keeps each pre-existing key where the user left it. Nested
// objects decode as *Object, arrays as []interface{}, numbers as
// json.Number (so large or precisely-formatted numbers round-trip
// verbatim).
type Object struct {
	members []Member
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{}
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// Get returns the value for key and whether it is present.
func (o *Object) Get(key string) (interface{}, bool) {
	for i := range o.members {
		if o.members[i].Key == key {
			return o.members[i].Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key in place, keeping its position, or
// appends the member when the key is new.
func (o *Object) Set(key string, value interface{}) {
	for i := range o.members {
		if o.members[i].Key == key {
			o.members[i].Value = value
			return
		}
	}
	o.members = append(o.members, Member{Key: key, Value: value})
}

// SetDefault sets key to value only when the key is absent.
func (o *Object) SetDefault(key string, value interface{}) {
	if _, ok := o.Get(key); !ok {
		o.Set(key, value)
	}
}

// Obj returns the nested object at key, creating (and attaching) an
// empty one when the key is missing or holds a non-object value.
func (o *Object) Obj(key string) *Object {
	if value, ok := o.Get(key); ok {
		if sub, ok := value.(*Object); ok {
			return sub
		}
	}
	sub := NewObject()
	o.Set(key, sub)
	return sub
}

// Keys lists the member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i := range o.members {
		keys[i] = o.members[i].Key
	}
	return keys
}

func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	o.members = nil
	if err := o.decodeMembers(dec); err != nil {
		return err
	}
	_, err = dec.Token() // closing '}'
	return err
}

func (o *Object) decodeMembers(dec *json.Decoder) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return err
		}
		o.members = append(o.members, Member{Key: key, Value: value})
	}
	return nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		if err := obj.decodeMembers(dec); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []interface{}{}
		for dec.More() {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalCompact(o.members[i].Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := marshalCompact(o.members[i].Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCompact encodes without HTML escaping, so string values like
// URLs with "&" round-trip unchanged.
func marshalCompact(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParseJSONC decodes a JSON document that may contain comments and
// trailing commas (VS Code settings are JSONC) into an ordered object.
func ParseJSONC(data []byte) (*Object, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing JSONC: %w", err)
	}

	obj := NewObject()
	if err := json.Unmarshal(standard, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// DetectIndent infers the indentation width from existing content,
// defaulting to 2 when nothing is indented.
func DetectIndent(content string) int {
	for _, line := range strings.Split(content, "\n") {
		if line == "" || (line[0] != ' ' && line[0] != '\t') {
			continue
		}
		width := 0
		for _, ch := range line {
			if ch != ' ' && ch != '\t' {
				break
			}
			width++
		}
		if width > 0 {
			return width
		}
	}
	return 2
}

// MarshalJSONIndent serializes v with an indentation width detected
// from the file being replaced.
func MarshalJSONIndent(v interface{}, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
