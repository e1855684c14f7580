package formmail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
)

// Field is a single named value of a submission body.
type Field struct {
	Name  string
	Value string
	// IsString is false for JSON values that were not strings. Their Value
	// holds the compact JSON text.
	IsString bool
}

// Fields is an ordered set of body fields.
type Fields []Field

// Get returns the value of the named field.
func (f Fields) Get(name string) (Field, bool) {
	for _, field := range f {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Set stores a field. A repeated name keeps its first position and takes the new value.
func (f *Fields) Set(field Field) {
	for i := range *f {
		if (*f)[i].Name == field.Name {
			(*f)[i] = field
			return
		}
	}
	*f = append(*f, field)
}

// Missing returns the required fields that are absent or not strings.
func (f Fields) Missing() []string {
	var missing []string
	for _, name := range RequiredFields {
		if field, ok := f.Get(name); !ok || !field.IsString {
			missing = append(missing, name)
		}
	}
	return missing
}

// fieldSet builds Fields while decoding, keeping the Set semantics
// without rescanning the slice for every key.
type fieldSet struct {
	fields Fields
	index  map[string]int
}

func newFieldSet() *fieldSet {
	return &fieldSet{fields: Fields{}, index: map[string]int{}}
}

func (s *fieldSet) set(field Field) {
	if i, ok := s.index[field.Name]; ok {
		s.fields[i] = field
		return
	}
	s.index[field.Name] = len(s.fields)
	s.fields = append(s.fields, field)
}

// DecodeFields decodes a request body according to its content type.
// JSON objects and urlencoded forms are supported, both keeping body order.
func DecodeFields(contentType string, body []byte) (Fields, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrMissingBody
	}

	mediaType := ""
	if contentType != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}

	switch {
	case mediaType == "", mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(body)
	case mediaType == "application/x-www-form-urlencoded":
		return decodeForm(body)
	default:
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidBody, mediaType)
	}
}

func decodeJSON(body []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if tok == nil {
		return nil, ErrMissingBody
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidBody)
	}

	fields := newFieldSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected an object key", ErrInvalidBody)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		field, err := jsonField(name, raw)
		if err != nil {
			return nil, err
		}
		fields.set(field)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidBody)
	}
	return fields.fields, nil
}

func jsonField(name string, raw json.RawMessage) (Field, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return Field{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return Field{Name: name, Value: value, IsString: true}, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Field{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return Field{Name: name, Value: buf.String()}, nil
}

func decodeForm(body []byte) (Fields, error) {
	fields := newFieldSet()
	for _, pair := range strings.Split(strings.TrimSpace(string(body)), "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		fields.set(Field{Name: name, Value: value, IsString: true})
	}
	return fields.fields, nil
}
