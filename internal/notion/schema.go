package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SchemaProperty is one column of the database schema. Options is
// populated for select, status and multi_select properties.
type SchemaProperty struct {
	Name    string
	Type    PropertyType
	Options []SelectOption
}

// Schema holds the property-name to type mapping in the order the API
// returned it. The order is authoritative for the sheet header.
type Schema struct {
	props  []SchemaProperty
	byName map[string]int
}

func (s *Schema) Names() []string {
	names := make([]string, len(s.props))
	for i, p := range s.props {
		names[i] = p.Name
	}
	return names
}

func (s *Schema) Properties() []SchemaProperty {
	return s.props
}

func (s *Schema) Get(name string) (*SchemaProperty, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.props[i], true
}

func (s *Schema) Len() int {
	return len(s.props)
}

// FetchSchema retrieves the database definition and parses its
// properties object. Called once per sync run; the result is treated
// as immutable afterwards.
func (c *Client) FetchSchema(ctx context.Context, databaseID string) (*Schema, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/databases/"+databaseID, nil)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

type schemaPropertyWire struct {
	Type        PropertyType    `json:"type"`
	Select      *optionListWire `json:"select"`
	Status      *optionListWire `json:"status"`
	MultiSelect *optionListWire `json:"multi_select"`
}

type optionListWire struct {
	Options []SelectOption `json:"options"`
}

// ParseSchema extracts the ordered properties map from a database
// response. encoding/json maps drop key order, so the properties
// object is walked token by token instead.
func ParseSchema(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("invalid database response: %w", err)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid database response: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid database response: expected object key, got %v", tok)
		}

		if key != "properties" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("invalid database response: %w", err)
			}
			continue
		}

		return parseProperties(dec)
	}

	return nil, fmt.Errorf("database response is missing the properties object")
}

func parseProperties(dec *json.Decoder) (*Schema, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("invalid properties object: %w", err)
	}

	schema := &Schema{byName: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid properties object: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid properties object: expected property name, got %v", tok)
		}

		var def schemaPropertyWire
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("invalid definition for property %q: %w", name, err)
		}

		prop := SchemaProperty{Name: name, Type: def.Type}
		switch {
		case def.Select != nil:
			prop.Options = def.Select.Options
		case def.Status != nil:
			prop.Options = def.Status.Options
		case def.MultiSelect != nil:
			prop.Options = def.MultiSelect.Options
		}

		schema.byName[name] = len(schema.props)
		schema.props = append(schema.props, prop)
	}

	return schema, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
