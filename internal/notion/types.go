package notion

import (
	"encoding/json"
)

// PropertyType identifies the shape of a database property value.
type PropertyType string

const (
	TypeTitle          PropertyType = "title"
	TypeRichText       PropertyType = "rich_text"
	TypeSelect         PropertyType = "select"
	TypeStatus         PropertyType = "status"
	TypeMultiSelect    PropertyType = "multi_select"
	TypeNumber         PropertyType = "number"
	TypeCheckbox       PropertyType = "checkbox"
	TypeDate           PropertyType = "date"
	TypeURL            PropertyType = "url"
	TypeEmail          PropertyType = "email"
	TypePhoneNumber    PropertyType = "phone_number"
	TypePeople         PropertyType = "people"
	TypeRelation       PropertyType = "relation"
	TypeFormula        PropertyType = "formula"
	TypeCreatedTime    PropertyType = "created_time"
	TypeLastEditedTime PropertyType = "last_edited_time"
)

type RichText struct {
	PlainText string `json:"plain_text"`
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Date struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Relation struct {
	ID string `json:"id"`
}

// Formula carries the resolved value of a formula property. Type names
// which of the value fields is populated.
type Formula struct {
	Type    string   `json:"type"`
	String  *string  `json:"string"`
	Number  *float64 `json:"number"`
	Boolean *bool    `json:"boolean"`
	Date    *Date    `json:"date"`
}

// PropertyValue is the tagged union over all property payload shapes.
// Exactly one payload field matches Type; Raw always holds the payload
// bytes so unrecognized types can still be rendered.
type PropertyValue struct {
	Type           PropertyType
	Title          []RichText
	RichText       []RichText
	Select         *SelectOption
	Status         *SelectOption
	MultiSelect    []SelectOption
	Number         *float64
	Checkbox       bool
	Date           *Date
	URL            string
	Email          string
	PhoneNumber    string
	People         []User
	Relation       []Relation
	Formula        *Formula
	CreatedTime    string
	LastEditedTime string
	Raw            json.RawMessage
}

type propertyValueWire struct {
	Type           PropertyType   `json:"type"`
	Title          []RichText     `json:"title"`
	RichText       []RichText     `json:"rich_text"`
	Select         *SelectOption  `json:"select"`
	Status         *SelectOption  `json:"status"`
	MultiSelect    []SelectOption `json:"multi_select"`
	Number         *float64       `json:"number"`
	Checkbox       bool           `json:"checkbox"`
	Date           *Date          `json:"date"`
	URL            string         `json:"url"`
	Email          string         `json:"email"`
	PhoneNumber    string         `json:"phone_number"`
	People         []User         `json:"people"`
	Relation       []Relation     `json:"relation"`
	Formula        *Formula       `json:"formula"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
}

func (p *PropertyValue) UnmarshalJSON(data []byte) error {
	var wire propertyValueWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = PropertyValue{
		Type:           wire.Type,
		Title:          wire.Title,
		RichText:       wire.RichText,
		Select:         wire.Select,
		Status:         wire.Status,
		MultiSelect:    wire.MultiSelect,
		Number:         wire.Number,
		Checkbox:       wire.Checkbox,
		Date:           wire.Date,
		URL:            wire.URL,
		Email:          wire.Email,
		PhoneNumber:    wire.PhoneNumber,
		People:         wire.People,
		Relation:       wire.Relation,
		Formula:        wire.Formula,
		CreatedTime:    wire.CreatedTime,
		LastEditedTime: wire.LastEditedTime,
	}

	// Keep the raw payload for types the union does not model.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		if raw, ok := fields[string(wire.Type)]; ok {
			p.Raw = raw
		}
	}
	return nil
}

// Page is one record of a Notion database.
type Page struct {
	ID         string                   `json:"id"`
	Properties map[string]PropertyValue `json:"properties"`
}

// PropertyMap is the write-side payload keyed by property name, shaped
// the way the pages endpoints expect.
type PropertyMap map[string]any

func TitleProperty(text string) map[string]any {
	return map[string]any{"title": []any{map[string]any{"text": map[string]any{"content": text}}}}
}

func RichTextProperty(text string) map[string]any {
	return map[string]any{"rich_text": []any{map[string]any{"text": map[string]any{"content": text}}}}
}

func NumberProperty(n float64) map[string]any {
	return map[string]any{"number": n}
}

func CheckboxProperty(b bool) map[string]any {
	return map[string]any{"checkbox": b}
}

func SelectProperty(name string) map[string]any {
	return map[string]any{"select": map[string]any{"name": name}}
}

func StatusProperty(name string) map[string]any {
	return map[string]any{"status": map[string]any{"name": name}}
}

func MultiSelectProperty(names []string) map[string]any {
	opts := make([]any, 0, len(names))
	for _, n := range names {
		opts = append(opts, map[string]any{"name": n})
	}
	return map[string]any{"multi_select": opts}
}

func DateProperty(start string) map[string]any {
	return map[string]any{"date": map[string]any{"start": start}}
}

func URLProperty(u string) map[string]any {
	return map[string]any{"url": u}
}

func EmailProperty(e string) map[string]any {
	return map[string]any{"email": e}
}

func PhoneNumberProperty(p string) map[string]any {
	return map[string]any{"phone_number": p}
}
