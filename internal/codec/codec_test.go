package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notion-sheets-sync/internal/notion"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		prop notion.PropertyValue
		want string
	}{
		{
			name: "title concatenates fragments",
			prop: notion.PropertyValue{
				Type:  notion.TypeTitle,
				Title: []notion.RichText{{PlainText: "Hello "}, {PlainText: "World"}},
			},
			want: "Hello World",
		},
		{
			name: "empty title",
			prop: notion.PropertyValue{Type: notion.TypeTitle},
			want: "",
		},
		{
			name: "rich text",
			prop: notion.PropertyValue{
				Type:     notion.TypeRichText,
				RichText: []notion.RichText{{PlainText: "note"}},
			},
			want: "note",
		},
		{
			name: "select name",
			prop: notion.PropertyValue{
				Type:   notion.TypeSelect,
				Select: &notion.SelectOption{Name: "Active"},
			},
			want: "Active",
		},
		{
			name: "select absent",
			prop: notion.PropertyValue{Type: notion.TypeSelect},
			want: "",
		},
		{
			name: "status name",
			prop: notion.PropertyValue{
				Type:   notion.TypeStatus,
				Status: &notion.SelectOption{Name: "In progress"},
			},
			want: "In progress",
		},
		{
			name: "multi select joins in order",
			prop: notion.PropertyValue{
				Type:        notion.TypeMultiSelect,
				MultiSelect: []notion.SelectOption{{Name: "Urgent"}, {Name: "ProjectX"}},
			},
			want: "Urgent, ProjectX",
		},
		{
			name: "multi select empty",
			prop: notion.PropertyValue{Type: notion.TypeMultiSelect},
			want: "",
		},
		{
			name: "number",
			prop: notion.PropertyValue{Type: notion.TypeNumber, Number: floatPtr(42.5)},
			want: "42.5",
		},
		{
			name: "number integral has no decimal point",
			prop: notion.PropertyValue{Type: notion.TypeNumber, Number: floatPtr(7)},
			want: "7",
		},
		{
			name: "number absent",
			prop: notion.PropertyValue{Type: notion.TypeNumber},
			want: "",
		},
		{
			name: "checkbox true is upper case",
			prop: notion.PropertyValue{Type: notion.TypeCheckbox, Checkbox: true},
			want: "TRUE",
		},
		{
			name: "checkbox false",
			prop: notion.PropertyValue{Type: notion.TypeCheckbox, Checkbox: false},
			want: "FALSE",
		},
		{
			name: "date start only",
			prop: notion.PropertyValue{
				Type: notion.TypeDate,
				Date: &notion.Date{Start: "2024-03-01"},
			},
			want: "2024-03-01",
		},
		{
			name: "date range",
			prop: notion.PropertyValue{
				Type: notion.TypeDate,
				Date: &notion.Date{Start: "2024-03-01", End: "2024-03-05"},
			},
			want: "2024-03-01 to 2024-03-05",
		},
		{
			name: "date absent",
			prop: notion.PropertyValue{Type: notion.TypeDate},
			want: "",
		},
		{
			name: "url",
			prop: notion.PropertyValue{Type: notion.TypeURL, URL: "https://example.com"},
			want: "https://example.com",
		},
		{
			name: "email",
			prop: notion.PropertyValue{Type: notion.TypeEmail, Email: "a@b.co"},
			want: "a@b.co",
		},
		{
			name: "phone number",
			prop: notion.PropertyValue{Type: notion.TypePhoneNumber, PhoneNumber: "+1 555 0100"},
			want: "+1 555 0100",
		},
		{
			name: "people with unknown fallback",
			prop: notion.PropertyValue{
				Type:   notion.TypePeople,
				People: []notion.User{{Name: "Ada"}, {ID: "u2"}},
			},
			want: "Ada, Unknown User",
		},
		{
			name: "relation reports count only",
			prop: notion.PropertyValue{
				Type:     notion.TypeRelation,
				Relation: []notion.Relation{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			},
			want: "3 relations",
		},
		{
			name: "formula number",
			prop: notion.PropertyValue{
				Type:    notion.TypeFormula,
				Formula: &notion.Formula{Type: "number", Number: floatPtr(12)},
			},
			want: "12",
		},
		{
			name: "formula string",
			prop: notion.PropertyValue{
				Type:    notion.TypeFormula,
				Formula: &notion.Formula{Type: "string", String: strPtr("derived")},
			},
			want: "derived",
		},
		{
			name: "created time keeps date part",
			prop: notion.PropertyValue{
				Type:        notion.TypeCreatedTime,
				CreatedTime: "2024-03-01T10:30:00.000Z",
			},
			want: "2024-03-01",
		},
		{
			name: "last edited time keeps date part",
			prop: notion.PropertyValue{
				Type:           notion.TypeLastEditedTime,
				LastEditedTime: "2023-12-31T23:59:59.000Z",
			},
			want: "2023-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.prop))
		})
	}
}

func TestExtractCheckboxWire(t *testing.T) {
	var prop notion.PropertyValue
	err := json.Unmarshal([]byte(`{"type":"checkbox","checkbox":true}`), &prop)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", Extract(prop))
}

func TestExtractMultiSelectWire(t *testing.T) {
	var prop notion.PropertyValue
	err := json.Unmarshal([]byte(`{"type":"multi_select","multi_select":[{"name":"Urgent"},{"name":"ProjectX"}]}`), &prop)
	require.NoError(t, err)
	assert.Equal(t, "Urgent, ProjectX", Extract(prop))
}

func TestExtractUnknownTypeTruncates(t *testing.T) {
	long := make([]byte, 0, 300)
	long = append(long, '"')
	for i := 0; i < 200; i++ {
		long = append(long, 'x')
	}
	long = append(long, '"')

	prop := notion.PropertyValue{Type: "rollup", Raw: json.RawMessage(long)}

	got := Extract(prop)
	assert.Len(t, []rune(got), maxRawLength+3)
	assert.True(t, len(got) > 3 && got[len(got)-3:] == "...")
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		prop     notion.SchemaProperty
		cell     string
		wantSkip bool
		want     map[string]any
	}{
		{
			name: "title verbatim",
			prop: notion.SchemaProperty{Name: "Name", Type: notion.TypeTitle},
			cell: "Task one",
			want: notion.TitleProperty("Task one"),
		},
		{
			name: "rich text verbatim",
			prop: notion.SchemaProperty{Name: "Notes", Type: notion.TypeRichText},
			cell: "free text",
			want: notion.RichTextProperty("free text"),
		},
		{
			name:     "blank cell skips",
			prop:     notion.SchemaProperty{Name: "Name", Type: notion.TypeTitle},
			cell:     "   ",
			wantSkip: true,
		},
		{
			name: "number plain",
			prop: notion.SchemaProperty{Name: "Count", Type: notion.TypeNumber},
			cell: "42.5",
			want: notion.NumberProperty(42.5),
		},
		{
			name: "number strips separators and currency",
			prop: notion.SchemaProperty{Name: "Price", Type: notion.TypeNumber},
			cell: "$1,234.50",
			want: notion.NumberProperty(1234.5),
		},
		{
			name:     "number unparsable skips",
			prop:     notion.SchemaProperty{Name: "Count", Type: notion.TypeNumber},
			cell:     "invalid_number",
			wantSkip: true,
		},
		{
			name: "checkbox truthy variants",
			prop: notion.SchemaProperty{Name: "Done", Type: notion.TypeCheckbox},
			cell: "yes",
			want: notion.CheckboxProperty(true),
		},
		{
			name: "checkbox check mark",
			prop: notion.SchemaProperty{Name: "Done", Type: notion.TypeCheckbox},
			cell: "✓",
			want: notion.CheckboxProperty(true),
		},
		{
			name: "checkbox anything else is false",
			prop: notion.SchemaProperty{Name: "Done", Type: notion.TypeCheckbox},
			cell: "nope",
			want: notion.CheckboxProperty(false),
		},
		{
			name: "select in vocabulary",
			prop: notion.SchemaProperty{
				Name: "Status", Type: notion.TypeSelect,
				Options: []notion.SelectOption{{Name: "Active"}, {Name: "Inactive"}},
			},
			cell: "Active",
			want: notion.SelectProperty("Active"),
		},
		{
			name: "select outside vocabulary skips",
			prop: notion.SchemaProperty{
				Name: "Status", Type: notion.TypeSelect,
				Options: []notion.SelectOption{{Name: "Active"}, {Name: "Inactive"}},
			},
			cell:     "Archived",
			wantSkip: true,
		},
		{
			name: "select without vocabulary accepts anything",
			prop: notion.SchemaProperty{Name: "Status", Type: notion.TypeSelect},
			cell: "Whatever",
			want: notion.SelectProperty("Whatever"),
		},
		{
			name: "status payload",
			prop: notion.SchemaProperty{Name: "Stage", Type: notion.TypeStatus},
			cell: "In progress",
			want: notion.StatusProperty("In progress"),
		},
		{
			name: "multi select splits and trims",
			prop: notion.SchemaProperty{Name: "Tags", Type: notion.TypeMultiSelect},
			cell: "Urgent, ProjectX, ",
			want: notion.MultiSelectProperty([]string{"Urgent", "ProjectX"}),
		},
		{
			name:     "multi select all empty skips",
			prop:     notion.SchemaProperty{Name: "Tags", Type: notion.TypeMultiSelect},
			cell:     ", ,",
			wantSkip: true,
		},
		{
			name: "date keeps first ten characters",
			prop: notion.SchemaProperty{Name: "Due", Type: notion.TypeDate},
			cell: "2024-03-01T10:00:00Z",
			want: notion.DateProperty("2024-03-01"),
		},
		{
			name:     "date wrong shape skips",
			prop:     notion.SchemaProperty{Name: "Due", Type: notion.TypeDate},
			cell:     "03/01/2024",
			wantSkip: true,
		},
		{
			name: "url https",
			prop: notion.SchemaProperty{Name: "Link", Type: notion.TypeURL},
			cell: "https://example.com",
			want: notion.URLProperty("https://example.com"),
		},
		{
			name:     "url without scheme skips",
			prop:     notion.SchemaProperty{Name: "Link", Type: notion.TypeURL},
			cell:     "not_a_url",
			wantSkip: true,
		},
		{
			name: "email contains at sign",
			prop: notion.SchemaProperty{Name: "Mail", Type: notion.TypeEmail},
			cell: "a@b.co",
			want: notion.EmailProperty("a@b.co"),
		},
		{
			name:     "email without at sign skips",
			prop:     notion.SchemaProperty{Name: "Mail", Type: notion.TypeEmail},
			cell:     "nope",
			wantSkip: true,
		},
		{
			name: "phone number verbatim",
			prop: notion.SchemaProperty{Name: "Phone", Type: notion.TypePhoneNumber},
			cell: "+1 555 0100",
			want: notion.PhoneNumberProperty("+1 555 0100"),
		},
		{
			name:     "read-only type skips",
			prop:     notion.SchemaProperty{Name: "Created", Type: notion.TypeCreatedTime},
			cell:     "2024-03-01",
			wantSkip: true,
		},
		{
			name:     "relation skips",
			prop:     notion.SchemaProperty{Name: "Linked", Type: notion.TypeRelation},
			cell:     "2 relations",
			wantSkip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Build(&tt.prop, tt.cell)
			if tt.wantSkip {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTruncatesLongText(t *testing.T) {
	long := make([]rune, MaxTextLength+50)
	for i := range long {
		long[i] = 'a'
	}

	prop := notion.SchemaProperty{Name: "Notes", Type: notion.TypeRichText}
	got, ok := Build(&prop, string(long))
	require.True(t, ok)
	assert.Equal(t, notion.RichTextProperty(string(long[:MaxTextLength])), got)
}

// Round-trip for the value-preserving types: extract then build then
// extract again normalizes to the same display form.
func TestRoundTrip(t *testing.T) {
	t.Run("checkbox", func(t *testing.T) {
		cell := Extract(notion.PropertyValue{Type: notion.TypeCheckbox, Checkbox: true})
		prop := notion.SchemaProperty{Name: "Done", Type: notion.TypeCheckbox}
		payload, ok := Build(&prop, cell)
		require.True(t, ok)
		assert.Equal(t, notion.CheckboxProperty(true), payload)
	})

	t.Run("number", func(t *testing.T) {
		cell := Extract(notion.PropertyValue{Type: notion.TypeNumber, Number: floatPtr(42.5)})
		prop := notion.SchemaProperty{Name: "Count", Type: notion.TypeNumber}
		payload, ok := Build(&prop, cell)
		require.True(t, ok)
		assert.Equal(t, notion.NumberProperty(42.5), payload)
	})

	t.Run("select", func(t *testing.T) {
		cell := Extract(notion.PropertyValue{
			Type:   notion.TypeSelect,
			Select: &notion.SelectOption{Name: "Active"},
		})
		prop := notion.SchemaProperty{Name: "Status", Type: notion.TypeSelect}
		payload, ok := Build(&prop, cell)
		require.True(t, ok)
		assert.Equal(t, notion.SelectProperty("Active"), payload)
	})
}
