// Package codec converts typed Notion property values to flat sheet
// cells and back. Both directions are pure functions over the schema;
// no network calls happen here.
//
// Lossy types: relation renders as a count, formula as its resolved
// value, people as display names only. None of these round-trip, and
// Build refuses to construct them, so a full notion→sheets→notion
// cycle leaves them untouched on the Notion side.
package codec

import (
	"strconv"
	"strings"

	"notion-sheets-sync/internal/notion"
)

// MaxTextLength is Notion's limit for a single text content block.
const MaxTextLength = 2000

// maxRawLength caps the rendering of unrecognized property payloads.
const maxRawLength = 100

// checkboxTruthy is the accepted set of cell values meaning true,
// compared case-insensitively. Anything else is false.
var checkboxTruthy = []string{"TRUE", "YES", "1", "✓"}

// currencySymbols may prefix a number cell and are stripped before
// parsing.
const currencySymbols = "$€£¥"

// Extract projects one typed property value to its cell string.
// Absent payloads render as "" (checkbox renders FALSE).
func Extract(p notion.PropertyValue) string {
	switch p.Type {
	case notion.TypeTitle:
		return joinPlainText(p.Title)
	case notion.TypeRichText:
		return joinPlainText(p.RichText)
	case notion.TypeSelect:
		if p.Select == nil {
			return ""
		}
		return p.Select.Name
	case notion.TypeStatus:
		if p.Status == nil {
			return ""
		}
		return p.Status.Name
	case notion.TypeMultiSelect:
		names := make([]string, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.Join(names, ", ")
	case notion.TypeNumber:
		if p.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*p.Number, 'f', -1, 64)
	case notion.TypeCheckbox:
		if p.Checkbox {
			return "TRUE"
		}
		return "FALSE"
	case notion.TypeDate:
		return formatDate(p.Date)
	case notion.TypeURL:
		return p.URL
	case notion.TypeEmail:
		return p.Email
	case notion.TypePhoneNumber:
		return p.PhoneNumber
	case notion.TypePeople:
		names := make([]string, 0, len(p.People))
		for _, u := range p.People {
			if u.Name == "" {
				names = append(names, "Unknown User")
			} else {
				names = append(names, u.Name)
			}
		}
		return strings.Join(names, ", ")
	case notion.TypeRelation:
		return strconv.Itoa(len(p.Relation)) + " relations"
	case notion.TypeFormula:
		return extractFormula(p.Formula)
	case notion.TypeCreatedTime:
		return datePart(p.CreatedTime)
	case notion.TypeLastEditedTime:
		return datePart(p.LastEditedTime)
	default:
		return truncateRaw(string(p.Raw))
	}
}

func joinPlainText(fragments []notion.RichText) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.PlainText)
	}
	return b.String()
}

func formatDate(d *notion.Date) string {
	if d == nil || d.Start == "" {
		return ""
	}
	if d.End != "" {
		return d.Start + " to " + d.End
	}
	return d.Start
}

// extractFormula re-extracts using the formula's resolved type.
func extractFormula(f *notion.Formula) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case "string":
		if f.String == nil {
			return ""
		}
		return *f.String
	case "number":
		if f.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*f.Number, 'f', -1, 64)
	case "boolean":
		if f.Boolean != nil && *f.Boolean {
			return "TRUE"
		}
		return "FALSE"
	case "date":
		return formatDate(f.Date)
	default:
		return ""
	}
}

// datePart keeps only the YYYY-MM-DD prefix of an ISO timestamp.
func datePart(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func truncateRaw(s string) string {
	runes := []rune(s)
	if len(runes) > maxRawLength {
		return string(runes[:maxRawLength]) + "..."
	}
	return s
}

// Build constructs the write payload for one cell, or reports skip.
// Skips, not errors: an unparsable, out-of-vocabulary or read-only
// cell is omitted from the property map rather than failing the row.
func Build(prop *notion.SchemaProperty, cell string) (map[string]any, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, false
	}

	switch prop.Type {
	case notion.TypeTitle:
		return notion.TitleProperty(truncateText(cell)), true
	case notion.TypeRichText:
		return notion.RichTextProperty(truncateText(cell)), true
	case notion.TypeNumber:
		n, ok := parseNumber(cell)
		if !ok {
			return nil, false
		}
		return notion.NumberProperty(n), true
	case notion.TypeCheckbox:
		return notion.CheckboxProperty(parseCheckbox(cell)), true
	case notion.TypeSelect:
		if !optionAllowed(prop.Options, cell) {
			return nil, false
		}
		return notion.SelectProperty(cell), true
	case notion.TypeStatus:
		if !optionAllowed(prop.Options, cell) {
			return nil, false
		}
		return notion.StatusProperty(cell), true
	case notion.TypeMultiSelect:
		names := splitMultiSelect(cell)
		if len(names) == 0 {
			return nil, false
		}
		return notion.MultiSelectProperty(names), true
	case notion.TypeDate:
		if !isISODate(cell) {
			return nil, false
		}
		return notion.DateProperty(cell[:10]), true
	case notion.TypeURL:
		if !strings.HasPrefix(cell, "http://") && !strings.HasPrefix(cell, "https://") {
			return nil, false
		}
		return notion.URLProperty(cell), true
	case notion.TypeEmail:
		if !strings.Contains(cell, "@") {
			return nil, false
		}
		return notion.EmailProperty(cell), true
	case notion.TypePhoneNumber:
		return notion.PhoneNumberProperty(cell), true
	default:
		// people, relation, formula, created_time, last_edited_time and
		// unknown types cannot be written back.
		return nil, false
	}
}

func truncateText(s string) string {
	runes := []rune(s)
	if len(runes) > MaxTextLength {
		return string(runes[:MaxTextLength])
	}
	return s
}

// parseNumber strips thousands separators and one leading currency
// symbol before parsing.
func parseNumber(cell string) (float64, bool) {
	s := strings.ReplaceAll(cell, ",", "")
	for _, sym := range currencySymbols {
		s = strings.TrimPrefix(s, string(sym))
	}
	s = strings.TrimSpace(s)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseCheckbox(cell string) bool {
	for _, t := range checkboxTruthy {
		if strings.EqualFold(cell, t) {
			return true
		}
	}
	return false
}

// optionAllowed validates against the schema's option vocabulary when
// one is declared, preventing writes from creating new options. With
// no vocabulary any non-empty value passes.
func optionAllowed(options []notion.SelectOption, name string) bool {
	if len(options) == 0 {
		return true
	}
	for _, opt := range options {
		if opt.Name == name {
			return true
		}
	}
	return false
}

func splitMultiSelect(cell string) []string {
	parts := strings.Split(cell, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// isISODate is a lexical shape check: at least 10 characters with
// hyphens at positions 4 and 7.
func isISODate(cell string) bool {
	return len(cell) >= 10 && cell[4] == '-' && cell[7] == '-'
}
