package ussdpush

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kevin07696/ussd-push-service/pkg/timeutil"
)

const (
	// typeString is the only dataItem type the gateway declares explicitly
	typeString = "String"

	// nullLiteral is how the gateway encodes SQL NULL inside String items
	nullLiteral = "null"

	// dateItemName carries a YYYYMMDD HHmmss timestamp
	dateItemName = "Date"
)

// DataItem is the gateway's name/type/value triple
// A nil Value means the <value> element was absent
type DataItem struct {
	Name  string  `xml:"name"`
	Type  string  `xml:"type"`
	Value *string `xml:"value"`
}

// Field is a single outbound request value
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered outbound request mapping
// Order is preserved on the wire so envelopes are reproducible
type Fields []Field

// DecodeItem converts a wire dataItem into a typed value
//
// Returns:
//   - time.Time for a present "Date" item in YYYYMMDD HHmmss
//   - nil for absent values and for the "null" literal in String items
//   - the raw string otherwise (including unparseable dates)
func DecodeItem(item DataItem) interface{} {
	if item.Value == nil {
		return nil
	}
	value := *item.Value

	if item.Name == dateItemName {
		if t, err := timeutil.ParseResultDate(value); err == nil {
			return t
		}
		return value
	}

	if item.Type == typeString && value == nullLiteral {
		return nil
	}

	return value
}

// EncodeRequest converts an outbound request into String dataItems
func EncodeRequest(fields Fields) []DataItem {
	items := make([]DataItem, 0, len(fields))
	for _, f := range fields {
		value := f.Value
		items = append(items, DataItem{
			Name:  f.Name,
			Type:  typeString,
			Value: &value,
		})
	}
	return items
}

// camelCase normalizes a gateway field name: "SessionID" -> "sessionId",
// "ThirdPartyReference" -> "thirdPartyReference", "CustomerMSISDN" -> "customerMsisdn"
func camelCase(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}

	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	var b strings.Builder
	b.WriteString(lower.String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// splitWords breaks an identifier on separators and case boundaries
// An upper-case run followed by a lower-case letter ends one letter early ("APIResult" -> "API", "Result")
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	start := -1

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}

		prev := runes[i-1]
		lowerToUpper := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(r)
		acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(r) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1])

		if lowerToUpper || acronymEnd {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}
