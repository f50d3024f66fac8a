package placeholder

import (
	"strings"
	"unicode"
)

// DefaultColor is shown for an unset color slot
const DefaultColor = "#000000"

// DefaultOption is the raw value of an untouched select option
const DefaultOption = "0|"

// ValidInteger accepts "", "-", digits, or '-' followed by digits
func ValidInteger(s string) bool {
	if s == "" || s == "-" {
		return true
	}
	return allDigits(strings.TrimPrefix(s, "-"))
}

// ValidSymbol accepts strings without letters or digits
func ValidSymbol(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Validate reports whether s is acceptable input for a slot of kind k.
// Only integer and symbol slots restrict characters.
func Validate(k Kind, s string) bool {
	switch k {
	case Integer:
		return ValidInteger(s)
	case Symbol:
		return ValidSymbol(s)
	default:
		return true
	}
}

// OptionValue is the decoded state of one select option slot
type OptionValue struct {
	Enabled bool
	Payload string
}

// EncodeOption packs an option state as "<0|1>|<payload>"
func EncodeOption(v OptionValue) string {
	flag := "0"
	if v.Enabled {
		flag = "1"
	}
	return flag + "|" + v.Payload
}

// DecodeOption splits a raw option value on its first '|'. Values with no
// separator or a non-numeric flag decode to a disabled, empty option.
func DecodeOption(raw string) OptionValue {
	flag, payload, ok := strings.Cut(raw, "|")
	if !ok || !allDigits(flag) {
		return OptionValue{}
	}
	return OptionValue{Enabled: flag == "1", Payload: payload}
}
