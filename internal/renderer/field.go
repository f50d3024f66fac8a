package renderer

import (
	"github.com/dpshade/boxgrid/internal/placeholder"
)

// ChangeFunc receives the encoded value of a slot after an accepted edit
type ChangeFunc func(index int, raw string) error

// Part is either literal text or an editable field
type Part struct {
	Literal string
	Field   *Field
}

// Field is one editable slot of a bound cell
type Field struct {
	Index int
	Kind  placeholder.Kind

	// Select options only
	Label string
	Inner placeholder.Kind

	value    string
	option   placeholder.OptionValue
	onChange ChangeFunc
}

// IsOption reports whether the field is a select option
func (f *Field) IsOption() bool {
	return f.Kind == placeholder.Select
}

// Value returns the current value of a simple slot. Unset colors show the
// default color.
func (f *Field) Value() string {
	if f.Kind == placeholder.Color && f.value == "" {
		return placeholder.DefaultColor
	}
	return f.value
}

// Raw returns the encoded value as it would be stored
func (f *Field) Raw() string {
	if f.IsOption() {
		return placeholder.EncodeOption(f.option)
	}
	return f.value
}

// Set replaces a simple slot's value. Input that fails the slot's validation
// is refused and reported as false with no write.
func (f *Field) Set(v string) (bool, error) {
	if f.IsOption() {
		return f.SetPayload(v)
	}
	if !placeholder.Validate(f.Kind, v) {
		return false, nil
	}
	f.value = v
	return true, f.commit()
}

// Enabled reports whether a select option is switched on
func (f *Field) Enabled() bool {
	return f.option.Enabled
}

// Payload returns a select option's payload
func (f *Field) Payload() string {
	return f.option.Payload
}

// PayloadEditable reports whether the payload may be edited
func (f *Field) PayloadEditable() bool {
	return f.IsOption() && f.option.Enabled
}

// SetEnabled toggles a select option
func (f *Field) SetEnabled(on bool) error {
	if !f.IsOption() {
		return nil
	}
	f.option.Enabled = on
	return f.commit()
}

// SetPayload edits a select option's payload, validated against the
// option's inner kind. Disabled options refuse edits.
func (f *Field) SetPayload(p string) (bool, error) {
	if !f.PayloadEditable() || !placeholder.Validate(f.Inner, p) {
		return false, nil
	}
	f.option.Payload = p
	return true, f.commit()
}

// SetRaw applies an encoded value, as typed on the command line. Option
// values must carry a numeric flag and a valid payload.
func (f *Field) SetRaw(raw string) (bool, error) {
	if !f.IsOption() {
		return f.Set(raw)
	}
	if !validOptionRaw(raw) {
		return false, nil
	}
	opt := placeholder.DecodeOption(raw)
	if !placeholder.Validate(f.Inner, opt.Payload) {
		return false, nil
	}
	f.option = opt
	return true, f.commit()
}

func validOptionRaw(raw string) bool {
	for i, r := range raw {
		if r == '|' {
			return i > 0
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return false
}

func (f *Field) commit() error {
	if f.onChange == nil {
		return nil
	}
	return f.onChange(f.Index, f.Raw())
}
