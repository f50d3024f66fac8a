package placeholder

import "testing"

func TestValidInteger(t *testing.T) {
	accept := []string{"", "-", "42", "-5", "007"}
	reject := []string{"4-2", "4.5", "--", "a", "-x", " 1"}

	for _, s := range accept {
		if !ValidInteger(s) {
			t.Errorf("ValidInteger(%q) = false, want true", s)
		}
	}
	for _, s := range reject {
		if ValidInteger(s) {
			t.Errorf("ValidInteger(%q) = true, want false", s)
		}
	}
}

func TestValidSymbol(t *testing.T) {
	accept := []string{"!!", "", "##", " -+", "→"}
	reject := []string{"a!", "1", "ß", "#9"}

	for _, s := range accept {
		if !ValidSymbol(s) {
			t.Errorf("ValidSymbol(%q) = false, want true", s)
		}
	}
	for _, s := range reject {
		if ValidSymbol(s) {
			t.Errorf("ValidSymbol(%q) = true, want false", s)
		}
	}
}

func TestValidateByKind(t *testing.T) {
	if !Validate(Text, "anything 123") {
		t.Error("text slots should accept anything")
	}
	if !Validate(Color, "not a color") {
		t.Error("color slots are not character-validated")
	}
	if Validate(Integer, "1a") {
		t.Error("integer slot accepted letters")
	}
	if Validate(Symbol, "a") {
		t.Error("symbol slot accepted a letter")
	}
}

func TestOptionRoundTrip(t *testing.T) {
	payloads := []string{"", "3", "!!", "a|b", "x y"}
	for _, enabled := range []bool{true, false} {
		for _, p := range payloads {
			in := OptionValue{Enabled: enabled, Payload: p}
			if got := DecodeOption(EncodeOption(in)); got != in {
				t.Errorf("DecodeOption(EncodeOption(%+v)) = %+v", in, got)
			}
		}
	}
}

func TestDecodeOptionMalformed(t *testing.T) {
	tests := map[string]OptionValue{
		"":       {},
		"1":      {},
		"yes|3":  {},
		"|3":     {},
		"0|":     {},
		"1|":     {Enabled: true},
		"2|keep": {Payload: "keep"},
		"1|a|b":  {Enabled: true, Payload: "a|b"},
	}
	for raw, want := range tests {
		if got := DecodeOption(raw); got != want {
			t.Errorf("DecodeOption(%q) = %+v, want %+v", raw, got, want)
		}
	}
}
