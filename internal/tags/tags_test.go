package tags

import (
	"reflect"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"vegano"},
		{"drag", "festa", "performance", "música"},
		{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
	}

	for _, in := range cases {
		got := Parse(Serialize(in))
		if !reflect.DeepEqual(got, in) {
			t.Errorf("round trip of %v = %v", in, got)
		}
	}
}

func TestSerializeNil(t *testing.T) {
	if s := Serialize(nil); s != "[]" {
		t.Errorf("Serialize(nil) = %q, want []", s)
	}
}

func TestParseCorrupted(t *testing.T) {
	for _, raw := range []string{"", "not json", "{\"a\":1}", "[1,2,3]", "null"} {
		got := Parse(raw)
		if got == nil || len(got) != 0 {
			t.Errorf("Parse(%q) = %v, want empty slice", raw, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := []string{" vegano ", "", "  ", "arte", "música "}
	want := []string{"vegano", "arte", "música"}
	if got := Normalize(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(%v) = %v, want %v", in, got, want)
	}
}
