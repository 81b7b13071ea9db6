package coerce

import (
	"reflect"
	"testing"
)

func TestBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{name: "string on", in: "on", want: true},
		{name: "string one", in: "1", want: true},
		{name: "int one", in: 1, want: true},
		{name: "json number one", in: float64(1), want: true},
		{name: "bool true", in: true, want: true},
		{name: "string off", in: "off"},
		{name: "string zero", in: "0"},
		{name: "int zero", in: 0},
		{name: "json number zero", in: float64(0)},
		{name: "bool false", in: false},
		{name: "empty string", in: ""},
		{name: "nil", in: nil},
		{name: "plausible truthy string", in: "yes"},
		{name: "uppercase on", in: "ON"},
		{name: "whitespace padded", in: " on"},
		{name: "two", in: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bool(tt.in); got != tt.want {
				t.Fatalf("Bool(%#v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNullableBool(t *testing.T) {
	if got := NullableBool(nil); got != nil {
		t.Fatalf("NullableBool(nil) = %v, want nil", *got)
	}
	if got := NullableBool("on"); got == nil || !*got {
		t.Fatalf("NullableBool(\"on\") = %v, want true", got)
	}
	if got := NullableBool("off"); got == nil || *got {
		t.Fatalf("NullableBool(\"off\") = %v, want false", got)
	}
}

func TestPayload(t *testing.T) {
	fields := []string{"one2one", "victory_weekend"}

	payload := map[string]any{
		"notes": "keep me",
		FieldClasses: map[string]any{
			"one2one":         "on",
			"victory_weekend": "yes",
			"remarks":         "untouched",
		},
		FieldMembers: []any{
			map[string]any{"name": "Ana", "one2one": "1", "victory_weekend": nil},
		},
		FieldInterns: []any{
			map[string]any{"name": "Ben", "one2one": "on"},
		},
	}

	got := Payload(payload, fields)

	wantClasses := map[string]any{
		"one2one":         true,
		"victory_weekend": false,
		"remarks":         "untouched",
	}
	if !reflect.DeepEqual(got[FieldClasses], wantClasses) {
		t.Fatalf("classes = %#v, want %#v", got[FieldClasses], wantClasses)
	}

	members := got[FieldMembers].([]any)
	wantMember := map[string]any{"name": "Ana", "one2one": true, "victory_weekend": false}
	if !reflect.DeepEqual(members[0], wantMember) {
		t.Fatalf("member = %#v, want %#v", members[0], wantMember)
	}

	// Intern entries keep explicit absence: a flag never submitted
	// stays null instead of collapsing to false.
	interns := got[FieldInterns].([]any)
	wantIntern := map[string]any{"name": "Ben", "one2one": true, "victory_weekend": nil}
	if !reflect.DeepEqual(interns[0], wantIntern) {
		t.Fatalf("intern = %#v, want %#v", interns[0], wantIntern)
	}

	if got["notes"] != "keep me" {
		t.Fatalf("notes = %#v, want untouched", got["notes"])
	}
}

func TestPayloadNil(t *testing.T) {
	if got := Payload(nil, []string{"one2one"}); got != nil {
		t.Fatalf("Payload(nil) = %#v, want nil", got)
	}
}
