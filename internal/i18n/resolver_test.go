package i18n

import (
	"encoding/json"
	"testing"
)

// TestResolve exercises locale resolution across plain strings, complete
// mappings, partial mappings, and empty values.
func TestResolve(t *testing.T) {
	r := NewResolver("en")

	tests := []struct {
		name   string
		value  Text
		locale string
		want   string
	}{
		{
			name:   "plain string returned unchanged for en",
			value:  Plain("legacy title"),
			locale: "en",
			want:   "legacy title",
		},
		{
			name:   "plain string returned unchanged for ar",
			value:  Plain("legacy title"),
			locale: "ar",
			want:   "legacy title",
		},
		{
			name:   "exact locale match",
			value:  Localized(map[string]string{"en": "Hello", "ar": "مرحبا"}),
			locale: "ar",
			want:   "مرحبا",
		},
		{
			name:   "missing locale falls back to english",
			value:  Localized(map[string]string{"en": "Hello"}),
			locale: "ar",
			want:   "Hello",
		},
		{
			name:   "empty locale value falls back to english",
			value:  Localized(map[string]string{"en": "Hello", "ar": ""}),
			locale: "ar",
			want:   "Hello",
		},
		{
			name:   "arabic only mapping requested in english",
			value:  Localized(map[string]string{"ar": "عنوان"}),
			locale: "en",
			want:   "",
		},
		{
			name:   "empty mapping",
			value:  Localized(map[string]string{}),
			locale: "en",
			want:   "",
		},
		{
			name:   "nil-equivalent zero value",
			value:  Text{},
			locale: "en",
			want:   "",
		},
		{
			name:   "unknown locale falls back to english",
			value:  Localized(map[string]string{"en": "Hello", "ar": "مرحبا"}),
			locale: "fr",
			want:   "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.value, tt.locale)
			if got != tt.want {
				t.Errorf("Resolve(%v, %q) = %q, want %q", tt.value, tt.locale, got, tt.want)
			}
		})
	}
}

// TestTextJSONRoundTrip verifies both persisted shapes decode and re-encode
// without losing the plain/localized distinction.
func TestTextJSONRoundTrip(t *testing.T) {
	t.Run("object shape", func(t *testing.T) {
		var txt Text
		if err := json.Unmarshal([]byte(`{"en":"Hello","ar":"مرحبا"}`), &txt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !txt.IsLocalized() {
			t.Error("expected localized value")
		}
		if txt.Get("ar") != "مرحبا" {
			t.Errorf("ar: got %q", txt.Get("ar"))
		}

		out, err := json.Marshal(txt)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var again Text
		if err := json.Unmarshal(out, &again); err != nil {
			t.Fatalf("re-unmarshal: %v", err)
		}
		if again.Get("en") != "Hello" {
			t.Errorf("en after round trip: got %q", again.Get("en"))
		}
	})

	t.Run("legacy string shape", func(t *testing.T) {
		var txt Text
		if err := json.Unmarshal([]byte(`"plain old title"`), &txt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if txt.IsLocalized() {
			t.Error("expected plain value")
		}
		if txt.Get("ar") != "plain old title" {
			t.Errorf("plain value for any locale: got %q", txt.Get("ar"))
		}
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		var txt Text
		if err := json.Unmarshal([]byte(`42`), &txt); err == nil {
			t.Error("expected error for numeric JSON")
		}
	})
}

// TestTextScan covers the sql.Scanner paths used when reading JSONB columns.
func TestTextScan(t *testing.T) {
	var txt Text
	if err := txt.Scan([]byte(`{"en":"A"}`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if txt.Get("en") != "A" {
		t.Errorf("got %q, want %q", txt.Get("en"), "A")
	}

	if err := txt.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !txt.IsEmpty() {
		t.Error("expected empty text after NULL scan")
	}

	if err := txt.Scan(12); err == nil {
		t.Error("expected error for unsupported scan type")
	}
}

// TestTextIsEmpty checks emptiness across both variants.
func TestTextIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value Text
		want  bool
	}{
		{"zero value", Text{}, true},
		{"plain empty", Plain(""), true},
		{"plain set", Plain("x"), false},
		{"map empty", Localized(map[string]string{}), true},
		{"map with empty values", Localized(map[string]string{"en": "", "ar": ""}), true},
		{"map with one value", Localized(map[string]string{"ar": "عنوان"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}
