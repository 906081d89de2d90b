// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n models translatable text fields and their resolution to a
// concrete display string. A translatable field is persisted as a JSON value
// that is either a plain string (legacy content) or an object keyed by locale
// code, e.g. {"en": "Title", "ar": "عنوان"}.
package i18n

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Text is a tagged variant: either a plain string or a locale→string mapping.
// The zero value is an empty plain string. Plain strings exist for content
// created before fields became translatable and are returned unchanged by
// the resolver regardless of the requested locale.
type Text struct {
	plain        string
	translations map[string]string
}

// Plain wraps a non-translatable string.
func Plain(s string) Text {
	return Text{plain: s}
}

// Localized wraps a locale→string mapping. The map is copied so later
// mutations of the argument do not leak into the Text value.
func Localized(m map[string]string) Text {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Text{translations: cp}
}

// IsLocalized reports whether the value carries a locale mapping rather
// than a plain string.
func (t Text) IsLocalized() bool {
	return t.translations != nil
}

// Get returns the raw value stored for a locale. For plain strings it
// returns the string itself for any locale. No fallback is applied — use
// Resolver.Resolve for display strings.
func (t Text) Get(locale string) string {
	if t.translations == nil {
		return t.plain
	}
	return t.translations[locale]
}

// IsEmpty reports whether no locale holds a non-empty value.
func (t Text) IsEmpty() bool {
	if t.translations == nil {
		return t.plain == ""
	}
	for _, v := range t.translations {
		if v != "" {
			return false
		}
	}
	return true
}

// MarshalJSON encodes a plain string as a JSON string and a localized value
// as a JSON object.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.translations != nil {
		return json.Marshal(t.translations)
	}
	return json.Marshal(t.plain)
}

// UnmarshalJSON accepts either a JSON string or a locale-keyed object.
// Absent keys are legal; resolution handles them.
func (t *Text) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		t.plain = ""
		t.translations = m
		if t.translations == nil {
			t.translations = map[string]string{}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("i18n text: unsupported JSON shape: %w", err)
	}
	t.plain = s
	t.translations = nil
	return nil
}

// Value implements driver.Valuer so Text round-trips through JSONB columns.
func (t Text) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("i18n text value: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner. NULL scans to the empty plain string.
func (t *Text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Text{}
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("i18n text scan: unsupported type %T", src)
	}
}
