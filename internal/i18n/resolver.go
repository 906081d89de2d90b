// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

// Resolver turns a Text value into a single display string for a requested
// locale. It is a total function: any malformed or partial mapping resolves
// to the fallback locale and finally to the empty string, never an error.
type Resolver struct {
	fallback string
}

// NewResolver creates a resolver with the given fallback locale.
// The platform fallback is always "en".
func NewResolver(fallback string) *Resolver {
	return &Resolver{fallback: fallback}
}

// Resolve returns the display string for locale:
//   - plain strings are returned unchanged,
//   - a non-empty value for the requested locale wins,
//   - otherwise the fallback locale value,
//   - otherwise "".
func (r *Resolver) Resolve(t Text, locale string) string {
	if !t.IsLocalized() {
		return t.Get(locale)
	}
	if v := t.Get(locale); v != "" {
		return v
	}
	return t.Get(r.fallback)
}
