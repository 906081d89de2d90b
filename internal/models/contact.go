// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactStatus tracks the handling state of a contact submission.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
	ContactStatusSpam      ContactStatus = "spam"
)

// Valid reports whether the status is one of the fixed enum values.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusResponded, ContactStatusSpam:
		return true
	}
	return false
}

// ContactSubmission is a message sent through the public contact form.
// It is a simple write path separate from the content core.
type ContactSubmission struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       *string       `json:"phone,omitempty"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	Region      string        `json:"region"`
	Locale      string        `json:"locale"`
	IPAddress   string        `json:"ip_address"`
	UserAgent   *string       `json:"user_agent,omitempty"`
	Referer     *string       `json:"referer,omitempty"`
	Status      ContactStatus `json:"status"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
	RespondedBy *uuid.UUID    `json:"responded_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
