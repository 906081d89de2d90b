// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceMetric is a single web-vitals sample reported for a post.
// Samples are recorded as-is; aggregation happens elsewhere.
type PerformanceMetric struct {
	ID              uuid.UUID `json:"id"`
	PostID          uuid.UUID `json:"post_id"`
	LCP             *float64  `json:"lcp,omitempty"`
	FID             *float64  `json:"fid,omitempty"`
	CLS             *float64  `json:"cls,omitempty"`
	PageLoadTime    *float64  `json:"page_load_time,omitempty"`
	TimeToFirstByte *float64  `json:"time_to_first_byte,omitempty"`
	Region          string    `json:"region"`
	DeviceType      string    `json:"device_type"`
	Browser         string    `json:"browser"`
	MeasuredAt      time.Time `json:"measured_at"`
}

// MeetsWebVitals reports whether the sample passes Core Web Vitals
// thresholds (LCP ≤ 2.5s, CLS ≤ 0.1). Missing values pass.
func (m *PerformanceMetric) MeetsWebVitals() bool {
	return (m.LCP == nil || *m.LCP <= 2.5) &&
		(m.CLS == nil || *m.CLS <= 0.1)
}
