// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package id generates short prefixed identifiers for bookshelf records.
//
// Format: prefix-nanoid (e.g. "bm-V1StGXR8_Z5jdHi6B-myT"). NanoIDs are
// URL-friendly and collision resistant, unlike ids derived from a clock reading.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("id: generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}
