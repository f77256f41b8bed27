// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/pkg/id"
)

/*
TestGenerate_Uniqueness generates IDs in a tight loop and expects no collision.
*/
func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		value, err := id.Generate("bm")
		require.NoError(t, err)
		assert.False(t, seen[value], "duplicate id %s", value)
		seen[value] = true
	}
}

/*
TestGenerate_Format checks the prefix and the 21 character NanoID body.
*/
func TestGenerate_Format(t *testing.T) {
	value, err := id.Generate("bm")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(value, "bm-"))
	assert.Len(t, strings.TrimPrefix(value, "bm-"), 21)
}
