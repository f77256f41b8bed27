// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	guuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/pkg/uuid"
)

/*
TestNew_Version7 verifies the generated value parses as a version 7 UUID.
*/
func TestNew_Version7(t *testing.T) {
	parsed, err := guuid.Parse(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, guuid.Version(7), parsed.Version())
}

/*
TestNew_Sortable checks that later IDs never sort before earlier ones.
*/
func TestNew_Sortable(t *testing.T) {
	previous := uuid.New()
	for i := 0; i < 100; i++ {
		next := uuid.New()
		assert.Less(t, previous, next)
		previous = next
	}
}
