// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
)

/*
TestNotFound_Message verifies the resource name is folded into the message.
*/
func TestNotFound_Message(t *testing.T) {
	err := apperr.NotFound("book")

	assert.Equal(t, "book not found", err.Error())
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
}

/*
TestAppError_Is checks that equal code and message match through wrapping.
*/
func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", apperr.NotFound("chapter"))

	assert.True(t, errors.Is(wrapped, apperr.NotFound("chapter")))
	assert.False(t, errors.Is(wrapped, apperr.NotFound("book")))
	assert.False(t, errors.Is(wrapped, errors.New("chapter not found")))
}

/*
TestAppError_JSONShape verifies the payload carries an "error" field and hides internals.
*/
func TestAppError_JSONShape(t *testing.T) {
	internal := apperr.Internal(errors.New("disk on fire"))

	raw, err := json.Marshal(internal)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, "An unexpected error occurred", payload["error"])
	assert.Equal(t, "INTERNAL_ERROR", payload["code"])
	assert.NotContains(t, string(raw), "disk on fire")
}

/*
TestAs extracts the AppError from a chain.
*/
func TestAs(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("plain")))

	ae := apperr.As(fmt.Errorf("wrap: %w", apperr.ValidationError("bad")))
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.True(t, apperr.IsAppError(ae))
}
