// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/pkg/convert"
)

func TestToIntD(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 10},
		{"   ", 10},
		{"25", 25},
		{" 7 ", 7},
		{"-3", -3},
		{"abc", 10},
		{"1.5", 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToIntD(tt.in, 10))
		})
	}
}
