package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		wantEmpty  bool
		wantLimit  int
		wantOffset int
	}{
		{"first page", Page{Number: 0, Size: 10}, false, 10, 0},
		{"third page", Page{Number: 2, Size: 5}, false, 5, 10},
		{"negative page", Page{Number: -1, Size: 10}, true, 10, -10},
		{"zero size", Page{Number: 0, Size: 0}, true, 0, 0},
		{"negative size", Page{Number: 0, Size: -3}, true, -3, 0},
		{"large size", Page{Number: 1, Size: 500}, false, 500, 500},
		{"huge size", Page{Number: 1, Size: 1 << 40}, true, 1 << 40, 1 << 40},
		{"overflowing page", Page{Number: 1 << 40, Size: 10}, true, 10, 10 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantEmpty, tt.page.Empty())
			assert.Equal(t, tt.wantLimit, tt.page.Limit())
			assert.Equal(t, tt.wantOffset, tt.page.Offset())
		})
	}
}

func TestSlice(t *testing.T) {
	items := []string{"c", "b", "a"}

	assert.Equal(t, []string{"c", "b", "a"}, Slice(items, Page{Number: 0, Size: 10}))
	assert.Equal(t, []string{"b"}, Slice(items, Page{Number: 1, Size: 1}))
	assert.Equal(t, []string{"a"}, Slice(items, Page{Number: 1, Size: 2}))
	assert.Empty(t, Slice(items, Page{Number: 5, Size: 10}), "page past the end is empty")
	assert.NotNil(t, Slice(items, Page{Number: 5, Size: 10}))
	assert.Empty(t, Slice(items, Page{Number: -1, Size: 10}))
	assert.Empty(t, Slice(items, Page{Number: 0, Size: 0}))
	assert.Equal(t, items, Slice(items, Page{Number: 0, Size: math.MaxInt}))
}

func TestSlice_SizeAboveHundredKeepsOffsets(t *testing.T) {
	items := make([]int, 160)
	for i := range items {
		items[i] = i
	}

	first := Slice(items, Page{Number: 0, Size: 150})
	require.Len(t, first, 150)
	assert.Equal(t, 0, first[0])
	assert.Equal(t, 149, first[149])

	second := Slice(items, Page{Number: 1, Size: 150})
	require.Len(t, second, 10)
	assert.Equal(t, 150, second[0])
	assert.Equal(t, 159, second[9])

	assert.Empty(t, Slice(items, Page{Number: 2, Size: 150}))
}
