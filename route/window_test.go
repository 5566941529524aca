package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildWindow(t *testing.T) {
	r := straightRoute(5, 10)

	tests := []struct {
		name  string
		start int
		size  int
		want  Route
	}{
		{"truncated at end", 3, 200, r[3:5]},
		{"full size", 0, 2, r[0:2]},
		{"none", None, 200, Route{}},
		{"negative", -7, 200, Route{}},
		{"past end", 5, 200, Route{}},
		{"zero size", 1, 0, Route{}},
		{"last point", 4, 200, r[4:5]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildWindow(r, tt.start, tt.size)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildWindow(%d, %d) mismatch (-want +got):\n%s", tt.start, tt.size, diff)
			}
		})
	}
}

func TestBuildWindowLength(t *testing.T) {
	r := straightRoute(5, 10)
	assert.Len(t, BuildWindow(r, 3, 200), 2)
	assert.Len(t, BuildWindow(r, None, 200), 0)
	assert.NotNil(t, BuildWindow(r, None, 200))
}

func TestBuildWindowDoesNotAlias(t *testing.T) {
	r := straightRoute(5, 10)
	window := BuildWindow(r, 1, 3)
	window[0].X = 1000
	assert.Equal(t, 10.0, r[1].X)
}
