package move

import (
	"testing"

	"github.com/matryer/is"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		in   string
		want Direction
	}{
		{"up", Up}, {"U", Up}, {"Down", Down}, {"d", Down},
		{"left", Left}, {"l", Left}, {"RIGHT", Right}, {"r", Right},
	} {
		got, err := Parse(tc.in)
		is.NoErr(err)
		is.Equal(got, tc.want)
	}
	_, err := Parse("sideways")
	is.True(err != nil)
}

func TestEnumerationOrder(t *testing.T) {
	is := is.New(t)
	is.Equal(All, [4]Direction{Up, Down, Left, Right})
	is.Equal(Up.String(), "up")
	is.Equal(Right.String(), "right")
}
