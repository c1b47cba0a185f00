package ext2

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	cases := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"/a/b/c", []string{"a", "b", "c"}},
		{"a/b", []string{"a", "b"}},
		{"//a//b//", []string{"a", "b"}},
		{".", []string{"."}},
	}

	for _, c := range cases {
		if got := splitPath(c.path); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitPath(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
