package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_PrefixMatch(t *testing.T) {
	entry, ok := Lookup([]string{"filenames=x", "filename=y"}, "filename")
	require.True(t, ok)
	assert.Equal(t, "filenames=x", entry)
	assert.Equal(t, "x", Value(entry))

	_, ok = Lookup([]string{"path=/tmp"}, "filename")
	assert.False(t, ok)

	_, ok = Lookup(nil, "filename")
	assert.False(t, ok)
}

func TestExact(t *testing.T) {
	entry, ok := Exact([]string{"filenames=x", "filename=y"}, "filename")
	require.True(t, ok)
	assert.Equal(t, "filename=y", entry)

	_, ok = Exact([]string{"filename"}, "filename")
	assert.False(t, ok)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "/tmp/a=b", Value("path=/tmp/a=b"))
	assert.Equal(t, "", Value("path="))
	assert.Equal(t, "bare", Value("bare"))
}

func TestBool(t *testing.T) {
	v, err := Bool("listTasks=true")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Bool("listTasks=0")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = Bool("listTasks=maybe")
	assert.Error(t, err)
}

func TestResolver(t *testing.T) {
	ps := []string{"filenames=x", "filename=y"}

	v, ok := Resolver{}.Get(ps, "filename")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = Resolver{ExactKeys: true}.Get(ps, "filename")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestResolverFlag(t *testing.T) {
	tests := []struct {
		name      string
		params    []string
		exact     bool
		want      bool
		wantFound bool
	}{
		{name: "Absent", params: []string{"filename=a"}},
		{name: "Bare", params: []string{"listTasks"}, want: true, wantFound: true},
		{name: "Bare Exact", params: []string{"listTasks"}, exact: true, want: true, wantFound: true},
		{name: "False", params: []string{"listTasks=false"}, wantFound: true},
		{name: "Zero", params: []string{"listTasks= 0 "}, wantFound: true},
		{name: "Unparsed Value", params: []string{"listTasks=yes"}, want: true, wantFound: true},
		{name: "Blank", params: []string{"listTasks="}, wantFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Resolver{ExactKeys: tt.exact}.Flag(tt.params, "listTasks")
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
