package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayValue(t *testing.T) {
	var nilArr StringArray
	v, err := nilArr.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringArray{"beach", "goa"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["beach","goa"]`, v.(string))
}

func TestStringArrayScan(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want StringArray
	}{
		{"json array", []byte(`["a","b"]`), StringArray{"a", "b"}},
		{"json string", []byte(`"solo"`), StringArray{"solo"}},
		{"bare legacy string", []byte(`beach`), StringArray{"beach"}},
		{"null literal", []byte(`null`), StringArray{}},
		{"empty", []byte(``), StringArray{}},
		{"nil value", nil, StringArray{}},
		{"plain string value", "[\"x\"]", StringArray{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			require.NoError(t, a.Scan(tt.in))
			assert.Equal(t, tt.want, a)
		})
	}

	var a StringArray
	assert.Error(t, a.Scan(42))
}

func TestStringArrayContainsWithout(t *testing.T) {
	a := StringArray{"u1", "u2", "u3"}
	assert.True(t, a.Contains("u2"))
	assert.False(t, a.Contains("u4"))

	b := a.Without("u2")
	assert.Equal(t, StringArray{"u1", "u3"}, b)
	assert.Len(t, a, 3)

	assert.Equal(t, StringArray{}, StringArray{}.Without("x"))
}

func TestStringArrayToggleRoundTrip(t *testing.T) {
	set := StringArray{"u1", "u2"}

	set, liked := set.Toggle("u3")
	assert.True(t, liked)
	assert.Equal(t, StringArray{"u1", "u2", "u3"}, set)

	set, liked = set.Toggle("u3")
	assert.False(t, liked)
	assert.Equal(t, StringArray{"u1", "u2"}, set)

	// toggling an existing member removes it, then restores it
	set, liked = set.Toggle("u1")
	assert.False(t, liked)
	set, liked = set.Toggle("u1")
	assert.True(t, liked)
	assert.ElementsMatch(t, StringArray{"u1", "u2"}, set)
}
