package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsAreStrictlyOrdered(t *testing.T) {
	all := Versions()
	require.Len(t, all, versionCount)
	assert.Equal(t, Earliest, all[0])
	assert.Equal(t, Latest, all[len(all)-1])
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Before(all[i]), "%s < %s", all[i-1], all[i])
	}
}

func TestPreviewSortsAfterItsRelease(t *testing.T) {
	assert.True(t, J12.Before(J12Preview))
	assert.True(t, J12Preview.Before(J13))
	assert.True(t, J13.Before(J13Preview))
	assert.True(t, J13Preview.Before(J14))
	assert.Equal(t, J12, J12Preview.Release())
	assert.True(t, J13Preview.IsPreview())
	assert.False(t, J14.IsPreview())
}

func TestRange(t *testing.T) {
	tests := []struct {
		name string
		a, b Version
		want []Version
	}{
		{"ascending", J1_3, J1_6, []Version{J1_3, J1_4, J1_5, J1_6}},
		{"descending", J1_6, J1_3, []Version{J1_6, J1_5, J1_4, J1_3}},
		{"singleton", J1_5, J1_5, []Version{J1_5}},
		{"previews included", J12, J13Preview, []Version{J12, J12Preview, J13, J13Preview}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Range(tt.a, tt.b))
		})
	}
}

func TestComplement(t *testing.T) {
	others := Complement(J1_5)
	assert.Len(t, others, versionCount-1)
	assert.NotContains(t, others, J1_5)
	assert.Contains(t, others, J1_4)
	assert.Contains(t, others, J21)
}

func TestSinceAndUntil(t *testing.T) {
	assert.Equal(t, []Version{J1_3, J1_4}, Until(J1_5))
	assert.Empty(t, Until(Earliest))
	assert.Equal(t, []Version{J17, J21}, Since(J17))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"1.5", J1_5},
		{"5", J1_5},
		{"J1_5", J1_5},
		{"java8", J1_8},
		{"12-preview", J12Preview},
		{"J13_PREVIEW", J13Preview},
		{" 21 ", J21},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("1.2")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestStringRoundTrip(t *testing.T) {
	for _, v := range Versions() {
		got, err := Parse(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestSet(t *testing.T) {
	s := NewSet(J12Preview, J13Preview).Union(SinceSet(J14))
	assert.True(t, s.Contains(J12Preview))
	assert.False(t, s.Contains(J13))
	assert.True(t, s.Contains(J21))
	assert.Equal(t, "12-preview, 13-preview..21", s.String())

	c := s.Complement()
	assert.True(t, c.Contains(J13))
	assert.False(t, c.Contains(J14))
	assert.Equal(t, versionCount, s.Len()+c.Len())

	first, ok := SinceSet(J1_5).Earliest()
	require.True(t, ok)
	assert.Equal(t, J1_5, first)

	_, ok = Set(0).Earliest()
	assert.False(t, ok)
	assert.Equal(t, "{}", Set(0).String())
}
