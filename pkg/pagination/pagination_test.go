package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, NormalizeLimit(0))
	require.Equal(t, DefaultLimit, NormalizeLimit(-5))
	require.Equal(t, 40, NormalizeLimit(40))
	require.Equal(t, MaxLimit, NormalizeLimit(5000))
}

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 600000000, time.UTC), ID: 42}

	out, err := ParseCursor(EncodeCursor(in))
	require.NoError(t, err)
	require.NotNil(t, out)
	require.True(t, in.CreatedAt.Equal(out.CreatedAt))
	require.Equal(t, in.ID, out.ID)
}

func TestParseCursorEmptyAndMalformed(t *testing.T) {
	out, err := ParseCursor("   ")
	require.NoError(t, err)
	require.Nil(t, out)

	_, err = ParseCursor("!!not-a-cursor!!")
	require.Error(t, err)
}
