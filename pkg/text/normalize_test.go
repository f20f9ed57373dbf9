package text_test

import (
	"testing"

	"github.com/adrianliechti/docsmith/pkg/text"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	require.Equal(t, "hello\nworld", text.Clean("hello\r\nworld"))
	require.Equal(t, "hello", text.Clean("\u200bhel\x00lo\f"))
	require.Equal(t, "a\n\nb", text.Clean("a\n \n\n\nb"))
}

func TestCleanInvisibleRunes(t *testing.T) {
	require.Equal(t, "ab", text.Clean("\ufeffa\u200b\u200c\u200db"))
}

func TestCleanIdempotent(t *testing.T) {
	input := "# Title\n\nSome paragraph with **bold** text.\n\n- item"

	once := text.Clean(input)
	twice := text.Clean(once)

	require.Equal(t, input, once)
	require.Equal(t, once, twice)
}

func TestJoin(t *testing.T) {
	require.Equal(t, "one\n\ntwo", text.Join([]string{"one", "", "  ", "two"}))
	require.Equal(t, "", text.Join(nil))
}

func TestIsMarkdown(t *testing.T) {
	require.True(t, text.IsMarkdown("# Title\n\n- first\n- second"))
	require.False(t, text.IsMarkdown("just a plain sentence"))
	require.False(t, text.IsMarkdown(""))
}
