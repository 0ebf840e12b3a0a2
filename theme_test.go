package mdpane_test

import (
	"testing"

	"mdpane"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := mdpane.DefaultTheme()

	assert.Equal(t, -1, theme.Text)
	assert.Equal(t, -1, theme.Background)
	assert.Equal(t, 5, theme.Accent)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 6, theme.CodeFg)
	assert.Equal(t, 0, theme.CodeBg)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 1, theme.BaseUnit)
}
