package menu

import (
	"testing"

	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleScrolling(t *testing.T) {
	mem, err := display.NewMemory(128, 32, model.PageVertical)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		pageStart int
		selected  int
		expected  []string
	}{
		{"selected inside page", 0, 1, []string{"a", "b"}},
		{"selected before page", 1, 0, []string{"a", "b"}},
		{"selected after page", 0, 3, []string{"c", "d"}},
		{"one item left on page", 3, 3, []string{"d"}},
	}

	for _, v := range testCases {
		t.Run(v.name, func(t *testing.T) {
			m, err := NewTextListMenu(mem, text.NewRenderer(), []string{"a", "b", "c", "d"}, DefaultStyle())
			require.NoError(t, err)

			m.pageStart = v.pageStart
			m.selected = v.selected

			texts := make([]string, 0)
			for _, slot := range m.Visible() {
				texts = append(texts, slot.Item.Text())
			}

			assert.Equal(t, v.expected, texts)
			assert.LessOrEqual(t, m.pageStart, m.selected)
		})
	}
}
