package keyboard_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/keyboard"
)

func TestGrid(t *testing.T) {
	testCases := []struct {
		name      string
		count     int
		perRow    int
		wantSizes []int
	}{
		{name: "empty", count: 0, perRow: 2, wantSizes: []int{}},
		{name: "single", count: 1, perRow: 2, wantSizes: []int{1}},
		{name: "exact pair", count: 2, perRow: 2, wantSizes: []int{2}},
		{name: "remainder row", count: 3, perRow: 2, wantSizes: []int{2, 1}},
		{name: "two pairs", count: 4, perRow: 2, wantSizes: []int{2, 2}},
		{name: "non-positive width", count: 2, perRow: 0, wantSizes: []int{1, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buttons := make([]keyboard.InlineButton, tc.count)
			for i := range buttons {
				buttons[i] = keyboard.InlineButton{Text: fmt.Sprint(i), Unique: fmt.Sprintf("meat_%d", i)}
			}

			rows := keyboard.Grid(buttons, tc.perRow)

			sizes := make([]int, len(rows))
			for i, row := range rows {
				sizes[i] = len(row)
			}
			assert.Equal(t, tc.wantSizes, sizes)

			if tc.count > 0 {
				assert.Equal(t, "meat_0", rows[0][0].Unique, "order is preserved")
			}
		})
	}
}
