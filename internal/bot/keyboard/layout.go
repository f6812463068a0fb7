package keyboard

// Grid lays buttons out perRow to a row; the remainder gets its own shorter row.
func Grid(buttons []InlineButton, perRow int) [][]InlineButton {
	if perRow < 1 {
		perRow = 1
	}

	rows := make([][]InlineButton, 0, (len(buttons)+perRow-1)/perRow)
	for start := 0; start < len(buttons); start += perRow {
		end := start + perRow
		if end > len(buttons) {
			end = len(buttons)
		}

		row := make([]InlineButton, end-start)
		copy(row, buttons[start:end])
		rows = append(rows, row)
	}

	return rows
}
