package preferences

import (
	"testing"
	"time"

	"kotimer/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarks(t *testing.T) {
	cases := []struct {
		input string
		want  []int
	}{
		{"", nil},
		{"60", []int{60}},
		{"120, 60", []int{60, 120}},
		{"5 5;10", []int{5, 10}},
		{"x, -3, 0, 7", []int{7}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseMarks(tc.input), tc.input)
	}
}

func TestFormatMarks(t *testing.T) {
	assert.Equal(t, "", FormatMarks(nil))
	assert.Equal(t, "60, 120", FormatMarks([]int{60, 120}))
}

func TestApplyFields(t *testing.T) {
	previous := model.Preset{Name: "Tea", TimeLimit: 3 * time.Minute, Color: "#F92672"}

	updated := applyFields(previous, 0, presetFields{Name: "  ", Seconds: "abc", Marks: "30", Wait: true})
	assert.Equal(t, "Timer 1", updated.Name)
	assert.Equal(t, 3*time.Minute, updated.TimeLimit)
	assert.Equal(t, []int{30}, updated.Marks)
	assert.Equal(t, "#F92672", updated.Color)
	assert.True(t, updated.Wait)

	fresh := applyFields(model.Preset{}, 5, presetFields{Name: "Eggs", Seconds: "0"})
	assert.Equal(t, model.DefaultTimeLimit, fresh.TimeLimit)
	assert.Equal(t, model.Palette[1], fresh.Color)
}

func TestWindowRoundTrip(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	board := model.DefaultBoard()
	var saved model.BoardConfig
	prefs := New(app, board, func(updated model.BoardConfig) {
		saved = updated
	})

	assert.Equal(t, board, prefs.Board())

	prefs.rows[0].name.SetText("Pasta")
	prefs.rows[0].seconds.SetText("540")
	prefs.rows[0].marks.SetText("300")
	prefs.idleCheck.SetChecked(true)
	prefs.idleMinutes.SetText("2")
	prefs.addDefaultRow()
	prefs.handleSave()

	require.Len(t, saved.Presets, len(board.Presets)+1)
	assert.Equal(t, "Pasta", saved.Presets[0].Name)
	assert.Equal(t, 9*time.Minute, saved.Presets[0].TimeLimit)
	assert.Equal(t, []int{300}, saved.Presets[0].Marks)
	assert.Equal(t, model.DefaultTimeLimit, saved.Presets[len(board.Presets)].TimeLimit)
	assert.True(t, saved.IdleStopEnabled)
	assert.Equal(t, 2*time.Minute, saved.IdleStopAfter)
}

func TestRemoveLastRowKeepsOne(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	board := model.DefaultBoard()
	board.Presets = board.Presets[:2]
	prefs := New(app, board, nil)

	prefs.removeLastRow()
	prefs.removeLastRow()

	assert.Len(t, prefs.Board().Presets, 1)
	assert.Len(t, prefs.rowsBox.Objects, 1)
}
