package preferences

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"kotimer/internal/core/model"
)

// presetFields holds the editable text of one preset row.
type presetFields struct {
	Name    string
	Seconds string
	Marks   string
	Wait    bool
}

func fieldsFromPreset(preset model.Preset) presetFields {
	return presetFields{
		Name:    preset.Name,
		Seconds: strconv.Itoa(preset.Seconds()),
		Marks:   FormatMarks(preset.Marks),
		Wait:    preset.Wait,
	}
}

// applyFields returns previous updated from fields. Unparsable seconds keep
// the previous limit.
func applyFields(previous model.Preset, index int, fields presetFields) model.Preset {
	preset := previous
	preset.Name = strings.TrimSpace(fields.Name)
	if preset.Name == "" {
		preset.Name = fmt.Sprintf("Timer %d", index+1)
	}
	if seconds, ok := parsePositiveInt(fields.Seconds); ok {
		preset.TimeLimit = time.Duration(seconds) * time.Second
	}
	if preset.TimeLimit <= 0 {
		preset.TimeLimit = model.DefaultTimeLimit
	}
	if preset.Color == "" {
		preset.Color = model.Palette[index%len(model.Palette)]
	}
	preset.Marks = ParseMarks(fields.Marks)
	preset.Wait = fields.Wait
	return preset
}

// ParseMarks reads a comma or space separated list of positive seconds.
// Invalid items are skipped and duplicates collapse.
func ParseMarks(value string) []int {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	seen := make(map[int]bool, len(fields))
	var marks []int
	for _, field := range fields {
		mark, ok := parsePositiveInt(field)
		if !ok || seen[mark] {
			continue
		}
		seen[mark] = true
		marks = append(marks, mark)
	}
	sort.Ints(marks)
	return marks
}

// FormatMarks is the inverse of ParseMarks.
func FormatMarks(marks []int) string {
	parts := make([]string, 0, len(marks))
	for _, mark := range marks {
		parts = append(parts, strconv.Itoa(mark))
	}
	return strings.Join(parts, ", ")
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
