package fb2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		stripDot bool
		want     string
	}{
		{"yo folded", "Тёмный лёд", false, "Темный лед"},
		{"spaces collapsed", "  два   слова ", false, "два слова"},
		{"nbsp flattened", "раз два", false, "раз два"},
		{"ellipsis expanded", "Конец…", false, "Конец..."},
		{"trailing dot stripped", "Глава 1.", true, "Глава 1"},
		{"ellipsis survives strip", "Конец...", true, "Конец..."},
		{"dot kept without strip", "Глава 1.", false, "Глава 1."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in, tt.stripDot))
		})
	}
}

func TestFileSafe(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quotes and question", `Кто: "Я"?`, "Кто 'Я'"},
		{"path separators", `том 1/2\3`, "том 1_2_3"},
		{"angle pipes", "a<b>c|d", "abcd"},
		{"trailing dots", "Серия. ", "Серия"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileSafe(tt.in))
		})
	}
}
