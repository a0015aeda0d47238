package service

import (
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestProgramLabel(t *testing.T) {
	cases := []struct {
		material, title, want string
	}{
		{"Backend", "Belajar Go", "Backend - Belajar Go"},
		{"Backend", "", "Backend"},
		{"", "Belajar Go", "Belajar Go"},
		{"", "", "Program"},
		{"  ", "  ", "Program"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, programLabel(tc.material, tc.title))
	}
}

func TestWrapTextFitsWidth(t *testing.T) {
	dc := gg.NewContext(400, 100)
	dc.SetFontFace(basicfont.Face7x13)

	lines := wrapText(dc, "Telah mengikuti dan menyelesaikan seluruh materi serta latihan pada program kursus", 150)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		require.LessOrEqual(t, w, 150.0)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	dc := gg.NewContext(100, 100)
	dc.SetFontFace(basicfont.Face7x13)

	require.Equal(t, []string{""}, wrapText(dc, "", 50))
}
