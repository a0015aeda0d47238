package service

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// CertificateData: isian yang digambar di atas template sertifikat.
type CertificateData struct {
	StudentName    string
	InstructorName string
	MaterialType   string
	CourseTitle    string
	IssuedDate     string
	PlatformName   string
}

var textColor = color.RGBA{R: 20, G: 45, B: 85, A: 255}

// Direktori yang dicoba saat mencari font TTF, berurutan.
func fontDirectories() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join("file_pendukung", "sertifikat"),
		"file_pendukung",
		filepath.Join(home, "fonts"),
		"/usr/share/fonts/truetype",
		"/usr/share/fonts/truetype/dejavu",
		"/usr/share/fonts/truetype/liberation",
		"/Library/Fonts",
	}
}

// loadFace mencari font dari daftar kandidat; kalau semuanya gagal,
// jatuh ke basicfont supaya sertifikat tetap bisa dibuat.
func loadFace(size float64, bold bool) font.Face {
	regular := []string{"Arial.ttf", "arial.ttf", "DejaVuSans.ttf", "LiberationSans-Regular.ttf"}
	boldNames := []string{"Arial Bold.ttf", "arialbd.ttf", "DejaVuSans-Bold.ttf", "LiberationSans-Bold.ttf"}
	candidates := regular
	if bold {
		candidates = boldNames
	}
	for _, dir := range fontDirectories() {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			raw, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			parsed, err := truetype.Parse(raw)
			if err != nil {
				continue
			}
			return truetype.NewFace(parsed, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingNone,
			})
		}
	}
	return basicfont.Face7x13
}

// programLabel menggabungkan jenis materi dan judul course menjadi label
// program pada paragraf sertifikat.
func programLabel(materialType, courseTitle string) string {
	material := strings.TrimSpace(materialType)
	title := strings.TrimSpace(courseTitle)
	switch {
	case material != "" && title != "":
		return material + " - " + title
	case material != "":
		return material
	case title != "":
		return title
	default:
		return "Program"
	}
}

// wrapText memecah paragraf menjadi baris-baris yang muat di maxWidth.
func wrapText(dc *gg.Context, value string, maxWidth float64) []string {
	words := strings.Fields(value)
	var lines []string
	current := ""
	for _, word := range words {
		candidate := strings.TrimSpace(current + " " + word)
		if w, _ := dc.MeasureString(candidate); candidate != "" && w <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func drawCentered(dc *gg.Context, text string, centerX, y float64, lineGap float64) float64 {
	if text == "" {
		return y
	}
	w, h := dc.MeasureString(text)
	dc.DrawString(text, centerX-w/2, y+h)
	return y + h + lineGap
}

// RenderPNG menggambar isian di atas template dan mengembalikan PNG jadi.
func RenderPNG(templatePath string, data CertificateData) ([]byte, error) {
	background, err := imaging.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("gagal membuka template sertifikat: %w", err)
	}

	dc := gg.NewContext(background.Bounds().Dx(), background.Bounds().Dy())
	dc.DrawImage(background, 0, 0)
	dc.SetColor(textColor)

	width := float64(dc.Width())
	height := float64(dc.Height())
	centerX := width / 2

	studentFace := loadFace(72, true)
	bodyFace := loadFace(38, false)
	infoFace := loadFace(30, false)
	signatureFace := loadFace(32, true)

	dc.SetFontFace(studentFace)
	bodyY := drawCentered(dc, data.StudentName, centerX, height*0.42, 50)

	paragraph := fmt.Sprintf(
		"Telah mengikuti dan menyelesaikan seluruh materi serta latihan pada program kursus %s dan dinyatakan lulus dengan hasil yang memuaskan.",
		programLabel(data.MaterialType, data.CourseTitle),
	)
	dc.SetFontFace(bodyFace)
	for _, line := range wrapText(dc, paragraph, width*0.75) {
		bodyY = drawCentered(dc, line, centerX, bodyY, 10)
	}

	dc.SetFontFace(infoFace)
	drawCentered(dc, "Diterbitkan pada "+data.IssuedDate, centerX, bodyY+30, 10)

	signatureY := height * 0.84
	dc.SetFontFace(signatureFace)
	drawCentered(dc, data.InstructorName, width*0.27, signatureY, 0)
	platform := data.PlatformName
	if platform == "" {
		platform = "TechNova Academy"
	}
	drawCentered(dc, platform, width*0.73, signatureY, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("gagal encode PNG sertifikat: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildPDF membungkus PNG hasil render menjadi PDF satu halaman dengan
// ukuran halaman sama dengan gambarnya.
func BuildPDF(templatePath string, data CertificateData) ([]byte, error) {
	png, err := RenderPNG(templatePath, data)
	if err != nil {
		return nil, err
	}

	cfg, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("gagal membaca ulang PNG sertifikat: %w", err)
	}
	const pxToMM = 25.4 / 72.0
	wMM := float64(cfg.Bounds().Dx()) * pxToMM
	hMM := float64(cfg.Bounds().Dy()) * pxToMM

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: wMM, Ht: hMM},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, bytes.NewReader(png))
	pdf.ImageOptions("certificate", 0, 0, wMM, hMM, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("gagal menulis PDF sertifikat: %w", err)
	}
	return out.Bytes(), nil
}
