package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	publicDto "schooldesk_backend/internals/features/public/dto"
	"schooldesk_backend/internals/features/school/parent_feedback/model"
)

const (
	certWidth  = 1200
	certHeight = 900
	certMargin = 70
	glyphW     = 7
	glyphH     = 13
)

var (
	certBG     = color.NRGBA{R: 255, G: 252, B: 243, A: 255}
	certAccent = color.NRGBA{R: 30, G: 64, B: 120, A: 255}
	certInk    = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	certMuted  = color.NRGBA{R: 110, G: 110, B: 110, A: 255}
)

// textImage: satu baris teks basicfont, diperbesar nearest-neighbor.
func textImage(s string, scale int, col color.Color) image.Image {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	if w < 1 {
		w = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, glyphH))
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(s)
	if scale <= 1 {
		return img
	}
	return imaging.Resize(img, w*scale, glyphH*scale, imaging.NearestNeighbor)
}

// wrapText memecah per kata; kata yang lebih panjang dari width dibiarkan utuh.
func wrapText(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(s), "\n") {
		cur := ""
		for _, w := range strings.Fields(para) {
			switch {
			case cur == "":
				cur = w
			case len(cur)+1+len(w) <= width:
				cur += " " + w
			default:
				lines = append(lines, cur)
				cur = w
			}
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

type certCanvas struct {
	img *image.NRGBA
	y   int
}

func (c *certCanvas) center(s string, scale int, col color.Color, gap int) {
	t := textImage(s, scale, col)
	x := (certWidth - t.Bounds().Dx()) / 2
	c.img = imaging.Overlay(c.img, t, image.Pt(x, c.y), 1.0)
	c.y += t.Bounds().Dy() + gap
}

func (c *certCanvas) left(s string, scale int, col color.Color, gap int) {
	t := textImage(s, scale, col)
	c.img = imaging.Overlay(c.img, t, image.Pt(certMargin, c.y), 1.0)
	c.y += t.Bounds().Dy() + gap
}

func (c *certCanvas) section(title, body string) {
	c.left(title, 2, certAccent, 6)
	maxChars := (certWidth - 2*certMargin) / (glyphW * 2)
	lines := wrapText(body, maxChars)
	if len(lines) > 4 {
		lines = append(lines[:3], lines[3]+" ...")
	}
	for _, ln := range lines {
		c.left(ln, 2, certInk, 4)
	}
	c.y += 14
}

func frame(img *image.NRGBA, inset, thickness int, col color.Color) {
	u := image.NewUniform(col)
	b := img.Bounds().Inset(inset)
	for _, r := range []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+thickness),
		image.Rect(b.Min.X, b.Max.Y-thickness, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+thickness, b.Max.Y),
		image.Rect(b.Max.X-thickness, b.Min.Y, b.Max.X, b.Max.Y),
	} {
		draw.Draw(img, r, u, image.Point{}, draw.Src)
	}
}

// RenderCertificate: sertifikat perkembangan bulanan sebagai PNG.
func RenderCertificate(fb model.ParentFeedbackModel, school publicDto.SchoolInfo, issued time.Time) ([]byte, error) {
	c := &certCanvas{img: imaging.New(certWidth, certHeight, certBG), y: 60}
	frame(c.img, 20, 8, certAccent)
	frame(c.img, 36, 2, certAccent)

	c.center(strings.ToUpper(school.Name), 3, certAccent, 8)
	if addr := strings.TrimSpace(strings.Join([]string{school.Address, school.City}, " ")); addr != "" {
		c.center(addr, 1, certMuted, 20)
	} else {
		c.y += 20
	}
	c.center("CERTIFICATE OF PROGRESS", 4, certInk, 24)
	c.center("This certificate is presented to", 2, certMuted, 10)
	c.center(fb.StudentName, 4, certAccent, 10)

	sub := fb.Month
	if label := fb.ClassLabel(); label != "" {
		sub = label + "  |  " + sub
	}
	c.center(sub, 2, certInk, 6)
	c.center(fmt.Sprintf("Attendance: %.0f%%", fb.AttendancePercentage), 2, certInk, 28)

	c.section("What went well", fb.GoodThings)
	c.section("Areas to improve", fb.NeedToImprove)
	c.section("Best they can do", fb.BestCanDo)

	c.y = certHeight - 80
	c.center("Issued "+issued.Format("02 January 2006"), 1, certMuted, 0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode certificate: %w", err)
	}
	return buf.Bytes(), nil
}
