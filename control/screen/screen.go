// Package screen draws the face as an image, and retains it for debugging the rest of the program
// without the lamps attached.
package screen

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"net/http"
	"sync"

	"github.com/jrockway/beaglebone-word-clock/control/face"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cellWidth  = 20 // Size of one letter cell in the rendered image.
	cellHeight = 24
	border     = 10 // Border around the whole face.
)

var (
	background = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	unlit      = color.NRGBA{R: 0x38, G: 0x38, B: 0x38, A: 0xff}
	lit        = color.NRGBA{R: 0xff, G: 0xd0, B: 0x60, A: 0xff}
)

// Screen is a picture of the face: the printed letters, with the lit ones bright and the rest dim.
// It implements clock.Display so it can be fanned out alongside the real lamps.
type Screen struct {
	face font.Face

	imageMu sync.Mutex
	grid    face.Grid    // the grid image was drawn from; must hold imageMu.
	drawn   bool         // whether image has been drawn at all; must hold imageMu.
	image   *image.NRGBA // must hold imageMu to read or write.
}

// NewScreen returns a Screen showing a dark face.
func NewScreen() *Screen {
	s := &Screen{
		face:  basicfont.Face7x13,
		image: image.NewNRGBA(Bounds()),
	}
	s.Refresh(face.Grid{})
	return s
}

// Bounds returns the size of the rendered image.
func Bounds() image.Rectangle {
	return image.Rect(0, 0, 2*border+face.Cols*cellWidth, 2*border+face.Rows*cellHeight)
}

// Refresh redraws the image if g differs from what was last drawn, and returns the number of
// non-empty rows.  The hour change animation produces grids that spell nothing, and those are
// drawn too.
func (s *Screen) Refresh(g face.Grid) int {
	s.imageMu.Lock()
	defer s.imageMu.Unlock()
	if s.drawn && g == s.grid {
		return g.NonEmpty()
	}
	s.grid = g
	s.drawn = true
	draw.Draw(s.image, s.image.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	ascent := s.face.Metrics().Ascent
	for row := 0; row < face.Rows; row++ {
		for col := 0; col < face.Cols; col++ {
			c := unlit
			if g.Lit(row, col) {
				c = lit
			}
			letter := string(face.Letters[row][col])
			adv := font.MeasureString(s.face, letter)
			x := fixed.I(border+col*cellWidth) + (fixed.I(cellWidth)-adv)/2
			y := fixed.I(border+row*cellHeight) + (fixed.I(cellHeight)+ascent)/2
			(&font.Drawer{
				Dst:  s.image,
				Src:  image.NewUniform(c),
				Face: s.face,
				Dot:  fixed.Point26_6{X: x, Y: y},
			}).DrawString(letter)
		}
	}
	return g.NonEmpty()
}

// Grid returns the grid the image was last drawn from.
func (s *Screen) Grid() face.Grid {
	s.imageMu.Lock()
	defer s.imageMu.Unlock()
	return s.grid
}

// Image returns a copy of the current image.
func (s *Screen) Image() *image.NRGBA {
	s.imageMu.Lock()
	defer s.imageMu.Unlock()
	img := image.NewNRGBA(s.image.Bounds())
	copy(img.Pix, s.image.Pix)
	return img
}

// ServeHTTP serves the current image as a PNG.
func (s *Screen) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Add("content-type", "image/png")
	w.WriteHeader(http.StatusOK)
	s.imageMu.Lock()
	defer s.imageMu.Unlock()
	if err := png.Encode(w, s.image); err != nil {
		log.Printf("encoding image: %v", err)
	}
}
