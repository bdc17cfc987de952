package screen

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrockway/beaglebone-word-clock/control/face"
)

func TestRefresh(t *testing.T) {
	s := NewScreen()
	dark := s.Image()

	g := face.Render(17, 2)
	if got, want := s.Refresh(g), g.NonEmpty(); got != want {
		t.Errorf("rows:\n  got: %v\n want: %v", got, want)
	}
	if got, want := s.Grid(), g; got != want {
		t.Errorf("grid:\n  got:\n%v\n want:\n%v", got.String(), want.String())
	}
	beer := s.Image()
	if string(beer.Pix) == string(dark.Pix) {
		t.Error("lighting words did not change the image")
	}

	s.Refresh(face.Grid{})
	if got := s.Image(); string(got.Pix) != string(dark.Pix) {
		t.Error("an empty grid does not draw the same image as a new screen")
	}
}

func TestLitLettersAreBright(t *testing.T) {
	s := NewScreen()
	var g face.Grid
	g[0] = g[0].Set(0)
	s.Refresh(g)
	img := s.Image()

	brightest := func(row, col int) uint8 {
		var most uint8
		for y := border + row*cellHeight; y < border+(row+1)*cellHeight; y++ {
			for x := border + col*cellWidth; x < border+(col+1)*cellWidth; x++ {
				if r := img.NRGBAAt(x, y).R; r > most {
					most = r
				}
			}
		}
		return most
	}
	if got, want := brightest(0, 0), lit.R; got != want {
		t.Errorf("lit cell:\n  got: %v\n want: %v", got, want)
	}
	if got, want := brightest(0, 1), unlit.R; got != want {
		t.Errorf("unlit cell:\n  got: %v\n want: %v", got, want)
	}
}

func TestServeHTTP(t *testing.T) {
	s := NewScreen()
	s.Refresh(face.Render(0, 0))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/display.png", nil))
	if got, want := rec.Code, http.StatusOK; got != want {
		t.Errorf("status:\n  got: %v\n want: %v", got, want)
	}
	if got, want := rec.Header().Get("content-type"), "image/png"; got != want {
		t.Errorf("content-type:\n  got: %v\n want: %v", got, want)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if got, want := img.Bounds(), Bounds(); got != want {
		t.Errorf("bounds:\n  got: %v\n want: %v", got, want)
	}
}
