package mggif

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/kovidgoyal/go-parallel"
	"golang.org/x/image/draw"
)

var _ = fmt.Print

// Frame is one composed animation frame: a value-copy of the whole logical
// screen at the moment of emission. Pixels holds Width*Height colors in
// bottom-up row order (the first Width entries are the bottom screen row).
type Frame struct {
	Number uint
	Width  int
	Height int
	Delay  time.Duration
	Pixels []color.RGBA
}

// Image is a fully decoded animation.
type Image struct {
	Frames          []*Frame
	Version         string
	Width, Height   int
	BackgroundColor color.RGBA
}

// DecodeAll decodes every frame of data.
func DecodeAll(data []byte) (*Image, error) {
	d := NewDecoder(data)
	defer d.Close()
	ans := &Image{}
	for {
		frame, err := d.NextFrame()
		if err != nil {
			return nil, err
		}
		if frame == nil {
			break
		}
		ans.Frames = append(ans.Frames, frame)
	}
	ans.Version = d.Version()
	ans.Width = d.Width()
	ans.Height = d.Height()
	ans.BackgroundColor = d.BackgroundColor()
	return ans, nil
}

// ToNRGBA returns the frame as a top-down stdlib image, for interop with
// image/png and friends. Rows are converted in parallel.
func (self *Frame) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, self.Width, self.Height))
	w, h := self.Width, self.Height
	f := func(start, limit int) {
		for y := start; y < limit; y++ {
			src := self.Pixels[(h-1-y)*w : (h-y)*w]
			row := img.Pix[y*img.Stride:]
			for x, c := range src {
				s := row[4*x : 4*x+4 : 4*x+4]
				s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
			}
		}
	}
	_ = parallel.Run_in_parallel_over_range(0, f, 0, h)
	return img
}

// Scaled returns the frame resampled to width x height.
func (self *Frame) Scaled(width, height int) *image.NRGBA {
	src := self.ToNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
