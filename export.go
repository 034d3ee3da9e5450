package mggif

import (
	"fmt"
	"image/png"
	"io"

	"github.com/kettek/apng"
)

// as_apng converts the decoded animation for re-encoding. Every frame is
// already a full-canvas snapshot, so each one replaces the canvas outright.
func (self *Image) as_apng() (ans apng.APNG) {
	for _, f := range self.Frames {
		d := apng.Frame{
			Image:     f.ToNRGBA(),
			DisposeOp: apng.DISPOSE_OP_NONE,
			BlendOp:   apng.BLEND_OP_SOURCE,
		}
		// frame delays are whole centiseconds by construction
		d.DelayNumerator = uint16(f.Delay.Milliseconds() / 10)
		d.DelayDenominator = 100
		ans.Frames = append(ans.Frames, d)
	}
	return
}

// EncodeAsPNG writes the animation to w, as a plain PNG for a single frame
// and as an APNG otherwise.
func (self *Image) EncodeAsPNG(w io.Writer) error {
	switch len(self.Frames) {
	case 0:
		return fmt.Errorf("mggif: no frames to encode")
	case 1:
		return png.Encode(w, self.Frames[0].ToNRGBA())
	}
	return apng.Encode(w, self.as_apng())
}
