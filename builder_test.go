package mggif

import (
	"bytes"
	"image/color"
)

// Test colors. Palette entries always carry full alpha; untouched canvas
// pixels are the zero color.
var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	blank = color.RGBA{}
)

// gif_builder assembles GIF byte streams for tests, one block at a time.
type gif_builder struct {
	buf bytes.Buffer
}

func new_gif(w, h int, palette []color.RGBA, background byte) *gif_builder {
	b := &gif_builder{}
	b.buf.WriteString("GIF89a")
	b.u16(w)
	b.u16(h)
	if len(palette) > 0 {
		b.buf.WriteByte(0x80 | palette_bits(len(palette)))
	} else {
		b.buf.WriteByte(0)
	}
	b.buf.WriteByte(background)
	b.buf.WriteByte(0) // pixel aspect ratio
	b.write_palette(palette)
	return b
}

func (b *gif_builder) u16(v int) {
	b.buf.WriteByte(byte(v))
	b.buf.WriteByte(byte(v >> 8))
}

// palette_bits returns the size field encoding the smallest table that
// holds n entries.
func palette_bits(n int) byte {
	bits := byte(0)
	for 2<<bits < n {
		bits++
	}
	return bits
}

func (b *gif_builder) write_palette(p []color.RGBA) {
	if len(p) == 0 {
		return
	}
	n := 2 << palette_bits(len(p))
	for i := 0; i < n; i++ {
		var c color.RGBA
		if i < len(p) {
			c = p[i]
		}
		b.buf.WriteByte(c.R)
		b.buf.WriteByte(c.G)
		b.buf.WriteByte(c.B)
	}
}

func (b *gif_builder) graphic_control(disposal byte, delay_cs, transparent int) *gif_builder {
	flags := disposal << 2
	t := byte(0)
	if transparent >= 0 {
		flags |= 0x01
		t = byte(transparent)
	}
	b.buf.Write([]byte{0x21, 0xF9, 4, flags, byte(delay_cs), byte(delay_cs >> 8), t, 0})
	return b
}

func (b *gif_builder) comment(text string) *gif_builder {
	b.buf.Write([]byte{0x21, 0xFE, byte(len(text))})
	b.buf.WriteString(text)
	b.buf.WriteByte(0)
	return b
}

func (b *gif_builder) netscape_loop(count int) *gif_builder {
	b.buf.Write([]byte{0x21, 0xFF, 11})
	b.buf.WriteString("NETSCAPE2.0")
	b.buf.Write([]byte{3, 1, byte(count), byte(count >> 8), 0})
	return b
}

// image writes an image descriptor followed by an explicitly authored code
// payload, split into sub-blocks.
func (b *gif_builder) image(left, top, w, h int, flags byte, local []color.RGBA, min_code_size int, payload []byte) *gif_builder {
	b.buf.WriteByte(0x2C)
	b.u16(left)
	b.u16(top)
	b.u16(w)
	b.u16(h)
	if local != nil {
		flags |= 0x80 | palette_bits(len(local))
	}
	b.buf.WriteByte(flags)
	if local != nil {
		b.write_palette(local)
	}
	b.buf.WriteByte(byte(min_code_size))
	for len(payload) > 0 {
		n := min(len(payload), 255)
		b.buf.WriteByte(byte(n))
		b.buf.Write(payload[:n])
		payload = payload[n:]
	}
	b.buf.WriteByte(0)
	return b
}

func (b *gif_builder) raw(data ...byte) *gif_builder {
	b.buf.Write(data)
	return b
}

func (b *gif_builder) trailer() []byte {
	b.buf.WriteByte(0x3B)
	return b.buf.Bytes()
}

// code_writer packs variable-width codes LSB first, the bit order the
// decoder reads them in.
type code_writer struct {
	data  []byte
	shift uint32
	bits  int
}

func (cw *code_writer) write(code, width int) {
	cw.shift |= uint32(code) << cw.bits
	cw.bits += width
	for cw.bits >= 8 {
		cw.data = append(cw.data, byte(cw.shift))
		cw.shift >>= 8
		cw.bits -= 8
	}
}

func (cw *code_writer) finish() []byte {
	if cw.bits > 0 {
		cw.data = append(cw.data, byte(cw.shift))
		cw.shift = 0
		cw.bits = 0
	}
	return cw.data
}

// literal_payload encodes pixels as plain single-symbol codes followed by
// the end code, tracking the same width growth schedule the decoder applies.
func literal_payload(min_code_size int, pixels []byte) []byte {
	cw := &code_writer{}
	clear_code := 1 << min_code_size
	num_codes := clear_code + 2
	size := min_code_size + 1
	next_size := 1 << size
	for i, p := range pixels {
		cw.write(int(p), size)
		if i > 0 && num_codes < 4096 {
			num_codes++
			if num_codes >= next_size && size < 12 {
				size++
				next_size <<= 1
			}
		}
	}
	cw.write(clear_code+1, size)
	return cw.finish()
}

// pixels_from_rows lists screen rows top-down and returns them in the
// decoder's bottom-up order.
func pixels_from_rows(rows ...[]color.RGBA) []color.RGBA {
	var ans []color.RGBA
	for i := len(rows) - 1; i >= 0; i-- {
		ans = append(ans, rows[i]...)
	}
	return ans
}
