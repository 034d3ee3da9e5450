package mggif

import (
	"fmt"
	"image/color"
)

// read_code returns the next code of code_size bits from the sub-block
// chain, LSB first, or -1 once the chain's 0-length terminator has been
// consumed.
func (self *Decoder) read_code(code_size int) (int, error) {
	for self.shift_bits < code_size {
		if self.block_len == 0 {
			n, err := self.read_byte()
			if err != nil {
				return 0, err
			}
			if n == 0 {
				self.block_done = true
				return -1, nil
			}
			if self.pos+int(n) > len(self.data) {
				return 0, fmt.Errorf("%w: %d declared bytes at offset %d", ErrMalformed, n, self.pos-1)
			}
			self.block_len = int(n)
		}
		self.shift |= uint32(self.data[self.pos]) << self.shift_bits
		self.pos++
		self.block_len--
		self.shift_bits += 8
	}
	code := int(self.shift & (1<<code_size - 1))
	self.shift >>= code_size
	self.shift_bits -= code_size
	return code, nil
}

// decompress drives the LZW engine over one image payload, writing palette
// lookups straight into the canvas. The dictionary is a flat symbol buffer:
// each entry is a length followed by that many palette indices, addressed
// through code_index. Entries are appended, never moved, so offsets stay
// valid as the buffer grows.
func (self *Decoder) decompress(left, top, width, height int, pal *[256]color.RGBA) error {
	mcs, err := self.read_byte()
	if err != nil {
		return err
	}
	min_code_size := int(mcs)
	if min_code_size > 11 {
		min_code_size = 11
	}

	clear_code := 1 << min_code_size
	end_code := clear_code + 1
	code_size := min_code_size + 1
	next_size := 1 << code_size
	num_codes := clear_code + 2

	codes := self.codes[:0]
	for i := 0; i < clear_code; i++ {
		self.code_index[i] = len(codes)
		codes = append(codes, 1, uint16(i))
	}
	initial := len(codes)

	self.block_len = 0
	self.block_done = false
	self.shift = 0
	self.shift_bits = 0

	// The canvas is bottom-up: the frame's top row lands at the highest
	// row base and each wrap steps one screen row down the buffer.
	// row_end is where the cursor wraps, safe_end the last writable
	// column; both are hoisted so the pixel loop carries no bounds
	// arithmetic.
	w, h := self.width, self.height
	row_base := (h - 1 - top) * w
	x := left
	row_end := left + width
	safe_end := min(row_end, w)
	rows_left := height
	transparent := self.transparent_index
	filled := row_base < 0
	out := self.output

	previous := -1
	for {
		code, err := self.read_code(code_size)
		if err != nil {
			self.codes = codes
			return err
		}
		if code < 0 {
			break // chain ended without an explicit end code
		}
		if code == clear_code {
			code_size = min_code_size + 1
			next_size = 1 << code_size
			num_codes = clear_code + 2
			codes = codes[:initial]
			previous = -1
			continue
		}
		if code == end_code {
			break
		}

		var offset int
		if code < num_codes {
			offset = self.code_index[code]
			if previous >= 0 && num_codes < 4096 {
				prev_off := self.code_index[previous]
				prev_len := int(codes[prev_off])
				k := codes[offset+1]
				self.code_index[num_codes] = len(codes)
				codes = append(codes, uint16(prev_len+1))
				codes = append(codes, codes[prev_off+1:prev_off+1+prev_len]...)
				codes = append(codes, k)
				num_codes++
			}
		} else if code == num_codes && previous >= 0 {
			// the KwKwK case: the entry being defined is the one to
			// emit, previous sequence plus its own first symbol
			prev_off := self.code_index[previous]
			prev_len := int(codes[prev_off])
			k := codes[prev_off+1]
			offset = len(codes)
			self.code_index[num_codes] = offset
			codes = append(codes, uint16(prev_len+1))
			codes = append(codes, codes[prev_off+1:prev_off+1+prev_len]...)
			codes = append(codes, k)
			num_codes++
		} else {
			// an orphan code with nothing to anchor it, skip
			continue
		}

		if !filled {
			seq := codes[offset+1 : offset+1+int(codes[offset])]
			for _, idx := range seq {
				if x < safe_end && int(idx) != transparent {
					out[row_base+x] = pal[idx]
				}
				x++
				if x == row_end {
					x = left
					row_base -= w
					rows_left--
					if rows_left == 0 || row_base < 0 {
						filled = true
						break
					}
				}
			}
		}

		previous = code
		if num_codes >= next_size && code_size < 12 {
			code_size++
			next_size <<= 1
		}
	}

	self.codes = codes
	// whatever is left of the current sub-block, then the rest of the
	// chain up to the terminator
	self.pos += self.block_len
	self.block_len = 0
	if self.block_done {
		return nil
	}
	return self.skip_blocks()
}
