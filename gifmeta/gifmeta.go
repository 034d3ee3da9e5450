// Package gifmeta extracts structural metadata from a GIF stream without
// decompressing any pixel data.
package gifmeta

import (
	"encoding/binary"
	"fmt"
	"io"
)

var _ = fmt.Print

// Data is what a single scan of the block structure reports.
type Data struct {
	Version          string
	Width, Height    int
	HasGlobalPalette bool
	PaletteSize      int
	BackgroundIndex  byte
	FrameCount       int
	HasTransparency  bool
	Animated         bool
	LoopCount        int // from the Netscape application block, -1 if absent
}

// ExtractMetadata scans the block structure of a GIF stream. It stops at the
// trailer, or at end of input when the stream ends between two blocks; a
// stream cut off inside a block is an error.
func ExtractMetadata(r io.Reader) (md *Data, err error) {
	var hdr [13]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("gifmeta: reading header: %w", err)
	}
	version := string(hdr[:6])
	if version != "GIF87a" && version != "GIF89a" {
		return nil, fmt.Errorf("gifmeta: unrecognised signature %q", version)
	}
	md = &Data{
		Version:         version,
		Width:           int(binary.LittleEndian.Uint16(hdr[6:8])),
		Height:          int(binary.LittleEndian.Uint16(hdr[8:10])),
		BackgroundIndex: hdr[11],
		LoopCount:       -1,
	}
	fields := hdr[10]
	if fields&0x80 != 0 {
		md.HasGlobalPalette = true
		md.PaletteSize = 2 << (fields & 0x07)
		if err = skip(r, 3*int64(md.PaletteSize)); err != nil {
			return nil, fmt.Errorf("gifmeta: reading global color table: %w", err)
		}
	}

	for {
		var introducer [1]byte
		if _, err = io.ReadFull(r, introducer[:]); err != nil {
			// a stream cut off between blocks still yields what was
			// scanned so far
			return md, nil
		}
		switch introducer[0] {
		case 0x21:
			if err = read_extension(r, md); err != nil {
				return nil, err
			}
		case 0x2C:
			if err = read_image(r); err != nil {
				return nil, err
			}
			md.FrameCount++
			if md.FrameCount > 1 {
				md.Animated = true
			}
		case 0x3B:
			return md, nil
		default:
			return nil, fmt.Errorf("gifmeta: unknown block type 0x%02x", introducer[0])
		}
	}
}

func read_extension(r io.Reader, md *Data) error {
	var label [1]byte
	if _, err := io.ReadFull(r, label[:]); err != nil {
		return fmt.Errorf("gifmeta: reading extension: %w", err)
	}
	switch label[0] {
	case 0xF9: // graphic control
		var block [6]byte
		if _, err := io.ReadFull(r, block[:]); err != nil {
			return fmt.Errorf("gifmeta: reading graphic control: %w", err)
		}
		if block[0] == 4 && block[1]&0x01 != 0 {
			md.HasTransparency = true
		}
		// block[5] is normally the terminator; tolerate oversized
		// blocks by skipping whatever chain remains
		if block[0] > 5 {
			if err := skip(r, int64(block[0])-5); err != nil {
				return fmt.Errorf("gifmeta: reading graphic control: %w", err)
			}
		}
		if block[0] > 4 || block[5] != 0 {
			return skip_sub_blocks(r)
		}
		return nil
	case 0xFF: // application
		var size [1]byte
		if _, err := io.ReadFull(r, size[:]); err != nil {
			return fmt.Errorf("gifmeta: reading application extension: %w", err)
		}
		ident := make([]byte, size[0])
		if _, err := io.ReadFull(r, ident); err != nil {
			return fmt.Errorf("gifmeta: reading application extension: %w", err)
		}
		if string(ident) == "NETSCAPE2.0" {
			md.Animated = true
			return read_netscape(r, md)
		}
		return skip_sub_blocks(r)
	default: // comment, plain text, anything else
		return skip_sub_blocks(r)
	}
}

// read_netscape pulls the loop count out of the Netscape looping block.
func read_netscape(r io.Reader, md *Data) error {
	for {
		var size [1]byte
		if _, err := io.ReadFull(r, size[:]); err != nil {
			return fmt.Errorf("gifmeta: reading looping block: %w", err)
		}
		if size[0] == 0 {
			return nil
		}
		block := make([]byte, size[0])
		if _, err := io.ReadFull(r, block); err != nil {
			return fmt.Errorf("gifmeta: reading looping block: %w", err)
		}
		if size[0] == 3 && block[0] == 1 {
			md.LoopCount = int(binary.LittleEndian.Uint16(block[1:]))
		}
	}
}

func read_image(r io.Reader) error {
	var desc [9]byte
	if _, err := io.ReadFull(r, desc[:]); err != nil {
		return fmt.Errorf("gifmeta: reading image descriptor: %w", err)
	}
	if desc[8]&0x80 != 0 {
		if err := skip(r, 3*int64(2<<(desc[8]&0x07))); err != nil {
			return fmt.Errorf("gifmeta: reading local color table: %w", err)
		}
	}
	var min_code_size [1]byte
	if _, err := io.ReadFull(r, min_code_size[:]); err != nil {
		return fmt.Errorf("gifmeta: reading image data: %w", err)
	}
	return skip_sub_blocks(r)
}

func skip(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

func skip_sub_blocks(r io.Reader) error {
	var size [1]byte
	for {
		if _, err := io.ReadFull(r, size[:]); err != nil {
			return fmt.Errorf("gifmeta: reading sub-blocks: %w", err)
		}
		if size[0] == 0 {
			return nil
		}
		if err := skip(r, int64(size[0])); err != nil {
			return fmt.Errorf("gifmeta: reading sub-blocks: %w", err)
		}
	}
}
