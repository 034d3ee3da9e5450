package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"os"

	mggif "github.com/SchwartzKamel/mgGif"
	"github.com/SchwartzKamel/mgGif/gifmeta"
)

var _ = fmt.Print

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) == 1 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/frames input-file [output-prefix]")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		return
	}
	output_prefix := os.Args[1]
	if len(os.Args) == 3 {
		output_prefix = os.Args[2]
	}
	md, err := gifmeta.ExtractMetadata(bytes.NewReader(data))
	if err != nil {
		return
	}
	b, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return
	}
	output_file := fmt.Sprintf("%s-metadata.json", output_prefix)
	if err = os.WriteFile(output_file, b, 0o666); err != nil {
		return
	}
	img, err := mggif.DecodeAll(data)
	if err != nil {
		return
	}
	for _, f := range img.Frames {
		output_file := fmt.Sprintf("%s-%05d.png", output_prefix, f.Number)
		var out *os.File
		out, err = os.OpenFile(output_file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
		if err != nil {
			return
		}
		func() {
			defer out.Close()
			err = png.Encode(out, f.ToNRGBA())
		}()
		if err != nil {
			return
		}
	}
	fmt.Printf("Frames decoded to %s-*.[png|json]\n", output_prefix)
}
