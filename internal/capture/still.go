package capture

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
)

// EncodePNG writes img losslessly.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return errors.Wrap(enc.Encode(w, img), "encode png")
}

// SaveStill encodes img to path, replacing any existing file.
func SaveStill(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create still")
	}
	bw := bufio.NewWriter(f)
	if err := EncodePNG(bw, img); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "write still")
	}
	return errors.Wrap(f.Close(), "close still")
}
