package capture

import (
	"bytes"
	"image"
	"sync"

	"github.com/pkg/errors"
	"golang.design/x/clipboard"
)

var clipboardInit = sync.OnceValue(clipboard.Init)

// CopyStill puts img on the system clipboard as PNG. Hosts without a
// clipboard report ErrUnsupported.
func CopyStill(img image.Image) error {
	if err := clipboardInit(); err != nil {
		return errors.Wrapf(ErrUnsupported, "clipboard: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
