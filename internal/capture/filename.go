package capture

import (
	"fmt"
	"path/filepath"
	"time"
)

// Filename is <tool>-<mode>-<unix ms>.<ext>, e.g. stellar-loop-1718000000000.webm.
func Filename(tool, mode string, t time.Time, ext string) string {
	return fmt.Sprintf("%s-%s-%d.%s", tool, mode, t.UnixMilli(), ext)
}

func StillPath(dir, tool string, t time.Time) string {
	return filepath.Join(dir, Filename(tool, "still", t, "png"))
}
