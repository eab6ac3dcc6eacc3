package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SessionName returns a unique, time-stamped name:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string) string {
	return SessionNameAt(prefix, time.Now())
}

// SessionNameAt is SessionName for a fixed instant.
func SessionNameAt(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, t.Format("20060102_150405"))
}

// OutputPath places <name><ext> inside dir.
func OutputPath(dir, name, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(dir, name+ext)
}
