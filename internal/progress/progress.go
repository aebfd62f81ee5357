// Package progress renders transfer progress for long-running downloads.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// NewTransferBar creates a byte-counting progress bar for a file transfer.
// Size may be -1 when the server does not declare a Content-Length; the bar
// then renders as a spinner with a running byte count.
func NewTransferBar(out io.Writer, size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionShowBytes(true),
	)
}
