package ui

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// NewConversionBar returns the single-line progress bar the designated
// worker advances as files complete. When stdout is not a terminal the
// bar writes nowhere so piped output stays clean.
func NewConversionBar(total int) *progressbar.ProgressBar {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return progressbar.NewOptions(total, progressbar.OptionSetWriter(io.Discard))
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("📷 Converting"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
