package resolve

import (
	"github.com/atotto/clipboard"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// ErrClipboardUnavailable indicates no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives generated command blocks.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard through xclip, xsel or
// wl-copy.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Wrap(err, "writing clipboard")
	}
	return nil
}
