//go:build !darwin

package clipboard

import (
	"errors"

	"github.com/wailsapp/wails/v3/pkg/application"
)

var errUnsupported = errors.New("clipboard not supported on this platform")

func getClipboardContent(app *application.App) (string, error) {
	if app == nil {
		return "", errUnsupported
	}
	text, ok := app.Clipboard.Text()
	if !ok {
		return "", errors.New("failed to get clipboard content")
	}
	return text, nil
}

func setClipboardContent(app *application.App, text string) error {
	if app == nil {
		return errUnsupported
	}
	if !app.Clipboard.SetText(text) {
		return errors.New("failed to set clipboard content")
	}
	return nil
}
