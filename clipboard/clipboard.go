// Package clipboard moves addresses, transaction hashes, and signed
// transactions between the wallet and the system clipboard.
package clipboard

import (
	"github.com/wailsapp/wails/v3/pkg/application"
)

// GetText reads the current clipboard text.
func GetText(app *application.App) (string, error) {
	return getClipboardContent(app)
}

// SetText replaces the clipboard with text.
func SetText(app *application.App, text string) error {
	return setClipboardContent(app, text)
}
