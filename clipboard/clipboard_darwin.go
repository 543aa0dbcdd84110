//go:build darwin

package clipboard

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/wailsapp/wails/v3/pkg/application"
)

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #include <stdlib.h>
// const char* getClipboardContent() {
//     NSPasteboard *pasteboard = [NSPasteboard generalPasteboard];
//     NSString *string = [pasteboard stringForType:NSPasteboardTypeString];
//     return [string UTF8String];
// }
// bool setClipboardContent(const char* text) {
//     NSPasteboard *pasteboard = [NSPasteboard generalPasteboard];
//     [pasteboard clearContents];
//     return [pasteboard setString:[NSString stringWithUTF8String:text]
//                          forType:NSPasteboardTypeString];
// }
import "C"

var clipboardLock sync.RWMutex

func getClipboardContent(_ *application.App) (string, error) {
	clipboardLock.RLock()
	defer clipboardLock.RUnlock()

	cstr := C.getClipboardContent()
	if cstr == nil {
		return "", errors.New("failed to get clipboard content")
	}
	return C.GoString(cstr), nil
}

func setClipboardContent(_ *application.App, text string) error {
	clipboardLock.Lock()
	defer clipboardLock.Unlock()

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	if !bool(C.setClipboardContent(ctext)) {
		return errors.New("failed to set clipboard content")
	}
	return nil
}
