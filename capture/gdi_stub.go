//go:build !windows

package capture

import "errors"

var errUnsupported = errors.New("screen capture requires windows")

func platformGDI() gdi {
	return unsupportedGDI{}
}

// unsupportedGDI は Windows 以外でのビルドを通すためのスタブです。
// NewManager は常に AcquisitionError を返します。
type unsupportedGDI struct{}

func (unsupportedGDI) GetDC(Handle) (uintptr, error) { return 0, errUnsupported }

func (unsupportedGDI) ReleaseDC(Handle, uintptr) {}

func (unsupportedGDI) CreateCompatibleDC(uintptr) (uintptr, error) { return 0, errUnsupported }

func (unsupportedGDI) DeleteDC(uintptr) {}

func (unsupportedGDI) CreateDIBSection(uintptr, bitmapFormat) (uintptr, []byte, error) {
	return 0, nil, errUnsupported
}

func (unsupportedGDI) SelectObject(uintptr, uintptr) {}

func (unsupportedGDI) BitBlt(uintptr, int, int, uintptr, int, int) error { return errUnsupported }

func (unsupportedGDI) DeleteObject(uintptr) {}
