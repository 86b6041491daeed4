//go:build windows

package capture

import (
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// lxn/win は CreateDIBSection を *BITMAPINFOHEADER で受けるため、
// BITMAPINFO 全体を渡せるように gdi32 を直接呼びます。
var (
	gdi32                = syscall.NewLazyDLL("gdi32.dll")
	procCreateDIBSection = gdi32.NewProc("CreateDIBSection")
)

func platformGDI() gdi {
	return winGDI{}
}

// winGDI は lxn/win による gdi の実装です。
type winGDI struct{}

func (winGDI) GetDC(target Handle) (uintptr, error) {
	dc := win.GetDC(win.HWND(target))
	if dc == 0 {
		return 0, lastError()
	}
	return uintptr(dc), nil
}

func (winGDI) ReleaseDC(target Handle, dc uintptr) {
	win.ReleaseDC(win.HWND(target), win.HDC(dc))
}

func (winGDI) CreateCompatibleDC(dc uintptr) (uintptr, error) {
	memDC := win.CreateCompatibleDC(win.HDC(dc))
	if memDC == 0 {
		return 0, lastError()
	}
	return uintptr(memDC), nil
}

func (winGDI) DeleteDC(memDC uintptr) {
	win.DeleteDC(win.HDC(memDC))
}

func (winGDI) CreateDIBSection(dc uintptr, format bitmapFormat) (uintptr, []byte, error) {
	bi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       format.Width,
			BiHeight:      format.Height,
			BiPlanes:      format.Planes,
			BiBitCount:    format.BitCount,
			BiCompression: win.BI_RGB,
		},
	}
	var bits unsafe.Pointer
	ret, _, _ := procCreateDIBSection.Call(
		dc,
		uintptr(unsafe.Pointer(&bi)),
		uintptr(win.DIB_RGB_COLORS),
		uintptr(unsafe.Pointer(&bits)),
		0,
		0,
	)
	if ret == 0 || bits == nil {
		return 0, nil, lastError()
	}
	// 24bpp DIB の行は 4 バイト境界に揃えられるため、幅が 4 の倍数でない場合は
	// 行末にパディングが混ざります。
	n := int(format.Width) * int(-format.Height) * 3
	return ret, unsafe.Slice((*byte)(bits), n), nil
}

func (winGDI) SelectObject(memDC, bitmap uintptr) {
	win.SelectObject(win.HDC(memDC), win.HGDIOBJ(bitmap))
}

func (winGDI) BitBlt(memDC uintptr, width, height int, dc uintptr, x, y int) error {
	ok := win.BitBlt(win.HDC(memDC), 0, 0, int32(width), int32(height),
		win.HDC(dc), int32(x), int32(y), win.SRCCOPY)
	if !ok {
		return lastError()
	}
	return nil
}

func (winGDI) DeleteObject(bitmap uintptr) {
	win.DeleteObject(win.HGDIOBJ(bitmap))
}

func lastError() error {
	return syscall.Errno(win.GetLastError())
}
