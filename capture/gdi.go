package capture

// gdi は Manager が依存する OS のグラフィックスプリミティブです。
// Windows では gdi_windows.go の実装が使われ、テストでは偽物に差し替えます。
type gdi interface {
	// GetDC は対象ウィンドウ（0 なら画面全体）の DC を取得します。
	GetDC(target Handle) (uintptr, error)
	// ReleaseDC は GetDC で取得した DC をウィンドウに返却します。
	ReleaseDC(target Handle, dc uintptr)
	// CreateCompatibleDC は dc と互換のメモリ DC を作成します。
	CreateCompatibleDC(dc uintptr) (uintptr, error)
	// DeleteDC はメモリ DC を破棄します。
	DeleteDC(memDC uintptr)
	// CreateDIBSection は format に従ったビットマップと、そのピクセルメモリへの
	// ビューを作成します。ビューの長さは Width*Height*3 です。
	CreateDIBSection(dc uintptr, format bitmapFormat) (bitmap uintptr, bits []byte, err error)
	// SelectObject はビットマップをメモリ DC の描画先として選択します。
	SelectObject(memDC, bitmap uintptr)
	// BitBlt は dc 上の (x, y) から width×height の矩形をメモリ DC の原点へ転送します。
	BitBlt(memDC uintptr, width, height int, dc uintptr, x, y int) error
	// DeleteObject はビットマップを破棄します。
	DeleteObject(bitmap uintptr)
}
