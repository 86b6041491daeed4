package capture

// Handle はキャプチャ対象のウィンドウハンドル（Win32 HWND）です。
type Handle uintptr

// Desktop は画面全体をキャプチャ対象にするためのハンドルです。
const Desktop Handle = 0

// Region はキャプチャ範囲（左上座標と幅・高さ）を表します。
type Region struct {
	X, Y, Width, Height int
}

// bitmapFormat は CreateDIBSection に渡す DIB のピクセル形式です。
// 常に 24bit・無圧縮・1 プレーンで、Height は負の値（トップダウン行順）になります。
type bitmapFormat struct {
	Width    int32
	Height   int32
	Planes   uint16
	BitCount uint16
}

func formatFor(region Region) bitmapFormat {
	return bitmapFormat{
		Width:    int32(region.Width),
		Height:   -int32(region.Height),
		Planes:   1,
		BitCount: 24,
	}
}

// Manager はキャプチャに必要なデバイスコンテキストと範囲情報を保持します。
// 1つの Manager で Capture を何度でも呼び出せます。
// 同一の Manager に対する Capture の並行呼び出しはメモリ DC の選択状態を
// 共有するため不可です（呼び出し側で直列化してください）。
type Manager struct {
	target Handle
	region Region
	format bitmapFormat
	dc     uintptr
	memDC  uintptr
	api    gdi
	closed bool
}

// NewManager は対象ウィンドウの DC と互換メモリ DC を取得して Manager を作成します。
// target に Desktop を渡すと画面全体が対象になります。
// ハンドルが生きたウィンドウを指していない場合は *AcquisitionError を返します。
func NewManager(target Handle, region Region) (*Manager, error) {
	return newManager(target, region, platformGDI())
}

func newManager(target Handle, region Region, api gdi) (*Manager, error) {
	dc, err := api.GetDC(target)
	if err != nil {
		return nil, &AcquisitionError{Call: "GetDC", Err: err}
	}
	memDC, err := api.CreateCompatibleDC(dc)
	if err != nil {
		api.ReleaseDC(target, dc)
		return nil, &AcquisitionError{Call: "CreateCompatibleDC", Err: err}
	}
	return &Manager{
		target: target,
		region: region,
		format: formatFor(region),
		dc:     dc,
		memDC:  memDC,
		api:    api,
	}, nil
}

// Capture は現在の範囲をキャプチャして Data を返します。
// 返るバッファの長さは常に Width*Height*3（BGR、トップダウン行順）です。
// DIB の確保に失敗すると *AllocationError、転送に失敗すると *CopyError を返します。
// 転送失敗の典型例は、Manager 作成後に対象ウィンドウが閉じられた場合です。
func (m *Manager) Capture() (*Data, error) {
	bitmap, bits, err := m.api.CreateDIBSection(m.dc, m.format)
	if err != nil {
		return nil, &AllocationError{Call: "CreateDIBSection", Err: err}
	}
	m.api.SelectObject(m.memDC, bitmap)
	if err := m.api.BitBlt(m.memDC, m.region.Width, m.region.Height, m.dc, m.region.X, m.region.Y); err != nil {
		m.api.DeleteObject(bitmap)
		return nil, &CopyError{Call: "BitBlt", Err: err}
	}
	return &Data{
		bits:   bits,
		width:  m.region.Width,
		height: m.region.Height,
		bitmap: bitmap,
		api:    m.api,
	}, nil
}

// SetRegion はキャプチャ範囲を変更します。DC は取得し直しません。
// バッファは Capture のたびに新しく確保されるため、範囲の大小に制約はありません。
// 次の Capture から新しい範囲が使われます。
func (m *Manager) SetRegion(region Region) {
	m.region = region
	m.format = formatFor(region)
}

// Region は現在のキャプチャ範囲を返します。
func (m *Manager) Region() Region {
	return m.region
}

// Close は取得した 2 つの DC を OS に返却します。2回目以降の呼び出しは何もしません。
// Capture を一度も呼んでいなくても必ず呼んでください。
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.api.ReleaseDC(m.target, m.dc)
	m.api.DeleteDC(m.memDC)
}

// Data は 1 回のキャプチャ結果です。ピクセルバッファの実体は
// ネイティブのビットマップオブジェクトが所有しており、Release 後は参照できません。
type Data struct {
	bits   []byte
	width  int
	height int
	bitmap uintptr
	api    gdi
}

// Bits はピクセルバッファを返します。1 ピクセルは隣接する [B, G, R] の 3 バイトで、
// 行は上から下の順に並びます。Release 後は nil を返します。
func (d *Data) Bits() []byte {
	return d.bits
}

// Width はキャプチャ幅（ピクセル）を返します。
func (d *Data) Width() int {
	return d.width
}

// Height はキャプチャ高さ（ピクセル）を返します。
func (d *Data) Height() int {
	return d.height
}

// Release はバッファを所有するビットマップを破棄します。2回目以降の呼び出しは何もしません。
// 読み捨てる場合でもリークを防ぐため必ず呼んでください。
func (d *Data) Release() {
	if d.bitmap == 0 {
		return
	}
	d.api.DeleteObject(d.bitmap)
	d.bitmap = 0
	d.bits = nil
}
