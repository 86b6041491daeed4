package capture

import (
	"errors"
	"testing"
)

// fakeGDI は gdi の偽実装です。ハンドルの取得と解放を記録し、
// 任意の呼び出しを失敗させられます。
type fakeGDI struct {
	nextHandle uintptr

	liveDCs     map[uintptr]bool
	liveMemDCs  map[uintptr]bool
	liveBitmaps map[uintptr]bool

	releaseDCCalls    int
	deleteDCCalls     int
	deleteObjectCalls int

	lastFormat   bitmapFormat
	lastSelected uintptr
	lastBlit     struct{ Width, Height, X, Y int }

	failGetDC            bool
	failCreateCompatible bool
	failCreateDIB        bool
	failBitBlt           bool
}

var errFake = errors.New("fake gdi failure")

func newFakeGDI() *fakeGDI {
	return &fakeGDI{
		liveDCs:     map[uintptr]bool{},
		liveMemDCs:  map[uintptr]bool{},
		liveBitmaps: map[uintptr]bool{},
	}
}

func (f *fakeGDI) handle() uintptr {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeGDI) GetDC(target Handle) (uintptr, error) {
	if f.failGetDC {
		return 0, errFake
	}
	dc := f.handle()
	f.liveDCs[dc] = true
	return dc, nil
}

func (f *fakeGDI) ReleaseDC(target Handle, dc uintptr) {
	f.releaseDCCalls++
	delete(f.liveDCs, dc)
}

func (f *fakeGDI) CreateCompatibleDC(dc uintptr) (uintptr, error) {
	if f.failCreateCompatible {
		return 0, errFake
	}
	memDC := f.handle()
	f.liveMemDCs[memDC] = true
	return memDC, nil
}

func (f *fakeGDI) DeleteDC(memDC uintptr) {
	f.deleteDCCalls++
	delete(f.liveMemDCs, memDC)
}

func (f *fakeGDI) CreateDIBSection(dc uintptr, format bitmapFormat) (uintptr, []byte, error) {
	if f.failCreateDIB {
		return 0, nil, errFake
	}
	f.lastFormat = format
	bitmap := f.handle()
	f.liveBitmaps[bitmap] = true
	n := int(format.Width) * int(-format.Height) * 3
	return bitmap, make([]byte, n), nil
}

func (f *fakeGDI) SelectObject(memDC, bitmap uintptr) {
	f.lastSelected = bitmap
}

func (f *fakeGDI) BitBlt(memDC uintptr, width, height int, dc uintptr, x, y int) error {
	if f.failBitBlt {
		return errFake
	}
	f.lastBlit.Width = width
	f.lastBlit.Height = height
	f.lastBlit.X = x
	f.lastBlit.Y = y
	return nil
}

func (f *fakeGDI) DeleteObject(bitmap uintptr) {
	f.deleteObjectCalls++
	delete(f.liveBitmaps, bitmap)
}

func TestCaptureBufferLength(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   int
	}{
		{"10x10", Region{X: 0, Y: 0, Width: 10, Height: 10}, 300},
		{"offset origin", Region{X: 120, Y: -30, Width: 64, Height: 48}, 64 * 48 * 3},
		{"single pixel", Region{X: 0, Y: 0, Width: 1, Height: 1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeGDI()
			m, err := newManager(Desktop, tt.region, api)
			if err != nil {
				t.Fatalf("newManager: %v", err)
			}
			defer m.Close()

			d, err := m.Capture()
			if err != nil {
				t.Fatalf("Capture: %v", err)
			}
			defer d.Release()

			if got := len(d.Bits()); got != tt.want {
				t.Fatalf("len(Bits()) = %d, want %d", got, tt.want)
			}
			if d.Width() != tt.region.Width || d.Height() != tt.region.Height {
				t.Fatalf("Data size = %dx%d, want %dx%d", d.Width(), d.Height(), tt.region.Width, tt.region.Height)
			}
			if api.lastBlit.X != tt.region.X || api.lastBlit.Y != tt.region.Y {
				t.Fatalf("blit origin = (%d, %d), want (%d, %d)", api.lastBlit.X, api.lastBlit.Y, tt.region.X, tt.region.Y)
			}
		})
	}
}

func TestCaptureBuffersAreIndependent(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 8, Height: 8}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	first, err := m.Capture()
	if err != nil {
		t.Fatalf("first Capture: %v", err)
	}
	second, err := m.Capture()
	if err != nil {
		t.Fatalf("second Capture: %v", err)
	}

	// 片方を解放してももう片方には影響しない
	first.Release()
	if first.Bits() != nil {
		t.Fatalf("released Data still exposes bits")
	}
	if got := len(second.Bits()); got != 8*8*3 {
		t.Fatalf("len(second.Bits()) = %d after releasing first, want %d", got, 8*8*3)
	}
	second.Release()

	if len(api.liveBitmaps) != 0 {
		t.Fatalf("%d bitmaps still live after release", len(api.liveBitmaps))
	}
}

func TestSetRegionAppliesToNextCapture(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 10, Height: 10}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	d, err := m.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if got := len(d.Bits()); got != 300 {
		t.Fatalf("len(Bits()) = %d, want 300", got)
	}
	d.Release()

	m.SetRegion(Region{X: 5, Y: 5, Width: 20, Height: 30})

	d, err = m.Capture()
	if err != nil {
		t.Fatalf("Capture after SetRegion: %v", err)
	}
	defer d.Release()
	if got := len(d.Bits()); got != 1800 {
		t.Fatalf("len(Bits()) = %d after SetRegion, want 1800", got)
	}
	if api.lastBlit.X != 5 || api.lastBlit.Y != 5 {
		t.Fatalf("blit origin = (%d, %d) after SetRegion, want (5, 5)", api.lastBlit.X, api.lastBlit.Y)
	}
}

func TestFormatStaysTopDown(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 10, Height: 10}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	// 形式の高さは常に負（トップダウン）で、幅が高さに紛れ込んではならない
	m.SetRegion(Region{Width: 100, Height: 250})
	if _, err := m.Capture(); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if api.lastFormat.Width != 100 {
		t.Fatalf("format width = %d, want 100", api.lastFormat.Width)
	}
	if api.lastFormat.Height != -250 {
		t.Fatalf("format height = %d, want -250", api.lastFormat.Height)
	}
	if api.lastFormat.BitCount != 24 || api.lastFormat.Planes != 1 {
		t.Fatalf("format = %+v, want 24bit single plane", api.lastFormat)
	}
}

func TestNewManagerDeadTarget(t *testing.T) {
	api := newFakeGDI()
	api.failGetDC = true

	_, err := newManager(Handle(0xdead), Region{Width: 10, Height: 10}, api)
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("err = %v, want *AcquisitionError", err)
	}
	if !errors.Is(err, errFake) {
		t.Fatalf("err does not wrap the gdi failure: %v", err)
	}
	if len(api.liveDCs) != 0 || len(api.liveMemDCs) != 0 {
		t.Fatalf("resources leaked: %d DCs, %d memory DCs", len(api.liveDCs), len(api.liveMemDCs))
	}
}

func TestNewManagerMemDCFailureReleasesDC(t *testing.T) {
	api := newFakeGDI()
	api.failCreateCompatible = true

	_, err := newManager(Desktop, Region{Width: 10, Height: 10}, api)
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("err = %v, want *AcquisitionError", err)
	}
	if len(api.liveDCs) != 0 {
		t.Fatalf("source DC leaked after construction failure")
	}
	if api.releaseDCCalls != 1 {
		t.Fatalf("ReleaseDC called %d times, want 1", api.releaseDCCalls)
	}
}

func TestCaptureAllocationFailure(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 10, Height: 10}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	api.failCreateDIB = true
	_, err = m.Capture()
	var allocErr *AllocationError
	if !errors.As(err, &allocErr) {
		t.Fatalf("err = %v, want *AllocationError", err)
	}

	// 失敗しても Manager はそのまま使える
	api.failCreateDIB = false
	d, err := m.Capture()
	if err != nil {
		t.Fatalf("Capture after allocation failure: %v", err)
	}
	d.Release()
}

func TestCaptureAfterTargetDestroyed(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Handle(42), Region{Width: 10, Height: 10}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	// 作成後にウィンドウが閉じられた状況では BitBlt が失敗する
	api.failBitBlt = true
	d, err := m.Capture()
	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		t.Fatalf("err = %v, want *CopyError", err)
	}
	if d != nil {
		t.Fatalf("Capture returned data alongside the error")
	}
	if len(api.liveBitmaps) != 0 {
		t.Fatalf("bitmap leaked on blit failure")
	}
}

func TestCloseWithoutCapture(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 10, Height: 10}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}

	m.Close()
	m.Close() // 2回目は何もしない

	if api.releaseDCCalls != 1 || api.deleteDCCalls != 1 {
		t.Fatalf("ReleaseDC=%d DeleteDC=%d, want exactly 1 each", api.releaseDCCalls, api.deleteDCCalls)
	}
	if len(api.liveDCs) != 0 || len(api.liveMemDCs) != 0 {
		t.Fatalf("DC handles still live after Close")
	}
}

func TestDataReleaseExactlyOnce(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 4, Height: 4}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	d, err := m.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	d.Release()
	d.Release()
	if api.deleteObjectCalls != 1 {
		t.Fatalf("DeleteObject called %d times, want 1", api.deleteObjectCalls)
	}
	if d.Bits() != nil {
		t.Fatalf("Bits() not nil after Release")
	}
}

func TestCaptureSelectsFreshBitmap(t *testing.T) {
	api := newFakeGDI()
	m, err := newManager(Desktop, Region{Width: 4, Height: 4}, api)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	defer m.Close()

	d1, err := m.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	first := api.lastSelected
	d2, err := m.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if api.lastSelected == first {
		t.Fatalf("second capture reused the first bitmap")
	}
	d1.Release()
	d2.Release()
}
