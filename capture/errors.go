package capture

import "fmt"

// AcquisitionError は NewManager でデバイスコンテキストを取得できなかったことを表します。
// 典型的には target が生きたウィンドウを指していない場合に発生します。
type AcquisitionError struct {
	Call string
	Err  error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("capture: %s failed: %v", e.Call, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// AllocationError は Capture でピクセルバッファ（DIB）を確保できなかったことを表します。
// 不正なサイズやリソース枯渇が原因です。
type AllocationError struct {
	Call string
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("capture: %s failed: %v", e.Call, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// CopyError は Capture で画面からの転送（BitBlt）に失敗したことを表します。
// 典型的には対象ウィンドウが既に閉じられている場合に発生します。
type CopyError struct {
	Call string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("capture: %s failed: %v", e.Call, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }
