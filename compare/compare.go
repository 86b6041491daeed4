package compare

import (
	"bytes"
	"crypto/sha256"
)

// Fingerprint はキャプチャしたピクセルバッファの SHA256 ハッシュを返します。
// エンコード前の生バイト列を使うため、画質設定に左右されません。
func Fingerprint(bits []byte) []byte {
	h := sha256.Sum256(bits)
	return h[:]
}

// ThreeSame は a, b, c の3つのハッシュがすべて一致するか返します。
// いずれかが nil（まだキャプチャしていない）なら false です。
func ThreeSame(a, b, c []byte) bool {
	if a == nil || b == nil || c == nil {
		return false
	}
	return bytes.Equal(a, b) && bytes.Equal(b, c)
}
