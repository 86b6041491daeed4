package output

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
)

const defaultJpegQuality = 85

// ImageFromBGR はキャプチャしたピクセルバッファ（BGR・トップダウン行順）を
// image.RGBA に変換します。バッファはコピーされるため、変換後に元の
// キャプチャ結果を解放しても画像は使えます。
func ImageFromBGR(bits []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(bits) != width*height*3 {
		return nil, fmt.Errorf("frame buffer is %d bytes, want %d", len(bits), width*height*3)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(bits); i, j = i+3, j+4 {
		img.Pix[j] = bits[i+2]
		img.Pix[j+1] = bits[i+1]
		img.Pix[j+2] = bits[i]
		img.Pix[j+3] = 255
	}
	return img, nil
}

// SaveJPG は画像を指定フォルダに連番の JPG として保存し、ファイルパスを返します。
func SaveJPG(dir string, index int, img image.Image, quality int) (string, error) {
	if quality <= 0 {
		quality = defaultJpegQuality
	}
	name := fmt.Sprintf("capture_%05d.jpg", index)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
