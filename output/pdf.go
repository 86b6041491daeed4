package output

import (
	"errors"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// pixelsToMm は 96 DPI を基準にピクセルを mm に変換します。
const pixelsPerInch = 96
const mmPerInch = 25.4

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// FramesToPDF は保存済みの JPG を渡された順に 1 ページずつ並べた PDF を outPath に
// 保存します。widthPx, heightPx はキャプチャ範囲（ピクセル）で、ページサイズに
// 反映されます。title は PDF のメタデータタイトルです。
func FramesToPDF(paths []string, outPath, title string, widthPx, heightPx int) error {
	if len(paths) == 0 {
		return errors.New("no frames to bundle")
	}

	wMm := pixelsToMm(widthPx)
	hMm := pixelsToMm(heightPx)
	if wMm <= 0 || hMm <= 0 {
		wMm, hMm = 210, 297 // フォールバック: A4
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wMm, Ht: hMm},
	})
	if title != "" {
		pdf.SetTitle(title, true) // true = UTF-8（日本語対応）
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			continue
		}
		opt := gofpdf.ImageOptions{ImageType: "JPEG"}
		pdf.AddPage()
		w, h := pdf.GetPageSize()
		pdf.ImageOptions(path, 0, 0, w, h, false, opt, 0, "")
	}
	return pdf.OutputFileAndClose(outPath)
}
