//go:build windows

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbinani/screenshot"

	"QuickShot/capture"
	"QuickShot/compare"
	"QuickShot/keyboard"
	"QuickShot/output"
)

type settings struct {
	OutputFolder    string
	Region          capture.Region
	Target          capture.Handle
	MaxCount        int
	DelayMs         int
	Quality         int
	KeyOperation    string
	PDFTitle        string
	StopOnThreeSame bool
}

func main() {
	s, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "引数が不正です: %v\n", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(s.OutputFolder, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "フォルダ作成に失敗しました: %v\n", err)
		os.Exit(1)
	}

	manager, err := capture.NewManager(s.Target, s.Region)
	if err != nil {
		fmt.Fprintf(os.Stderr, "キャプチャの初期化に失敗しました: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	var prevHash, prevPrevHash []byte
	var saved []string
	count := 0
	stoppedByThreeSame := false
	delay := time.Duration(s.DelayMs) * time.Millisecond
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	for {
		data, err := manager.Capture()
		if err != nil {
			fmt.Fprintf(os.Stderr, "キャプチャに失敗しました: %v\n", err)
			break
		}

		img, err := output.ImageFromBGR(data.Bits(), data.Width(), data.Height())
		if err != nil {
			data.Release()
			fmt.Fprintf(os.Stderr, "画像変換に失敗しました: %v\n", err)
			break
		}
		hash := compare.Fingerprint(data.Bits())
		data.Release()

		count++
		path, err := output.SaveJPG(s.OutputFolder, count, img, s.Quality)
		if err != nil {
			fmt.Fprintf(os.Stderr, "保存に失敗しました: %v\n", err)
			break
		}
		saved = append(saved, path)

		if s.MaxCount > 0 && count >= s.MaxCount {
			break
		}
		if s.StopOnThreeSame && compare.ThreeSame(prevPrevHash, prevHash, hash) {
			stoppedByThreeSame = true
			break
		}

		prevPrevHash = prevHash
		prevHash = hash

		if s.KeyOperation != "" {
			if err := keyboard.Send(s.KeyOperation); err != nil {
				fmt.Fprintf(os.Stderr, "キー送信に失敗しました: %v\n", err)
			}
		}
		time.Sleep(delay)
	}

	// 3枚連続同一で終了した場合、同一の3枚のうち最後の2枚は不要なので削除する
	if stoppedByThreeSame && len(saved) >= 3 {
		for i := 0; i < 2; i++ {
			p := saved[len(saved)-1]
			saved = saved[:len(saved)-1]
			if err := os.Remove(p); err != nil {
				fmt.Fprintf(os.Stderr, "重複画像の削除に失敗しました %s: %v\n", p, err)
			}
		}
	}

	if s.PDFTitle != "" && len(saved) > 0 {
		pdfPath := filepath.Join(s.OutputFolder, pdfFileName(s.PDFTitle))
		if err := output.FramesToPDF(saved, pdfPath, s.PDFTitle, s.Region.Width, s.Region.Height); err != nil {
			fmt.Fprintf(os.Stderr, "PDF生成に失敗しました: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("完了: %d 枚保存し、%s に PDF を出力しました。\n", len(saved), pdfPath)
		return
	}
	fmt.Printf("完了: %d 枚のスクリーンショットを保存しました。\n", len(saved))
}

func parseFlags() (settings, error) {
	var s settings
	var hwnd uint64
	flag.StringVar(&s.OutputFolder, "out", "captures", "保存先フォルダ")
	flag.IntVar(&s.Region.X, "x", 0, "キャプチャ範囲の左上 X 座標")
	flag.IntVar(&s.Region.Y, "y", 0, "キャプチャ範囲の左上 Y 座標")
	flag.IntVar(&s.Region.Width, "width", 0, "キャプチャ幅（0 でプライマリディスプレイ全体）")
	flag.IntVar(&s.Region.Height, "height", 0, "キャプチャ高さ（0 でプライマリディスプレイ全体）")
	flag.Uint64Var(&hwnd, "hwnd", 0, "対象ウィンドウハンドル（0 で画面全体）")
	flag.IntVar(&s.MaxCount, "count", 1, "キャプチャ枚数（0 で無制限）")
	flag.IntVar(&s.DelayMs, "delay", 500, "キャプチャ間隔（ミリ秒）")
	flag.IntVar(&s.Quality, "quality", 85, "JPG 品質（1-100）")
	flag.StringVar(&s.KeyOperation, "key", "", "各キャプチャ後に送信するキー操作（例: Ctrl+Right）")
	flag.StringVar(&s.PDFTitle, "pdf", "", "指定すると全キャプチャを1つの PDF にまとめる（PDF タイトル）")
	flag.BoolVar(&s.StopOnThreeSame, "stop-on-same", false, "3枚連続で同一画面なら停止する")
	flag.Parse()

	s.Target = capture.Handle(hwnd)

	if s.Region.Width == 0 || s.Region.Height == 0 {
		if s.Target != capture.Desktop {
			return s, fmt.Errorf("-hwnd 指定時は -width と -height が必要です")
		}
		b, err := primaryDisplayBounds()
		if err != nil {
			return s, err
		}
		s.Region = b
	}
	return s, nil
}

// primaryDisplayBounds はプライマリディスプレイ全体の範囲を返します。
func primaryDisplayBounds() (capture.Region, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return capture.Region{}, fmt.Errorf("アクティブなディスプレイが見つかりません")
	}
	b := screenshot.GetDisplayBounds(0)
	return capture.Region{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}, nil
}

// pdfFileName はPDFタイトルをWindowsのファイル名として使えるように無効文字を除去します。
func pdfFileName(title string) string {
	const invalid = `\/:*?"<>|`
	s := strings.TrimSpace(title)
	var b strings.Builder
	for _, r := range s {
		if !strings.ContainsRune(invalid, r) && r >= 0x20 {
			b.WriteRune(r)
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		return "captures.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
