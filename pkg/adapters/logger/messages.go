package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting extraction of %d bytes":   "%d バイトの抽出を開始します",
		"Decoded %s: %d frames, %dms total": "%s をデコードしました: %d フレーム, 合計 %dms",
		"Selected keyframes from frames %v": "フレーム %v をキーフレームに選択しました",
		"Resized %d keyframes to fit %dpx":  "%d 枚のキーフレームを %dpx に縮小しました",
		"Rendering contact sheet":           "コンタクトシートを描画中",
		"Extraction completed":              "抽出が完了しました",
		"Extracting keyframes from %s":      "%s からキーフレームを抽出中",
		"Output saved to %s":                "出力を %s に保存しました",
		"Summary saved to %s":               "サマリーを %s に保存しました",
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",

		// Failures (error)
		"Failed to decode animation: %s":     "アニメーションのデコードに失敗しました: %s",
		"Failed to select keyframes: %s":     "キーフレームの選択に失敗しました: %s",
		"Failed to resize keyframes: %s":     "キーフレームの縮小に失敗しました: %s",
		"Failed to render contact sheet: %s": "コンタクトシートの描画に失敗しました: %s",
		"Failed to write summary: %s":        "サマリーの書き込みに失敗しました: %s",

		// Decoders (debug)
		"Decoded %d %s frames, %dms total":                   "%d 個の %s フレームをデコードしました, 合計 %dms",
		"GIF has %d frames on a %dx%d screen":                "GIF: %dx%d スクリーン上に %d フレーム",
		"APNG has %d frames on a %dx%d canvas":               "APNG: %dx%d キャンバス上に %d フレーム",
		"APNG declares %d frames but contains %d":            "APNG の宣言フレーム数は %d ですが、実際は %d です",
		"PNG has no animation control, using a single frame": "PNG にアニメーション制御がないため、1フレームとして扱います",

		// Resize and sheet stages (debug)
		"Resizing %d distinct keyframes to fit %dpx": "%d 枚の異なるキーフレームを %dpx に縮小中",
		"Rendering %dx%d sheet, %d columns":          "%dx%d のシートを %d カラムで描画中",

		// Attachments
		"Skipping image %s: %s": "画像 %s をスキップします: %s",
		"Keyframe extraction failed for %s, sending as a static image: %s": "%s のキーフレーム抽出に失敗したため、静止画として送信します: %s",
		"Extracted %d keyframes from %s":                                   "%d 枚のキーフレームを %s から抽出しました",
	})
}
