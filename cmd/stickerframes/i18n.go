// Package main provides localization for the stickerframes CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定ファイル",
		"Keyframes":     "キーフレーム",
		"Output":        "出力先",
		"Debug":         "デバッグ",
		"Logging":       "ログ",

		// Root command
		"Extract keyframes from animated GIF and APNG stickers":                                         "アニメーションGIF・APNGスタンプからキーフレームを抽出",
		"stickerframes decodes an animation and picks ten stills spread evenly over its playback time.": "stickerframesはアニメーションをデコードし、再生時間全体から均等に10枚の静止画を選びます。",

		// Extract command
		"Extract ten keyframes as PNG files": "10枚のキーフレームをPNGファイルとして抽出",
		"Read an animated GIF or APNG from a file or URL and write keyframe-00.png to keyframe-09.png.": "ファイルまたはURLからアニメーションGIF・APNGを読み込み、keyframe-00.png〜keyframe-09.pngを書き出します。",

		// Inspect command
		"Print which frames would be selected":                                         "選択されるフレームを表示",
		"Decode an animation and print the keyframe report without writing any image.": "アニメーションをデコードし、画像を書き出さずにキーフレームのレポートを表示します。",

		// Version command
		"Show version information": "バージョン情報を表示",
		"stickerframes version %s": "stickerframes バージョン %s",

		// Flags
		"Output directory for keyframe PNGs (required)":       "キーフレームPNGの出力ディレクトリ（必須）",
		"Also write a contact sheet (sheet.png)":              "コンタクトシート（sheet.png）も出力",
		"Output execution summary to file (Markdown format)":  "実行サマリーをファイルに出力（Markdown形式）",
		"Report format (markdown, yaml)":                      "レポート形式（markdown, yaml）",
		"YAML configuration file":                             "YAML設定ファイル",
		"Longest keyframe side in pixels (0 = original size)": "キーフレームの長辺ピクセル数（0 = 元のサイズ）",
		"PNG encoding workers (0 = number of CPUs)":           "PNGエンコードのワーカー数（0 = CPU数）",
		"Enable debug output":                                 "デバッグ出力を有効化",
		"Directory for debug output":                          "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                             "全てのログ出力を抑制",

		// Error messages
		"Input argument is required": "入力ファイルまたはURLの引数が必要です",
		"Failed to load config":      "設定ファイルの読み込みに失敗しました",
		"Invalid configuration":      "設定が不正です",
		"Failed to read %s":          "%s の読み込みに失敗しました",

		// Summary content
		"Keyframe Summary":       "キーフレームサマリー",
		"Source":                 "入力",
		"Settings":               "設定",
		"Item":                   "項目",
		"Value":                  "値",
		"Input":                  "入力元",
		"Format":                 "形式",
		"Animated":               "アニメーション",
		"File Size":              "ファイルサイズ",
		"Frames":                 "フレーム数",
		"Duration":               "再生時間",
		"Max Dimension":          "最大サイズ",
		"Original":               "元のサイズ",
		"Workers":                "ワーカー数",
		"Auto":                   "自動",
		"Contact Sheet":          "コンタクトシート",
		"Target":                 "目標時刻",
		"Source Frame":           "元フレーム",
		"Size":                   "サイズ",
		"Distinct source frames": "異なる元フレーム数",
		"Resized keyframes":      "縮小したキーフレーム数",
		"Generated at":           "生成日時",
		"Yes":                    "はい",
		"No":                     "いいえ",
	})
}
