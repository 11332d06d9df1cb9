// Package assets embeds the default sprite sheets, images and sounds.
package assets

import "embed"

// FS holds rhb.{json,png}, tiles.{json,png}, BG.png, Stone.png and the WAV sounds.
//
//go:embed *.png *.json *.wav
var FS embed.FS
