package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Icon dimensions for system tray.
const iconSize = 22

// Pre-generated PNG icon showing a download and an upload arrow.
var iconArrowsPNG []byte

func init() {
	iconArrowsPNG = generateArrowsIcon(color.RGBA{200, 200, 200, 255})
}

// generateArrowsIcon draws a down arrow on the left half and an up arrow on
// the right half of the icon.
func generateArrowsIcon(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	shaftTop := 3
	shaftBottom := 18
	headHeight := 5

	downCenter := 6
	upCenter := 15

	// Down arrow shaft
	for y := shaftTop; y <= shaftBottom-headHeight; y++ {
		img.Set(downCenter, y, c)
		img.Set(downCenter+1, y, c)
	}
	// Down arrow head (triangle pointing down)
	for i := 0; i < headHeight; i++ {
		y := shaftBottom - headHeight + i
		for x := downCenter - headHeight + 1 + i; x <= downCenter+headHeight-i; x++ {
			img.Set(x, y, c)
		}
	}

	// Up arrow head (triangle pointing up)
	for i := 0; i < headHeight; i++ {
		y := shaftTop + i
		for x := upCenter - i; x <= upCenter+1+i; x++ {
			img.Set(x, y, c)
		}
	}
	// Up arrow shaft
	for y := shaftTop + headHeight; y <= shaftBottom; y++ {
		img.Set(upCenter, y, c)
		img.Set(upCenter+1, y, c)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
