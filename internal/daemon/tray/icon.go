package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 32

var (
	idleColor  = color.RGBA{R: 0x2e, G: 0xa0, B: 0x43, A: 0xff}
	mutedColor = color.RGBA{R: 0xd0, G: 0x35, B: 0x2b, A: 0xff}

	iconIdle  = trayIcon(idleColor)
	iconMuted = trayIcon(mutedColor)
)

// trayIcon draws a filled disc. Windows wants ICO bytes, everywhere else
// takes PNG.
func trayIcon(c color.RGBA) []byte {
	data := discPNG(c)
	if runtime.GOOS == "windows" {
		return pngToICO(data)
	}
	return data
}

func discPNG(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	r := iconSize/2 - 2
	cx, cy := iconSize/2, iconSize/2
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// pngToICO wraps PNG data in a single-image ICO container.
func pngToICO(data []byte) []byte {
	var buf bytes.Buffer
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.WriteByte(iconSize)
	buf.WriteByte(iconSize)
	buf.WriteByte(0) // palette
	buf.WriteByte(0)
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32)) // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	binary.Write(&buf, binary.LittleEndian, uint32(6+16))
	buf.Write(data)
	return buf.Bytes()
}
