package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/micoverlay/micoverlay/internal/daemon/overlay"
	"github.com/micoverlay/micoverlay/internal/models"
)

func TestFormatTooltip(t *testing.T) {
	tests := []struct {
		name  string
		frame overlay.Frame
		want  string
	}{
		{
			name:  "no icons",
			frame: overlay.Frame{},
			want:  "micoverlay: 0 of 0 icons shown",
		},
		{
			name: "some shown",
			frame: overlay.Frame{Icons: []overlay.Placement{
				{Name: "Mic", Active: true, Visible: true},
				{Name: "Camera"},
			}},
			want: "micoverlay: 1 of 2 icons shown",
		},
		{
			name: "muted",
			frame: overlay.Frame{
				Mute:  overlay.Placement{Name: models.SystemMute, Active: true, Visible: true},
				Icons: []overlay.Placement{{Name: "Mic", Active: true}},
			},
			want: "micoverlay: muted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTooltip(tt.frame); got != tt.want {
				t.Errorf("formatTooltip = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatIconTitle(t *testing.T) {
	tests := []struct {
		name  string
		p     overlay.Placement
		muted bool
		want  string
	}{
		{"plain", overlay.Placement{Name: "Mic", Image: "Mic.png"}, false, "Mic"},
		{"active under mute", overlay.Placement{Name: "Mic", Image: "Mic.png", Active: true}, true, "Mic (hidden by mute)"},
		{"inactive under mute", overlay.Placement{Name: "Mic", Image: "Mic.png"}, true, "Mic"},
		{"missing image", overlay.Placement{Name: "Mic"}, false, "Mic (no image)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatIconTitle(tt.p, tt.muted); got != tt.want {
				t.Errorf("formatIconTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatStatus(t *testing.T) {
	s := models.Settings{Location: models.BottomLeft, IconSize: 60}
	if got := formatStatus(s); got != "Bottom Left, 60px icons" {
		t.Errorf("formatStatus = %q", got)
	}
}

func TestIcons(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(discPNG(idleColor)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != iconSize || b.Dy() != iconSize {
		t.Errorf("bounds = %v", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner should be transparent")
	}
	if _, _, _, a := img.At(iconSize/2, iconSize/2).RGBA(); a == 0 {
		t.Error("center should be filled")
	}
}

func TestPNGToICO(t *testing.T) {
	data := discPNG(idleColor)
	ico := pngToICO(data)

	var head [3]uint16
	if err := binary.Read(bytes.NewReader(ico[:6]), binary.LittleEndian, &head); err != nil {
		t.Fatal(err)
	}
	if head != [3]uint16{0, 1, 1} {
		t.Errorf("header = %v", head)
	}
	if size := binary.LittleEndian.Uint32(ico[14:18]); int(size) != len(data) {
		t.Errorf("size = %d, want %d", size, len(data))
	}
	if off := binary.LittleEndian.Uint32(ico[18:22]); off != 22 {
		t.Errorf("offset = %d", off)
	}
	if !bytes.Equal(ico[22:], data) {
		t.Error("payload differs from the png")
	}
}
