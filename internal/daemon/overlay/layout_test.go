package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

func TestAnchors(t *testing.T) {
	screen := Screen{Width: 1920, Height: 1080}

	tests := []struct {
		name     string
		location models.Location
		size     int
		count    int
		want     []Point
	}{
		{
			name:     "top right steps left",
			location: models.TopRight,
			size:     45,
			count:    3,
			want:     []Point{{1920 - 48, 3}, {1920 - 98, 3}, {1920 - 148, 3}},
		},
		{
			name:     "top left steps right",
			location: models.TopLeft,
			size:     40,
			count:    2,
			want:     []Point{{3, 3}, {48, 3}},
		},
		{
			name:     "bottom right",
			location: models.BottomRight,
			size:     40,
			count:    2,
			want:     []Point{{1877, 1037}, {1832, 1037}},
		},
		{
			name:     "top middle is centred on the row",
			location: models.TopMiddle,
			size:     40,
			count:    2,
			// total = 2 * (40 + 3) = 86
			want: []Point{{960 - 43, 3}, {960 - 43 + 45, 3}},
		},
		{
			name:     "middle left steps down",
			location: models.MiddleLeft,
			size:     40,
			count:    2,
			want:     []Point{{3, 540 - 43}, {3, 540 - 43 + 45}},
		},
		{
			name:     "middle right steps down",
			location: models.MiddleRight,
			size:     40,
			count:    1,
			want:     []Point{{1877, 540 - 21}},
		},
		{
			name:     "unknown location falls back to top right",
			location: "Centre",
			size:     45,
			count:    1,
			want:     []Point{{1872, 3}},
		},
		{
			name:     "no icons",
			location: models.TopRight,
			size:     45,
			count:    0,
			want:     []Point{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Anchors(screen, models.Settings{Location: tt.location, IconSize: tt.size}, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Anchors = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("anchor %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewLayoutAndFrame(t *testing.T) {
	icons := t.TempDir()
	for _, f := range []string{"System_Mute.png", "Mic.png", "Camera.jpg"} {
		if err := os.WriteFile(filepath.Join(icons, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	bindings := models.Bindings{
		{Name: models.SystemMute, Combo: []string{"Ctrl", "Shift", "A"}},
		{Name: "Mic", Combo: []string{"Ctrl", "M"}, Enabled: true},
		{Name: "Camera", Combo: []string{"Ctrl", "C"}},
		{Name: "Record", Combo: []string{"Ctrl", "R"}, Enabled: true},
	}
	settings := models.Settings{Location: models.TopRight, IconSize: 45}

	l, err := NewLayout(Screen{Width: 1000, Height: 800}, settings, bindings, icons)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Icons) != 3 {
		t.Fatalf("icons = %d, want 3", len(l.Icons))
	}
	if l.Icons[0].Anchor != (Point{952, 3}) || l.Icons[1].Anchor != (Point{902, 3}) {
		t.Errorf("anchors = %v, %v", l.Icons[0].Anchor, l.Icons[1].Anchor)
	}
	if l.Mute.Anchor != l.Icons[0].Anchor {
		t.Errorf("mute anchor = %v, want first anchor", l.Mute.Anchor)
	}
	if filepath.Base(l.Icons[1].Image) != "Camera.jpg" || l.Icons[2].Image != "" {
		t.Errorf("images = %q, %q", l.Icons[1].Image, l.Icons[2].Image)
	}

	frame := l.Frame(toggle.Compute(bindings))
	if got := frame.VisibleNames(); len(got) != 2 || got[0] != "Mic" || got[1] != "Record" {
		t.Errorf("visible = %v", got)
	}

	bindings[0].Enabled = true
	frame = l.Frame(toggle.Compute(bindings))
	if got := frame.VisibleNames(); len(got) != 1 || got[0] != models.SystemMute {
		t.Errorf("visible while muted = %v", got)
	}
	if !frame.Icons[0].Active {
		t.Error("own flag lost under mute")
	}
}

func TestParseScreen(t *testing.T) {
	tests := []struct {
		in      string
		want    Screen
		wantErr bool
	}{
		{in: "1920x1080", want: Screen{Width: 1920, Height: 1080}},
		{in: " 2560X1440 ", want: Screen{Width: 2560, Height: 1440}},
		{in: "1920", wantErr: true},
		{in: "0x100", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "100x-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScreen(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScreen(%q) err = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseScreen(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if got := DefaultScreen.String(); got != "1920x1080" {
		t.Errorf("String = %q", got)
	}
}
