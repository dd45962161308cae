package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"System Mute", "System_Mute"},
		{"Mic", "Mic"},
		{`a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"  trailing dots...  ", "trailing_dots"},
		{"..hidden", "hidden"},
		{"what? now", "what_now"},
		{"???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSameAsset(t *testing.T) {
	if !SameAsset("A B", "a_b") {
		t.Error(`"A B" and "a_b" should share an asset name`)
	}
	if SameAsset("Mic", "Mic 2") {
		t.Error(`"Mic" and "Mic 2" should not share an asset name`)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "System_Mute.png"))
	touch(t, filepath.Join(dir, "Mic.jpg"))
	touch(t, filepath.Join(dir, "Mic2.png"))

	tests := []struct {
		name string
		want string
	}{
		{"System Mute", "System_Mute.png"},
		{"Mic", "Mic.jpg"},
		{"Mic2", "Mic2.png"},
		{"Camera", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(dir, tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if filepath.Base(got) != tt.want && !(got == "" && tt.want == "") {
				t.Errorf("Find(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}

	if got, err := Find(filepath.Join(dir, "missing"), "Mic"); err != nil || got != "" {
		t.Errorf("Find in missing dir = %q, %v", got, err)
	}
}

func TestStageAndCommit(t *testing.T) {
	dir := t.TempDir()
	icons := filepath.Join(dir, "icons")
	src := filepath.Join(dir, "mic-muted.png")
	if err := os.WriteFile(src, []byte("new image"), 0644); err != nil {
		t.Fatal(err)
	}

	staged, err := Stage(icons, src)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(staged), stagingPrefix) {
		t.Errorf("staged name %q lacks staging prefix", staged)
	}
	if got, _ := Find(icons, "Mic"); got != "" {
		t.Errorf("staged file visible to Find: %q", got)
	}

	// An older asset with another extension is replaced.
	touch(t, filepath.Join(icons, "Mic.gif"))

	final, err := Commit(icons, staged, "Mic")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if filepath.Base(final) != "Mic.png" {
		t.Errorf("final = %q", final)
	}
	data, err := os.ReadFile(final)
	if err != nil || string(data) != "new image" {
		t.Errorf("committed content = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(icons, "Mic.gif")); !os.IsNotExist(err) {
		t.Errorf("old asset still present")
	}
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Errorf("staged file still present")
	}
}

func TestStageErrors(t *testing.T) {
	dir := t.TempDir()

	noExt := filepath.Join(dir, "image")
	touch(t, noExt)
	if _, err := Stage(dir, noExt); !errors.Is(err, ErrNoExtension) {
		t.Errorf("Stage without extension error = %v", err)
	}
	if _, err := Stage(dir, filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Stage of missing file succeeded")
	}
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Mic.png"))
	touch(t, filepath.Join(dir, "Microphone.bmp"))

	got, err := Rename(dir, "Mic", "Microphone")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if filepath.Base(got) != "Microphone.png" {
		t.Errorf("Rename = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "Microphone.bmp")); !os.IsNotExist(err) {
		t.Error("stale asset of the new name survived")
	}
	if p, _ := Find(dir, "Mic"); p != "" {
		t.Errorf("old asset still found: %q", p)
	}

	if got, err := Rename(dir, "Nothing", "Else"); err != nil || got != "" {
		t.Errorf("Rename without asset = %q, %v", got, err)
	}
	if _, err := Rename(dir, "Microphone", "***"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Rename to empty name error = %v", err)
	}
}

func TestRemoveDiscardAndClean(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Mic.png"))
	touch(t, filepath.Join(dir, "Mic.jpg"))
	touch(t, filepath.Join(dir, ".staging-abc.png"))

	if err := Remove(dir, "Mic"); err != nil {
		t.Fatal(err)
	}
	if p, _ := Find(dir, "Mic"); p != "" {
		t.Errorf("asset survived Remove: %q", p)
	}

	if err := Discard(filepath.Join(dir, "gone.png")); err != nil {
		t.Errorf("Discard of missing file: %v", err)
	}
	if err := CleanStaging(dir, 0); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("entries left: %v", entries)
	}
}

func TestAssetsOfDottedNamesStaySeparate(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Mic.png"))
	touch(t, filepath.Join(dir, "Mic.Old.png"))

	got, err := Find(dir, "Mic")
	if err != nil || got != filepath.Join(dir, "Mic.png") {
		t.Fatalf("Find(Mic) = %q, %v", got, err)
	}
	got, _ = Find(dir, "Mic.Old")
	if got != filepath.Join(dir, "Mic.Old.png") {
		t.Errorf("Find(Mic.Old) = %q", got)
	}

	if err := Remove(dir, "Mic"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Mic.Old.png")); err != nil {
		t.Errorf("Remove(Mic) touched Mic.Old: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Mic.png")); !os.IsNotExist(err) {
		t.Errorf("Mic.png survived Remove: %v", err)
	}
}

func TestCleanStagingKeepsFreshFiles(t *testing.T) {
	dir := t.TempDir()
	fresh := filepath.Join(dir, ".staging-fresh.png")
	old := filepath.Join(dir, ".staging-old.png")
	touch(t, fresh)
	touch(t, old)
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if err := CleanStaging(dir, StaleStagingAge); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh staged file removed: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("stale staged file kept: %v", err)
	}
}
