// Package assets locates and manages icon images in the data directory.
// An asset is found by name: its file name is the sanitized binding name
// followed by the original image extension.
package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyName is returned when a name sanitizes to nothing.
	ErrEmptyName = errors.New("name has no file-safe characters")

	// ErrNoExtension is returned when staging an image without a file
	// extension; lookup relies on "<name>.<ext>".
	ErrNoExtension = errors.New("image file has no extension")
)

const stagingPrefix = ".staging-"

var unsafeChars = strings.NewReplacer(
	"<", "", ">", "", ":", "", `"`, "", "/", "",
	`\`, "", "|", "", "?", "", "*", "",
)

// Sanitize turns a binding name into a file-system safe token.
func Sanitize(name string) string {
	s := unsafeChars.Replace(name)
	s = strings.Trim(s, ". ")
	return strings.ReplaceAll(s, " ", "_")
}

// SameAsset reports whether two names resolve to the same asset file name
// on a case-insensitive file system.
func SameAsset(a, b string) bool {
	return strings.EqualFold(Sanitize(a), Sanitize(b))
}

// Find returns the path of the first file in dir named Sanitize(name)
// followed by a single extension, or "" when there is none. A missing dir is
// not an error.
func Find(dir, name string) (string, error) {
	matches, err := list(dir, name)
	if err != nil || len(matches) == 0 {
		return "", err
	}
	return matches[0], nil
}

func list(dir, name string) ([]string, error) {
	base := Sanitize(name)
	if base == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read icons dir: %w", err)
	}

	// "Mic.Old.png" belongs to "Mic.Old", not to "Mic".
	prefix := base + "."
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if ext := strings.TrimPrefix(e.Name(), prefix); ext == "" || strings.Contains(ext, ".") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// Stage copies src into dir under a hidden temporary name and returns the
// staged path. The staged file is invisible to Find until committed.
func Stage(dir, src string) (string, error) {
	ext := filepath.Ext(src)
	if ext == "" || ext == "." {
		return "", fmt.Errorf("%w: %s", ErrNoExtension, src)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create icons dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	staged := filepath.Join(dir, stagingPrefix+uuid.New().String()+ext)
	out, err := os.OpenFile(staged, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create staged image: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(staged)
		return "", fmt.Errorf("failed to copy image: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(staged)
		return "", fmt.Errorf("failed to sync staged image: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("failed to close staged image: %w", err)
	}
	return staged, nil
}

// Commit replaces every asset of name with the staged file and returns the
// final path.
func Commit(dir, staged, name string) (string, error) {
	base := Sanitize(name)
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyName, name)
	}
	if err := Remove(dir, name); err != nil {
		return "", err
	}
	final := filepath.Join(dir, base+filepath.Ext(staged))
	if err := os.Rename(staged, final); err != nil {
		return "", fmt.Errorf("failed to commit image: %w", err)
	}
	return final, nil
}

// Rename moves the asset of oldName to newName, keeping its extension.
// It returns "" when oldName has no asset.
func Rename(dir, oldName, newName string) (string, error) {
	base := Sanitize(newName)
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyName, newName)
	}
	current, err := Find(dir, oldName)
	if err != nil || current == "" {
		return "", err
	}
	final := filepath.Join(dir, base+filepath.Ext(current))
	if final == current {
		return current, nil
	}
	stale, err := list(dir, newName)
	if err != nil {
		return "", err
	}
	for _, s := range stale {
		if s == current {
			continue
		}
		if err := os.Remove(s); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to remove image: %w", err)
		}
	}
	if err := os.Rename(current, final); err != nil {
		return "", fmt.Errorf("failed to rename image: %w", err)
	}
	return final, nil
}

// Remove deletes every asset of name.
func Remove(dir, name string) error {
	matches, err := list(dir, name)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove image: %w", err)
		}
	}
	return nil
}

// Discard removes a staged file that will not be committed.
func Discard(staged string) error {
	if staged == "" {
		return nil
	}
	if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// StaleStagingAge is how old a staged file must be before CleanStaging
// treats it as abandoned. Younger files may belong to an edit in progress.
const StaleStagingAge = 10 * time.Minute

// CleanStaging removes staged files older than olderThan, left behind by an
// interrupted edit.
func CleanStaging(dir string, olderThan time.Duration) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), stagingPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		if time.Since(info.ModTime()) >= olderThan {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
