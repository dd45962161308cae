package cmd

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/micoverlay/micoverlay/internal/buildinfo"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "micoverlayd")

	out := buf.String()
	for _, want := range []string{"micoverlayd", buildinfo.Version, buildinfo.CommitHash, runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
