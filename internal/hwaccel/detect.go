package hwaccel

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	detectTimeout   = 3 * time.Second
	selfTestTimeout = 15 * time.Second
)

// devicePresent reports whether the backend's device nodes exist.
func devicePresent(b Backend) bool {
	switch b {
	case BackendNVENC:
		return nvidiaPresent()
	case BackendVAAPI:
		return vaapiPresent()
	}
	return false
}

// nvidiaPresent checks the NVIDIA device nodes, falling back to nvidia-smi
// for setups where the nodes are created lazily.
func nvidiaPresent() bool {
	for _, dev := range []string{"/dev/nvidia0", "/dev/nvidiactl"} {
		if _, err := os.Stat(dev); err == nil {
			return true
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "nvidia-smi", "-L").Output()
	return err == nil && bytes.Contains(out, []byte("GPU"))
}

// vaapiPresent checks for a DRM render node.
func vaapiPresent() bool {
	nodes, err := filepath.Glob("/dev/dri/renderD*")
	return err == nil && len(nodes) > 0
}

// runSelfTest encodes one synthetic frame with the target encoder. A clean
// exit means the driver stack actually works, not just that the device node
// exists.
func runSelfTest(ctx context.Context, b Backend, encoder string) error {
	ctx, cancel := context.WithTimeout(ctx, selfTestTimeout)
	defer cancel()

	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error"}
	if b == BackendVAAPI {
		args = append(args,
			"-init_hw_device", "vaapi=va:"+DefaultVAAPIDevice,
			"-filter_hw_device", "va",
		)
	}
	args = append(args,
		"-f", "lavfi",
		"-i", "testsrc=duration=0.1:size=320x240:rate=1",
		"-frames:v", "1",
	)
	if b == BackendVAAPI {
		args = append(args, "-vf", "format=nv12,hwupload")
	}
	args = append(args, "-c:v", encoder, "-f", "null", "-")

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %s", err, firstLine(msg))
		}
		return err
	}
	return nil
}

// queryEncoderFormats parses the "Supported pixel formats:" line from
// ffmpeg's encoder help output.
func queryEncoderFormats(ctx context.Context, encoder string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-h", "encoder="+encoder).Output()
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "Supported pixel formats:"); ok {
			return strings.Fields(rest), nil
		}
	}
	return nil, fmt.Errorf("no pixel format listing for %s", encoder)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
