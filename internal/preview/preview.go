// Package preview wraps an external ImageMagick-compatible tool that turns
// a versioned image file into a flattened, downscale-only JPEG preview. It
// follows original_source/src/image_magick.rs (igapanovich/biver-rs)
// directly: the "jpg:" output prefix, the "-thumbnail NxN>" downscale-only
// flag, and the teacher's filetype dependency is reused to sniff the input
// signature as a defensive cross-check on top of the extension allow-list.
package preview

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
)

// imageExtensions is the fixed allow-list of spec.md §4.4.
var imageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"psd":  true,
}

// IsEligible reports whether a versioned file's extension makes it a
// preview candidate, per spec.md §4.4.
func IsEligible(fileName string) bool {
	ext := strings.TrimPrefix(strings.ToLower(extOf(fileName)), ".")
	return imageExtensions[ext]
}

func extOf(fileName string) string {
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 {
		return fileName[i:]
	}
	return ""
}

// Tool invokes an ImageMagick-compatible external tool. The zero value
// uses "magick" from $PATH and a 1024px downscale bound.
type Tool struct {
	// Command is the configured invocation, e.g. "magick" or
	// "/opt/imagemagick/bin/convert".
	Command string
	// MaxDimension bounds the preview's longest edge (default 1024 per
	// spec.md §4.4). Zero means the default.
	MaxDimension int
	Logger       *logrus.Logger
}

func (t Tool) command() string {
	if t.Command == "" {
		return "magick"
	}
	return t.Command
}

func (t Tool) maxDimension() int {
	if t.MaxDimension <= 0 {
		return 1024
	}
	return t.MaxDimension
}

func (t Tool) logger() *logrus.Logger {
	if t.Logger == nil {
		return logrus.StandardLogger()
	}
	return t.Logger
}

func (t Tool) argv(args ...string) ([]string, error) {
	parts, err := shlex.Split(t.command())
	if err != nil {
		return nil, fmt.Errorf("preview: parsing configured command %q: %w", t.command(), err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("preview: configured command is empty")
	}
	return append(parts, args...), nil
}

// Ready reports whether the external tool is present and runnable.
func (t Tool) Ready() bool {
	argv, err := t.argv("-version")
	if err != nil {
		return false
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		t.logger().WithError(err).Debug("preview: tool not ready")
		return false
	}
	return cmd.ProcessState.ExitCode() == 0
}

// CreatePreview flattens input's layers and downscales it to at most
// MaxDimension x MaxDimension, preserving aspect ratio, writing a JPEG to
// outJPEG regardless of input's own format.
func (t Tool) CreatePreview(input, outJPEG string) error {
	if sniffed, ok := sniffIsImage(input); ok && !sniffed {
		t.logger().WithField("input", input).Warn("preview: extension claims an image type but content signature does not match; attempting anyway")
	}

	bound := strconv.Itoa(t.maxDimension())
	thumbnailFlag := bound + "x" + bound + ">"

	argv, err := t.argv(input, "-flatten", "-thumbnail", thumbnailFlag, "jpg:"+outJPEG)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("preview: creating preview of %s: %w", input, err)
	}
	return nil
}

// sniffIsImage reads the leading bytes of path and reports whether
// h2non/filetype recognises it as an image. The second return value is
// false if sniffing itself failed (file unreadable, unrecognised
// signature) - callers should not treat that as a hard "not an image".
func sniffIsImage(path string) (isImage bool, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return false, false
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return false, false
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return false, false
	}
	return filetype.IsImage(head), true
}
