package audiotag

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatUnsupported Format = iota
	FormatMP3
	FormatOGG
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatOGG:
		return "ogg"
	case FormatFLAC:
		return "flac"
	default:
		return "unsupported"
	}
}

// Options tune how files are classified and how ID3 tags are written.
type Options struct {
	// StrictExtension matches extensions case-sensitively (".MP3" is unsupported).
	StrictExtension bool
	// ID3Version is 3 or 4. Zero keeps the version found in the file.
	ID3Version int
	// ID3Encoding is one of "utf8", "utf16", "iso-8859-1". Empty means utf8.
	ID3Encoding string
}

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// UnsupportedFormatError reports a path whose extension has no handler.
type UnsupportedFormatError struct {
	Ext       string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return "wrong extension, want " + joinExts(e.Supported)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

func joinExts(exts []string) string {
	switch len(exts) {
	case 0:
		return "nothing"
	case 1:
		return exts[0]
	}
	return strings.Join(exts[:len(exts)-1], ", ") + " or " + exts[len(exts)-1]
}

// Classify maps a path to its Format by extension.
func Classify(path string, opts Options) (Format, string) {
	ext := filepath.Ext(path)
	key := ext
	if !opts.StrictExtension {
		key = strings.ToLower(ext)
	}
	switch key {
	case ".mp3":
		return FormatMP3, ext
	case ".ogg":
		return FormatOGG, ext
	case ".flac":
		return FormatFLAC, ext
	default:
		return FormatUnsupported, ext
	}
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

func unsupported(ext string, supported ...string) error {
	return &UnsupportedFormatError{Ext: ext, Supported: supported}
}

func describe(f Format, ext string) string {
	if f == FormatUnsupported {
		return fmt.Sprintf("unsupported (%q)", ext)
	}
	return f.String()
}
