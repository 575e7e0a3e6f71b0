package audiotag

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeMP3 writes a tagless file of silent MPEG-1 Layer III frames.
func writeMP3(t *testing.T, name string) string {
	t.Helper()
	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x64})
	return writeFile(t, name, bytes.Repeat(frame, 4))
}

// writeOGG writes a minimal Ogg Vorbis stream: identification, comment
// and setup headers followed by one audio page. comments are raw
// "KEY=value" entries.
func writeOGG(t *testing.T, name string, comments ...string) string {
	t.Helper()

	ident := []byte("\x01vorbis")
	ident = binary.LittleEndian.AppendUint32(ident, 0)      // version
	ident = append(ident, 2)                                 // channels
	ident = binary.LittleEndian.AppendUint32(ident, 44100)  // sample rate
	ident = binary.LittleEndian.AppendUint32(ident, 0)      // bitrate max
	ident = binary.LittleEndian.AppendUint32(ident, 128000) // bitrate nominal
	ident = binary.LittleEndian.AppendUint32(ident, 0)      // bitrate min
	ident = append(ident, 0xB8, 0x01)                       // block sizes, framing

	comment := []byte("\x03vorbis")
	vendor := "lyricstag test"
	comment = binary.LittleEndian.AppendUint32(comment, uint32(len(vendor)))
	comment = append(comment, vendor...)
	comment = binary.LittleEndian.AppendUint32(comment, uint32(len(comments)))
	for _, c := range comments {
		comment = binary.LittleEndian.AppendUint32(comment, uint32(len(c)))
		comment = append(comment, c...)
	}
	comment = append(comment, 0x01)

	setup := append([]byte("\x05vorbis"), bytes.Repeat([]byte{0x00}, 32)...)
	audio := bytes.Repeat([]byte{0x00}, 64)

	var b []byte
	b = append(b, fixturePage(0x02, 0, 0, ident)...)
	b = append(b, fixturePage(0x00, 0, 1, comment, setup)...)
	b = append(b, fixturePage(0x04, 44100, 2, audio)...)
	return writeFile(t, name, b)
}

const oggSerial = 0x4c595254

// fixturePage encodes packets on a single page of the fixture stream.
func fixturePage(flags byte, granule uint64, seq uint32, packets ...[]byte) []byte {
	var lacing, body []byte
	for _, p := range packets {
		n := len(p)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		lacing = append(lacing, byte(n))
		body = append(body, p...)
	}
	page := &oggPage{flags: flags, granule: granule, serial: oggSerial, seq: seq, lacing: lacing, body: body}
	return page.marshal()
}

// writeFLAC writes a FLAC stream holding only STREAMINFO and some frame bytes.
func writeFLAC(t *testing.T, name string) string {
	t.Helper()

	info := make([]byte, 0, 34)
	info = binary.BigEndian.AppendUint16(info, 4096)
	info = binary.BigEndian.AppendUint16(info, 4096)
	info = append(info, 0, 0, 0, 0, 0, 0)
	// sample rate (20 bits), channels-1 (3), bits per sample-1 (5), total samples (36)
	info = binary.BigEndian.AppendUint64(info, uint64(44100)<<44|uint64(1)<<41|uint64(15)<<36)
	info = append(info, make([]byte, 16)...)

	b := []byte("fLaC")
	b = append(b, 0x80, 0, 0, byte(len(info)))
	b = append(b, info...)
	b = append(b, 0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00)
	b = append(b, make([]byte, 64)...)
	return writeFile(t, name, b)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func writePNG(t *testing.T, name string) (string, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return writeFile(t, name, buf.Bytes()), buf.Bytes()
}
