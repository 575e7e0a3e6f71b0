package audiotag

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"

	flac "github.com/go-flac/go-flac/v2"
	"github.com/go-flac/flacvorbis/v2"
)

var (
	errNotOgg    = errors.New("ogg: missing page capture pattern")
	errNotVorbis = errors.New("ogg: first logical stream is not Vorbis")
)

const (
	oggContinued   = 0x01
	oggBOS         = 0x02
	oggHeaderSize  = 27
	oggMaxSegments = 255
)

var (
	vorbisIdentHeader   = []byte("\x01vorbis")
	vorbisCommentHeader = []byte("\x03vorbis")
)

var oggCRCTable = func() (tab [256]uint32) {
	for i := range tab {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		tab[i] = r
	}
	return tab
}()

func oggChecksum(page []byte) uint32 {
	var crc uint32
	for _, c := range page {
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^c]
	}
	return crc
}

type oggPage struct {
	flags   byte
	granule uint64
	serial  uint32
	seq     uint32
	lacing  []byte
	body    []byte
}

// marshal encodes the page with a fresh checksum.
func (p *oggPage) marshal() []byte {
	b := make([]byte, 0, oggHeaderSize+len(p.lacing)+len(p.body))
	b = append(b, "OggS"...)
	b = append(b, 0, p.flags)
	b = binary.LittleEndian.AppendUint64(b, p.granule)
	b = binary.LittleEndian.AppendUint32(b, p.serial)
	b = binary.LittleEndian.AppendUint32(b, p.seq)
	b = append(b, 0, 0, 0, 0, byte(len(p.lacing)))
	b = append(b, p.lacing...)
	b = append(b, p.body...)
	binary.LittleEndian.PutUint32(b[22:], oggChecksum(b))
	return b
}

func parseOggPages(data []byte) ([]*oggPage, error) {
	var pages []*oggPage
	for len(data) > 0 {
		if len(data) < oggHeaderSize || !bytes.Equal(data[:4], []byte("OggS")) {
			return nil, errNotOgg
		}
		nseg := int(data[26])
		if len(data) < oggHeaderSize+nseg {
			return nil, io.ErrUnexpectedEOF
		}
		p := &oggPage{
			flags:   data[5],
			granule: binary.LittleEndian.Uint64(data[6:]),
			serial:  binary.LittleEndian.Uint32(data[14:]),
			seq:     binary.LittleEndian.Uint32(data[18:]),
			lacing:  data[oggHeaderSize : oggHeaderSize+nseg],
		}
		size := 0
		for _, l := range p.lacing {
			size += int(l)
		}
		end := oggHeaderSize + nseg + size
		if len(data) < end {
			return nil, io.ErrUnexpectedEOF
		}
		p.body = data[oggHeaderSize+nseg : end]
		pages = append(pages, p)
		data = data[end:]
	}
	if len(pages) == 0 {
		return nil, errNotOgg
	}
	return pages, nil
}

// paginate lays packets out on pages starting at sequence number seq.
// Pages on which no packet ends carry the granule position -1.
func paginate(serial, seq uint32, packets ...[]byte) []*oggPage {
	var lacing, body []byte
	for _, pkt := range packets {
		n := len(pkt)
		for ; n >= 255; n -= 255 {
			lacing = append(lacing, 255)
		}
		lacing = append(lacing, byte(n))
		body = append(body, pkt...)
	}

	var pages []*oggPage
	continued := false
	for len(lacing) > 0 {
		k := min(len(lacing), oggMaxSegments)
		size, ends := 0, false
		for _, l := range lacing[:k] {
			size += int(l)
			if l < 255 {
				ends = true
			}
		}
		p := &oggPage{serial: serial, seq: seq, lacing: lacing[:k], body: body[:size]}
		if continued {
			p.flags |= oggContinued
		}
		if !ends {
			p.granule = ^uint64(0)
		}
		pages = append(pages, p)

		continued = lacing[k-1] == 255
		lacing, body = lacing[k:], body[size:]
		seq++
	}
	return pages
}

// oggVorbisFile is an Ogg Vorbis stream split into its three header
// packets and the pages that follow them.
type oggVorbisFile struct {
	pages   []*oggPage
	headers [][]byte // identification, comment, setup
	nhead   int      // pages holding the headers
}

func readOggVorbis(path string) (*oggVorbisFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pages, err := parseOggPages(data)
	if err != nil {
		return nil, err
	}

	f := &oggVorbisFile{pages: pages}
	serial := pages[0].serial
	var cur []byte
	for i, p := range pages {
		if p.serial != serial {
			return nil, errors.New("ogg: Vorbis headers interleaved with another stream")
		}
		off := 0
		for _, l := range p.lacing {
			cur = append(cur, p.body[off:off+int(l)]...)
			off += int(l)
			if l < 255 {
				f.headers = append(f.headers, cur)
				cur = nil
			}
		}
		if len(f.headers) < 3 {
			continue
		}
		if len(f.headers) > 3 || len(cur) > 0 {
			return nil, errors.New("ogg: audio data shares a page with the Vorbis headers")
		}
		if !bytes.HasPrefix(f.headers[0], vorbisIdentHeader) || !bytes.HasPrefix(f.headers[1], vorbisCommentHeader) {
			return nil, errNotVorbis
		}
		f.nhead = i + 1
		return f, nil
	}
	if len(f.headers) > 0 && !bytes.HasPrefix(f.headers[0], vorbisIdentHeader) {
		return nil, errNotVorbis
	}
	return nil, io.ErrUnexpectedEOF
}

// comment decodes the comment header. Its body is laid out like a FLAC
// VORBIS_COMMENT block followed by a framing bit.
func (f *oggVorbisFile) comment() (*flacvorbis.MetaDataBlockVorbisComment, error) {
	return flacvorbis.ParseFromMetaDataBlock(flac.MetaDataBlock{
		Type: flac.VorbisComment,
		Data: f.headers[1][len(vorbisCommentHeader):],
	})
}

// save replaces the comment header and writes the stream to path. Pages
// of the stream after the headers are renumbered when the header page
// count changes.
func (f *oggVorbisFile) save(path string, c *flacvorbis.MetaDataBlockVorbisComment) error {
	block := c.Marshal()
	packet := append(bytes.Clone(vorbisCommentHeader), block.Data...)
	packet = append(packet, 0x01)

	serial := f.pages[0].serial
	head := paginate(serial, 0, f.headers[0])
	head[0].flags |= oggBOS
	head = append(head, paginate(serial, uint32(len(head)), packet, f.headers[2])...)

	delta := int64(len(head)) - int64(f.nhead)
	pages := head
	renumber := true
	for _, p := range f.pages[f.nhead:] {
		q := *p
		if q.flags&oggBOS != 0 {
			// next link of a chained stream
			renumber = false
		}
		if renumber && q.serial == serial {
			q.seq = uint32(int64(q.seq) + delta)
		}
		pages = append(pages, &q)
	}

	var out []byte
	for _, p := range pages {
		out = append(out, p.marshal()...)
	}
	if err := replaceFile(path, out); err != nil {
		return err
	}

	f.pages = pages
	f.headers[1] = packet
	f.nhead = len(head)
	return nil
}

// replaceFile writes data next to path and renames it into place,
// keeping the permission bits of the original.
func replaceFile(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
