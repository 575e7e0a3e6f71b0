package audiotag

import (
	"strings"

	"github.com/go-flac/flacvorbis/v2"
)

// vorbisStore is the key/value view of a Vorbis comment shared by the
// FLAC and Ogg backends. Empty values are kept; the original key order
// is kept on save.
type vorbisStore struct {
	mapStore
	vendor string
	order  []string
}

func newVorbisStore(c *flacvorbis.MetaDataBlockVorbisComment) vorbisStore {
	s := vorbisStore{mapStore: newMapStore(nil)}
	if c == nil {
		return s
	}
	s.vendor = c.Vendor
	for _, entry := range c.Comments {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		k = normKey(k)
		if _, seen := s.tags[k]; !seen {
			s.order = append(s.order, k)
		}
		s.tags[k] = append(s.tags[k], v)
	}
	return s
}

// comments flattens the map back into KEY=value entries, keeping the
// original key order and appending new keys sorted.
func (s vorbisStore) comments() []string {
	var out []string
	seen := map[string]bool{}
	emit := func(k string) {
		if seen[k] {
			return
		}
		seen[k] = true
		for _, v := range s.tags[k] {
			out = append(out, k+"="+v)
		}
	}
	for _, k := range s.order {
		emit(k)
	}
	for _, k := range s.Keys() {
		emit(k)
	}
	return out
}

func (s vorbisStore) block() *flacvorbis.MetaDataBlockVorbisComment {
	c := flacvorbis.New()
	if s.vendor != "" {
		c.Vendor = s.vendor
	}
	c.Comments = s.comments()
	return c
}
