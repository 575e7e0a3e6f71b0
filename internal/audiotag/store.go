package audiotag

import (
	"errors"
	"slices"
	"strings"
)

// Canonical tag keys. Any other key is stored verbatim (upper-cased).
const (
	KeyTitle       = "TITLE"
	KeyArtist      = "ARTIST"
	KeyAlbum       = "ALBUM"
	KeyAlbumArtist = "ALBUMARTIST"
	KeyGenre       = "GENRE"
	KeyDate        = "DATE"
	KeyTrackNumber = "TRACKNUMBER"
	KeyDiscNumber  = "DISCNUMBER"
	KeyComposer    = "COMPOSER"
	KeyComment     = "COMMENT"
	KeyLyrics      = "LYRICS"
)

// Store is an open tag container. Mutations stay in memory until Save.
// Callers must Close the store on every path; Close never saves.
type Store interface {
	Get(key string) []string
	// Set replaces all values of key. Calling it without values deletes the key.
	Set(key string, values ...string)
	// Add appends value to key. ID3 tags hold one blank-language lyrics
	// frame, so Add on LYRICS replaces it there.
	Add(key, value string)
	Delete(key string)
	// Keys returns the keys holding at least one value, sorted.
	Keys() []string
	Save() error
	Close() error
}

// PictureSetter is implemented by stores that can embed a front cover.
type PictureSetter interface {
	SetPicture(mime string, data []byte) error
}

// Open opens the tag container of an .mp3, .ogg or .flac file.
func Open(path string, opts Options) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("music file path required")
	}
	format, ext := Classify(path, opts)
	switch format {
	case FormatMP3:
		return openStore(openMP3(path, opts))
	case FormatOGG:
		return openStore(openOGG(path))
	case FormatFLAC:
		return openStore(openFLAC(path))
	default:
		return nil, unsupported(ext, ".mp3", ".ogg", ".flac")
	}
}

// openStore returns a nil Store on error rather than a typed nil pointer.
func openStore[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func normKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// mapStore is the in-memory key/value view under vorbisStore. Keys are
// kept upper-case.
type mapStore struct {
	tags map[string][]string
}

func newMapStore(raw map[string][]string) mapStore {
	m := mapStore{tags: make(map[string][]string, len(raw))}
	for k, v := range raw {
		k = normKey(k)
		m.tags[k] = append(m.tags[k], v...)
	}
	return m
}

func (m mapStore) Get(key string) []string {
	return slices.Clone(m.tags[normKey(key)])
}

func (m mapStore) Set(key string, values ...string) {
	if len(values) == 0 {
		m.Delete(key)
		return
	}
	m.tags[normKey(key)] = slices.Clone(values)
}

func (m mapStore) Add(key, value string) {
	k := normKey(key)
	m.tags[k] = append(m.tags[k], value)
}

func (m mapStore) Delete(key string) {
	delete(m.tags, normKey(key))
}

func (m mapStore) Keys() []string {
	keys := make([]string, 0, len(m.tags))
	for k, v := range m.tags {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
