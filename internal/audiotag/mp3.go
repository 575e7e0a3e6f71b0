package audiotag

import (
	"slices"
	"strings"

	"github.com/bogem/id3v2/v2"
)

const (
	frameComment     = "COMM"
	frameLyrics      = "USLT"
	frameUserDefined = "TXXX"
	framePicture     = "APIC"

	// LyricsLanguage is the language code written on lyrics frames.
	LyricsLanguage = "   "
)

var textFrames = map[string]string{
	KeyTitle:       "TIT2",
	KeyArtist:      "TPE1",
	KeyAlbum:       "TALB",
	KeyAlbumArtist: "TPE2",
	KeyGenre:       "TCON",
	KeyTrackNumber: "TRCK",
	KeyDiscNumber:  "TPOS",
	KeyComposer:    "TCOM",
}

type mp3Store struct {
	tag      *id3v2.Tag
	encoding id3v2.Encoding
}

func openMP3(audioPath string, opts Options) (*mp3Store, error) {
	tag, err := id3v2.Open(audioPath, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	if opts.ID3Version == 3 || opts.ID3Version == 4 {
		tag.SetVersion(byte(opts.ID3Version))
	}

	enc := id3v2.EncodingUTF8
	switch strings.ToLower(opts.ID3Encoding) {
	case "utf16", "utf-16":
		enc = id3v2.EncodingUTF16
	case "iso-8859-1", "latin1":
		enc = id3v2.EncodingISO
	}
	if enc.Equals(id3v2.EncodingUTF8) && tag.Version() < 4 {
		enc = id3v2.EncodingUTF16
	}
	tag.SetDefaultEncoding(enc)

	return &mp3Store{tag: tag, encoding: enc}, nil
}

func (s *mp3Store) dateFrame() string {
	if s.tag.Version() >= 4 {
		return "TDRC"
	}
	return "TYER"
}

func (s *mp3Store) textFrame(key string) (string, bool) {
	if key == KeyDate {
		return s.dateFrame(), true
	}
	id, ok := textFrames[key]
	return id, ok
}

// sep joins multiple values of one text frame. ID3v2.4 defines NUL;
// ID3v2.3 has no separator, so values are joined with "/" and read back
// as a single value.
func (s *mp3Store) sep() string {
	if s.tag.Version() >= 4 {
		return "\x00"
	}
	return "/"
}

func (s *mp3Store) split(text string) []string {
	if s.tag.Version() >= 4 {
		return strings.Split(strings.TrimRight(text, "\x00"), "\x00")
	}
	return []string{text}
}

func (s *mp3Store) Get(key string) []string {
	key = normKey(key)
	if id, ok := s.textFrame(key); ok {
		if len(s.tag.GetFrames(id)) == 0 {
			return nil
		}
		return s.split(s.tag.GetTextFrame(id).Text)
	}

	var out []string
	switch key {
	case KeyLyrics:
		for _, f := range s.tag.GetFrames(frameLyrics) {
			if uslf, ok := f.(id3v2.UnsynchronisedLyricsFrame); ok {
				out = append(out, uslf.Lyrics)
			}
		}
	case KeyComment:
		for _, f := range s.tag.GetFrames(frameComment) {
			if cf, ok := f.(id3v2.CommentFrame); ok {
				out = append(out, s.split(cf.Text)...)
			}
		}
	default:
		for _, f := range s.tag.GetFrames(frameUserDefined) {
			if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && normKey(udtf.Description) == key {
				out = append(out, s.split(udtf.Value)...)
			}
		}
	}
	return out
}

// Set stores all values in a single frame. Lyrics values are joined
// with newlines into one blank-language frame.
func (s *mp3Store) Set(key string, values ...string) {
	key = normKey(key)
	s.Delete(key)
	if len(values) == 0 {
		return
	}

	text := strings.Join(values, s.sep())
	if id, ok := s.textFrame(key); ok {
		s.tag.AddTextFrame(id, s.encoding, text)
		return
	}
	switch key {
	case KeyLyrics:
		s.SetLyrics(strings.Join(values, "\n"))
	case KeyComment:
		s.tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    s.encoding,
			Language:    "eng",
			Description: "",
			Text:        text,
		})
	default:
		s.tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    s.encoding,
			Description: key,
			Value:       text,
		})
	}
}

// Add appends value to key. For lyrics it replaces only the
// blank-language frame, as ID3 identifies lyrics frames by language
// and description.
func (s *mp3Store) Add(key, value string) {
	key = normKey(key)
	if key == KeyLyrics {
		s.SetLyrics(value)
		return
	}
	s.Set(key, append(s.Get(key), value)...)
}

// SetLyrics writes the unsynchronised lyrics frame with the blank
// language code and empty description, replacing the previous frame
// with that identity. Lyrics in other languages are left alone.
func (s *mp3Store) SetLyrics(lyrics string) {
	s.keepFrames(frameLyrics, func(f id3v2.Framer) bool {
		uslf, ok := f.(id3v2.UnsynchronisedLyricsFrame)
		return !ok || uslf.Language != LyricsLanguage || uslf.ContentDescriptor != ""
	})
	s.tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          s.encoding,
		Language:          LyricsLanguage,
		ContentDescriptor: "",
		Lyrics:            lyrics,
	})
}

func (s *mp3Store) Delete(key string) {
	key = normKey(key)
	if id, ok := s.textFrame(key); ok {
		s.tag.DeleteFrames(id)
		return
	}
	switch key {
	case KeyLyrics:
		s.tag.DeleteFrames(frameLyrics)
	case KeyComment:
		s.tag.DeleteFrames(frameComment)
	default:
		s.keepFrames(frameUserDefined, func(f id3v2.Framer) bool {
			udtf, ok := f.(id3v2.UserDefinedTextFrame)
			return !ok || normKey(udtf.Description) != key
		})
	}
}

// keepFrames drops every frame of id for which keep returns false.
func (s *mp3Store) keepFrames(id string, keep func(id3v2.Framer) bool) {
	frames := s.tag.GetFrames(id)
	if len(frames) == 0 {
		return
	}
	s.tag.DeleteFrames(id)
	for _, f := range frames {
		if keep(f) {
			s.tag.AddFrame(id, f)
		}
	}
}

func (s *mp3Store) Keys() []string {
	var keys []string
	for key, id := range textFrames {
		if len(s.tag.GetFrames(id)) > 0 {
			keys = append(keys, key)
		}
	}
	if len(s.tag.GetFrames(s.dateFrame())) > 0 {
		keys = append(keys, KeyDate)
	}
	if len(s.tag.GetFrames(frameLyrics)) > 0 {
		keys = append(keys, KeyLyrics)
	}
	if len(s.tag.GetFrames(frameComment)) > 0 {
		keys = append(keys, KeyComment)
	}
	for _, f := range s.tag.GetFrames(frameUserDefined) {
		if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok {
			keys = append(keys, normKey(udtf.Description))
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// SetPicture replaces the front cover.
func (s *mp3Store) SetPicture(mime string, data []byte) error {
	s.keepFrames(framePicture, func(f id3v2.Framer) bool {
		pf, ok := f.(id3v2.PictureFrame)
		return !ok || pf.PictureType != id3v2.PTFrontCover
	})
	s.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    s.encoding,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     data,
	})
	return nil
}

func (s *mp3Store) Save() error {
	return s.tag.Save()
}

func (s *mp3Store) Close() error {
	return s.tag.Close()
}
