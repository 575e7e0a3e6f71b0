package audiotag

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

type lyricsStrategy struct {
	open  func(path string, opts Options) (Store, error)
	apply func(s Store, lyrics string)
}

var lyricsStrategies = map[Format]lyricsStrategy{
	FormatMP3: {
		open: func(path string, opts Options) (Store, error) { return openStore(openMP3(path, opts)) },
		apply: func(s Store, lyrics string) {
			s.(*mp3Store).SetLyrics(lyrics)
		},
	},
	FormatOGG: {
		open: func(path string, _ Options) (Store, error) { return openStore(openOGG(path)) },
		apply: func(s Store, lyrics string) {
			s.Set(KeyLyrics, lyrics)
		},
	},
}

// LyricsSetter writes lyrics into .mp3 (ID3v2 USLT) and .ogg (Vorbis
// comment LYRICS) files.
type LyricsSetter struct {
	opts   Options
	logger zerolog.Logger
}

func NewLyricsSetter(opts Options, logger zerolog.Logger) *LyricsSetter {
	return &LyricsSetter{
		opts:   opts,
		logger: logger.With().Str("component", "lyrics").Logger(),
	}
}

// SetLyrics replaces the lyrics stored in the file at path. Any other
// extension fails with an *UnsupportedFormatError before the file is
// touched. Errors from reading or writing the tag are returned as is.
func (l *LyricsSetter) SetLyrics(path, lyrics string) (err error) {
	if strings.TrimSpace(path) == "" {
		return errors.New("music file path required")
	}

	format, ext := Classify(path, l.opts)
	strategy, ok := lyricsStrategies[format]
	if !ok {
		l.logger.Debug().Str("path", path).Str("format", describe(format, ext)).Msg("no lyrics strategy")
		return unsupported(ext, ".mp3", ".ogg")
	}

	store, err := strategy.open(path, l.opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	strategy.apply(store, lyrics)
	if err := store.Save(); err != nil {
		return err
	}
	l.logger.Debug().Str("path", path).Stringer("format", format).Int("bytes", len(lyrics)).Msg("lyrics saved")
	return nil
}
