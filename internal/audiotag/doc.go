// Package audiotag reads and writes textual tags on audio files.
//
// Tags are exposed through Store, a key to values mapping opened by
// Open and persisted by Save:
//
//	s, err := audiotag.Open("song.flac", audiotag.Options{})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	s.Set(audiotag.KeyAlbum, "White Album")
//	s.Delete(audiotag.KeyDate)
//	s.Set(audiotag.KeyGenre, "Vocal", "Classical")
//	return s.Save()
//
// Backends:
//   - .mp3: ID3v2 frames. Unknown keys become TXXX frames.
//   - .ogg: Vorbis comment header of an Ogg Vorbis stream. Empty values
//     are kept.
//   - .flac: Vorbis comment metadata block.
//
// LyricsSetter is limited to .mp3 and .ogg. ReadProperties measures
// the audio stream through TagLib.
package audiotag
