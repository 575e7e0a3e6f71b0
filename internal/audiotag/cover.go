package audiotag

import (
	"os"
)

// SetCover embeds the image at coverPath as the front cover of an .mp3
// or .flac file.
func SetCover(audioPath, coverPath string, opts Options) (err error) {
	format, ext := Classify(audioPath, opts)
	if format != FormatMP3 && format != FormatFLAC {
		return unsupported(ext, ".mp3", ".flac")
	}

	pic, err := os.ReadFile(coverPath)
	if err != nil {
		return err
	}

	store, err := Open(audioPath, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ps, ok := store.(PictureSetter)
	if !ok {
		return unsupported(ext, ".mp3", ".flac")
	}
	if err := ps.SetPicture(mimeFromExt(coverPath), pic); err != nil {
		return err
	}
	return store.Save()
}
