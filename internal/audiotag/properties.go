package audiotag

import (
	"time"

	"go.senan.xyz/taglib"
)

// Properties describes the audio stream of a file.
type Properties struct {
	Length     time.Duration
	Channels   uint
	SampleRate uint
	// Bitrate in kbit/s.
	Bitrate uint
}

// ReadProperties reads the audio properties of any file TagLib can open.
func ReadProperties(path string) (Properties, error) {
	p, err := taglib.ReadProperties(path)
	if err != nil {
		return Properties{}, err
	}
	return Properties{
		Length:     p.Length,
		Channels:   p.Channels,
		SampleRate: p.SampleRate,
		Bitrate:    p.Bitrate,
	}, nil
}
