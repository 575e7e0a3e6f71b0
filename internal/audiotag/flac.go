package audiotag

import (
	flac "github.com/go-flac/go-flac/v2"
	"github.com/go-flac/flacpicture/v2"
	"github.com/go-flac/flacvorbis/v2"
)

type flacStore struct {
	vorbisStore
	path   string
	file   *flac.File
	cmtIdx int
}

func openFLAC(audioPath string) (*flacStore, error) {
	f, err := flac.ParseFile(audioPath)
	if err != nil {
		return nil, err
	}

	s := &flacStore{path: audioPath, file: f, cmtIdx: -1}
	var cmts *flacvorbis.MetaDataBlockVorbisComment
	for idx, m := range f.Meta {
		if m.Type != flac.VorbisComment {
			continue
		}
		if cmts, err = flacvorbis.ParseFromMetaDataBlock(*m); err != nil {
			return nil, err
		}
		s.cmtIdx = idx
		break
	}
	s.vorbisStore = newVorbisStore(cmts)
	return s, nil
}

func (s *flacStore) Save() error {
	cmtBlock := s.block().Marshal()
	if s.cmtIdx >= 0 {
		s.file.Meta[s.cmtIdx] = &cmtBlock
	} else {
		s.file.Meta = append(s.file.Meta, &cmtBlock)
		s.cmtIdx = len(s.file.Meta) - 1
	}
	return s.file.Save(s.path)
}

func (s *flacStore) Close() error { return nil }

// SetPicture replaces any front cover block. It takes effect on Save.
func (s *flacStore) SetPicture(mime string, data []byte) error {
	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", data, mime)
	if err != nil {
		return err
	}

	kept := s.file.Meta[:0]
	cmtIdx := -1
	for idx, m := range s.file.Meta {
		if m.Type == flac.Picture {
			if old, err := flacpicture.ParseFromMetaDataBlock(*m); err == nil && old.PictureType == flacpicture.PictureTypeFrontCover {
				continue
			}
		}
		if idx == s.cmtIdx {
			cmtIdx = len(kept)
		}
		kept = append(kept, m)
	}
	picBlock := pic.Marshal()
	s.file.Meta = append(kept, &picBlock)
	s.cmtIdx = cmtIdx
	return nil
}
