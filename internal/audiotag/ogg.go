package audiotag

// oggStore edits the comment header of an Ogg Vorbis file. The whole
// stream is read on Open and rewritten on Save.
type oggStore struct {
	vorbisStore
	path string
	file *oggVorbisFile
}

func openOGG(audioPath string) (*oggStore, error) {
	f, err := readOggVorbis(audioPath)
	if err != nil {
		return nil, err
	}
	cmts, err := f.comment()
	if err != nil {
		return nil, err
	}
	return &oggStore{vorbisStore: newVorbisStore(cmts), path: audioPath, file: f}, nil
}

// Save rewrites the whole comment: keys deleted in memory are dropped.
func (s *oggStore) Save() error {
	return s.file.save(s.path, s.block())
}

func (s *oggStore) Close() error { return nil }
