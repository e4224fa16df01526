package mediainfo

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// MusicTags holds the embedded tags read from an audio file
type MusicTags struct {
	Title  string
	Artist string
}

// ReadMusicTags reads embedded tags (ID3, MP4 atoms, ...) from an audio
// file. Files without recognizable tags return an error; callers fall back
// to file-name identity.
func ReadMusicTags(path string) (*MusicTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	return &MusicTags{
		Title:  m.Title(),
		Artist: m.Artist(),
	}, nil
}
