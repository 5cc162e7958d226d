package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds track information for display.
type Metadata struct {
	Title  string
	Artist string
}

// Label returns "Artist - Title", or just the title.
func (m Metadata) Label() string {
	if m.Artist == "" {
		return m.Title
	}
	return m.Artist + " - " + m.Title
}

// ReadMetadata reads ID3v2 tags from an MP3 file. Other formats, untagged
// files and read errors fall back to the file name.
func ReadMetadata(path string) Metadata {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
			}
			if m.Title != "" {
				return m
			}
		}
	}

	base := filepath.Base(path)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
