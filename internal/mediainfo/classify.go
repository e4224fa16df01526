// Package mediainfo classifies media files and wraps the external
// ffmpeg/ffprobe toolchain for technical metadata and frame capture.
package mediainfo

import (
	"path/filepath"
	"strings"
)

// MediaType is the coarse classification derived from a file extension
type MediaType string

const (
	TypeMovie   MediaType = "movie"
	TypeMusic   MediaType = "music"
	TypeDoc     MediaType = "doc"
	TypeUnknown MediaType = ""
)

// mediaTypes maps lowercase file extensions to their classification
var mediaTypes = map[string]MediaType{
	// video
	".mp4":  TypeMovie,
	".avi":  TypeMovie,
	".mov":  TypeMovie,
	".wmv":  TypeMovie,
	".flv":  TypeMovie,
	".webm": TypeMovie,
	".mpg":  TypeMovie,
	".mkv":  TypeMovie,
	".asf":  TypeMovie,
	".vob":  TypeMovie,
	".ts":   TypeMovie,
	".m2ts": TypeMovie,
	// audio
	".wave": TypeMusic,
	".alf":  TypeMusic,
	".mp3":  TypeMusic,
	".aac":  TypeMusic,
	".m4a":  TypeMusic,
	// documents
	".epub": TypeDoc,
	".pdf":  TypeDoc,
	".azw":  TypeDoc,
}

// Classify returns the media type for a file path based on its extension.
// Unknown extensions yield TypeUnknown, never an error.
func Classify(path string) MediaType {
	ext := strings.ToLower(filepath.Ext(path))
	return mediaTypes[ext]
}
