package mediainfo

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want MediaType
	}{
		{"movie.mp4", TypeMovie},
		{"movie.avi", TypeMovie},
		{"movie.mov", TypeMovie},
		{"movie.wmv", TypeMovie},
		{"movie.flv", TypeMovie},
		{"movie.webm", TypeMovie},
		{"movie.mpg", TypeMovie},
		{"movie.mkv", TypeMovie},
		{"movie.asf", TypeMovie},
		{"movie.vob", TypeMovie},
		{"movie.ts", TypeMovie},
		{"movie.m2ts", TypeMovie},
		{"song.wave", TypeMusic},
		{"song.alf", TypeMusic},
		{"song.mp3", TypeMusic},
		{"song.aac", TypeMusic},
		{"song.m4a", TypeMusic},
		{"book.epub", TypeDoc},
		{"book.pdf", TypeDoc},
		{"book.azw", TypeDoc},
		{"photo.jpg", TypeUnknown},
		{"archive.zip", TypeUnknown},
		{"noext", TypeUnknown},
		{"/some/dir/clip.MP4", TypeMovie}, // extension match is case-insensitive
		{"Track.Mp3", TypeMusic},
	}

	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
