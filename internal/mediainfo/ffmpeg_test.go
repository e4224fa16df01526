package mediainfo

import (
	"encoding/json"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1.004000", "00:00:01"},
		{"61.5", "00:01:01"},
		{"3661.4", "01:01:01"},
		{"0", "00:00:00"},
		{"36000", "10:00:00"},
		{"N/A", ""},
		{"", ""},
		{"-3", ""},
	}

	for _, tc := range cases {
		if got := formatDuration(tc.raw); got != tc.want {
			t.Errorf("formatDuration(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

const sampleProbeJSON = `{
  "streams": [
    {
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080
    },
    {
      "codec_name": "aac",
      "codec_type": "audio",
      "sample_rate": "48000"
    }
  ],
  "format": {
    "duration": "5025.300000"
  }
}`

func TestFillFromProbe(t *testing.T) {
	var probed probeOutput
	if err := json.Unmarshal([]byte(sampleProbeJSON), &probed); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	info := Info{MediaType: TypeMovie}
	fillFromProbe(&info, &probed)

	if info.VideoCodecName != "h264" {
		t.Errorf("expected h264, got %s", info.VideoCodecName)
	}
	if info.VideoWidth != "1920" || info.VideoHeight != "1080" {
		t.Errorf("unexpected resolution: %sx%s", info.VideoWidth, info.VideoHeight)
	}
	if info.AudioCodecName != "aac" {
		t.Errorf("expected aac, got %s", info.AudioCodecName)
	}
	if info.AudioSampleRate != "48000" {
		t.Errorf("expected 48000, got %s", info.AudioSampleRate)
	}
	if info.Duration != "01:23:45" {
		t.Errorf("expected 01:23:45, got %s", info.Duration)
	}
}

func TestFillFromProbeVideoOnly(t *testing.T) {
	probed := probeOutput{
		Streams: []probeStream{
			{CodecName: "vp9", CodecType: "video", Width: 640, Height: 360},
		},
		Format: &probeFormat{Duration: "12.0"},
	}

	info := Info{MediaType: TypeMovie}
	fillFromProbe(&info, &probed)

	if info.VideoCodecName != "vp9" {
		t.Errorf("expected vp9, got %s", info.VideoCodecName)
	}
	if info.AudioCodecName != "" || info.AudioSampleRate != "" {
		t.Errorf("expected empty audio fields, got %s/%s", info.AudioCodecName, info.AudioSampleRate)
	}
	if info.Duration != "00:00:12" {
		t.Errorf("expected 00:00:12, got %s", info.Duration)
	}
}
