package mediainfo

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ktaka/mediavault/internal/checksum"
	"github.com/ktaka/mediavault/internal/util"
)

// DefaultFrameOffset is the timestamp of the frame captured as a thumbnail
const DefaultFrameOffset = "00:00:01"

// Info holds the facts gathered about one media file. Video fields are
// populated only for recognized video files, audio fields only when an
// audio stream is present.
type Info struct {
	Title             string
	MediaType         MediaType
	VideoCodecName    string
	VideoWidth        string
	VideoHeight       string
	AudioCodecName    string
	AudioSampleRate   string
	Duration          string
	FileName          string
	FileHashAlgorithm string
	FileHashData      string
}

// ProbeStatus distinguishes a full probe from the degraded outcomes the
// legacy behavior folded into empty fields.
type ProbeStatus int

const (
	// StatusOK means the probe gathered everything it was asked for
	StatusOK ProbeStatus = iota
	// StatusDegraded means the decoder failed mid-probe; Info carries
	// whatever was collected before the failure
	StatusDegraded
	// StatusUnavailable means the decoder toolchain is not installed
	StatusUnavailable
)

// Inspector is the external media-inspection contract consumed by the
// ingestion workflow. Implementations never raise decoder failures to the
// caller; they degrade.
type Inspector interface {
	Available() bool
	Probe(path, digest string) (Info, ProbeStatus)
	CaptureFrame(path, outputImagePath, timeOffset string) bool
}

// FFmpeg inspects media through the ffmpeg/ffprobe binaries on PATH.
type FFmpeg struct {
	// Timeout bounds each external invocation. Zero means no timeout,
	// matching the legacy blocking behavior.
	Timeout time.Duration
}

var _ Inspector = (*FFmpeg)(nil)

// Available reports whether the ffmpeg toolchain can be invoked. Execution
// failures mean unavailable, they are not errors.
func (f *FFmpeg) Available() bool {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return false
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return false
	}
	return f.run("ffmpeg", "-version") == nil
}

// Probe gathers codec, resolution and duration facts for a file. For
// non-video classifications the result carries identity fields only.
func (f *FFmpeg) Probe(path, digest string) (Info, ProbeStatus) {
	info := Info{
		Title:             filepath.Base(path),
		MediaType:         Classify(path),
		FileName:          filepath.Base(path),
		FileHashAlgorithm: checksum.DefaultAlgorithm,
		FileHashData:      digest,
	}

	if info.MediaType != TypeMovie {
		return info, StatusOK
	}

	if _, err := exec.LookPath("ffprobe"); err != nil {
		return info, StatusUnavailable
	}

	output, err := f.output("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		util.WarnLog("ffprobe failed for %s: %v", path, err)
		return info, StatusDegraded
	}

	var probed probeOutput
	if err := json.Unmarshal(output, &probed); err != nil {
		util.WarnLog("failed to parse ffprobe output for %s: %v", path, err)
		return info, StatusDegraded
	}

	fillFromProbe(&info, &probed)
	return info, StatusOK
}

// CaptureFrame extracts a single frame at the given offset and writes it
// as an image. Decoder failures are logged and reported as false.
func (f *FFmpeg) CaptureFrame(path, outputImagePath, timeOffset string) bool {
	if timeOffset == "" {
		timeOffset = DefaultFrameOffset
	}

	err := f.run("ffmpeg",
		"-v", "error",
		"-ss", timeOffset,
		"-i", path,
		"-frames:v", "1",
		"-y",
		outputImagePath,
	)
	if err != nil {
		util.ErrorLog("failed to capture frame from %s: %v", path, err)
		return false
	}
	return true
}

func (f *FFmpeg) command(name string, args ...string) (*exec.Cmd, context.CancelFunc) {
	if f.Timeout <= 0 {
		return exec.Command(name, args...), func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	return exec.CommandContext(ctx, name, args...), cancel
}

func (f *FFmpeg) run(name string, args ...string) error {
	cmd, cancel := f.command(name, args...)
	defer cancel()
	return cmd.Run()
}

func (f *FFmpeg) output(name string, args ...string) ([]byte, error) {
	cmd, cancel := f.command(name, args...)
	defer cancel()
	return cmd.Output()
}

// probeOutput mirrors the subset of ffprobe's JSON we consume
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  *probeFormat  `json:"format"`
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SampleRate string `json:"sample_rate"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

func fillFromProbe(info *Info, probed *probeOutput) {
	var video, audio *probeStream
	for i := range probed.Streams {
		s := &probed.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil {
				video = s
			}
		case "audio":
			if audio == nil {
				audio = s
			}
		}
	}

	duration := ""
	if probed.Format != nil {
		duration = formatDuration(probed.Format.Duration)
	}

	if video != nil {
		info.VideoCodecName = video.CodecName
		info.VideoWidth = strconv.Itoa(video.Width)
		info.VideoHeight = strconv.Itoa(video.Height)
		info.Duration = duration
	}

	if audio != nil {
		info.AudioCodecName = audio.CodecName
		info.AudioSampleRate = audio.SampleRate
		info.Duration = duration
	}
}

// formatDuration converts ffprobe's fractional-seconds duration into
// HH:MM:SS. Unparseable input yields an empty string.
func formatDuration(raw string) string {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds < 0 {
		return ""
	}

	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
