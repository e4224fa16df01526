package ingest

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ktaka/mediavault/internal/mediainfo"
	"github.com/ktaka/mediavault/internal/store"
)

// fakeInspector satisfies the inspection contract without ffmpeg
type fakeInspector struct {
	available   bool
	captureOK   bool
	probeStatus mediainfo.ProbeStatus
}

func (f *fakeInspector) Available() bool {
	return f.available
}

func (f *fakeInspector) Probe(path, digest string) (mediainfo.Info, mediainfo.ProbeStatus) {
	info := mediainfo.Info{
		Title:             filepath.Base(path),
		MediaType:         mediainfo.Classify(path),
		FileName:          filepath.Base(path),
		FileHashAlgorithm: "sha256",
		FileHashData:      digest,
	}
	if info.MediaType == mediainfo.TypeMovie && f.probeStatus == mediainfo.StatusOK {
		info.VideoCodecName = "h264"
		info.VideoWidth = "1280"
		info.VideoHeight = "720"
		info.AudioCodecName = "aac"
		info.AudioSampleRate = "44100"
		info.Duration = "00:02:05"
	}
	return info, f.probeStatus
}

func (f *fakeInspector) CaptureFrame(path, outputImagePath, timeOffset string) bool {
	if !f.captureOK {
		return false
	}
	return os.WriteFile(outputImagePath, []byte("jpeg"), 0o644) == nil
}

func newTestImporter(t *testing.T, inspector mediainfo.Inspector) (*Importer, *store.Store, string) {
	t.Helper()
	baseDir := t.TempDir()
	st, err := store.Open(filepath.Join(baseDir, "metadata.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, inspector, baseDir), st, baseDir
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func recordCount(t *testing.T, st *store.Store) int {
	t.Helper()
	all, err := st.GetAll()
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	return len(all)
}

func TestIngestSuccess(t *testing.T) {
	inspector := &fakeInspector{available: true, captureOK: true}
	im, st, baseDir := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "holiday.mp4", []byte("fake video bytes"))

	res := im.Ingest(src)
	if res.Status != StatusImported {
		t.Fatalf("expected import, got %+v", res)
	}
	if res.RecordID() <= 0 {
		t.Fatalf("expected positive record id, got %d", res.RecordID())
	}

	rec, err := st.Get(res.ID)
	if err != nil || rec == nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if rec["media_type"] != "movie" {
		t.Errorf("expected movie, got %q", rec["media_type"])
	}
	if rec["video_codec_name"] != "h264" || rec["duration"] != "00:02:05" {
		t.Errorf("probe facts missing: %v", rec)
	}
	if rec["file_hash_algorithm"] != "sha256" || rec["file_hash_data"] == "" {
		t.Errorf("hash facts missing: %v", rec)
	}
	if rec["file_name"] != "holiday.mp4" {
		t.Errorf("expected original file name, got %q", rec["file_name"])
	}

	saveDir := rec["save_dir_path"]
	if saveDir == "" {
		t.Fatal("expected save_dir_path to be set")
	}
	if saveDir != filepath.Join(baseDir, "id1") {
		t.Errorf("unexpected storage folder: %s", saveDir)
	}
	if _, err := os.Stat(filepath.Join(saveDir, ThumbnailName)); err != nil {
		t.Errorf("expected thumbnail in storage folder: %v", err)
	}
	if _, err := os.Stat(filepath.Join(saveDir, "holiday.mp4")); err != nil {
		t.Errorf("expected source copied into storage folder: %v", err)
	}
}

func TestIngestDuplicate(t *testing.T) {
	inspector := &fakeInspector{available: true, captureOK: true}
	im, st, _ := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "holiday.mp4", []byte("fake video bytes"))

	if res := im.Ingest(src); res.Status != StatusImported {
		t.Fatalf("first ingest failed: %+v", res)
	}

	res := im.Ingest(src)
	if res.Status != StatusRejected || res.Reason != ReasonDuplicate {
		t.Fatalf("expected duplicate rejection, got %+v", res)
	}
	if res.RecordID() != 0 {
		t.Errorf("expected legacy id 0 for rejection, got %d", res.RecordID())
	}
	if got := recordCount(t, st); got != 1 {
		t.Errorf("expected single record, got %d", got)
	}
}

func TestIngestRejectsNonVideo(t *testing.T) {
	inspector := &fakeInspector{available: true, captureOK: true}
	im, st, _ := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "photo.jpg", []byte("jpeg"))

	res := im.Ingest(src)
	if res.Status != StatusRejected || res.Reason != ReasonNotVideo {
		t.Fatalf("expected not-video rejection, got %+v", res)
	}
	if got := recordCount(t, st); got != 0 {
		t.Errorf("expected no records, got %d", got)
	}
}

func TestIngestRejectsWhenInspectorUnavailable(t *testing.T) {
	inspector := &fakeInspector{available: false}
	im, st, _ := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "clip.mkv", []byte("bytes"))

	res := im.Ingest(src)
	if res.Status != StatusRejected || res.Reason != ReasonInspectorUnavailable {
		t.Fatalf("expected unavailability rejection, got %+v", res)
	}
	if got := recordCount(t, st); got != 0 {
		t.Errorf("expected no records, got %d", got)
	}
}

func TestIngestMissingFileFails(t *testing.T) {
	inspector := &fakeInspector{available: true}
	im, st, _ := newTestImporter(t, inspector)

	res := im.Ingest(filepath.Join(t.TempDir(), "ghost.mp4"))
	if res.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", res)
	}
	if got := recordCount(t, st); got != 0 {
		t.Errorf("expected no records, got %d", got)
	}
}

func TestIngestCaptureFailureIsNonFatal(t *testing.T) {
	inspector := &fakeInspector{available: true, captureOK: false}
	im, st, _ := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "broken.mp4", []byte("bytes"))

	res := im.Ingest(src)
	if res.Status != StatusImported {
		t.Fatalf("expected import despite capture failure, got %+v", res)
	}

	rec, err := st.Get(res.ID)
	if err != nil || rec == nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if rec["save_dir_path"] == "" {
		t.Error("expected storage folder to be recorded")
	}
	// The source is only relocated after a successful capture
	if _, err := os.Stat(filepath.Join(rec["save_dir_path"], "broken.mp4")); !os.IsNotExist(err) {
		t.Errorf("expected source not copied, stat err: %v", err)
	}
}

func TestIngestDegradedProbeImportsPartialRecord(t *testing.T) {
	inspector := &fakeInspector{available: true, captureOK: true, probeStatus: mediainfo.StatusDegraded}
	im, st, _ := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "odd.webm", []byte("bytes"))

	res := im.Ingest(src)
	if res.Status != StatusImported {
		t.Fatalf("expected import, got %+v", res)
	}

	rec, err := st.Get(res.ID)
	if err != nil || rec == nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if rec["video_codec_name"] != "" {
		t.Errorf("expected empty codec for degraded probe, got %q", rec["video_codec_name"])
	}
	if rec["file_hash_data"] == "" {
		t.Error("expected hash recorded even for degraded probe")
	}
}

func TestConcurrentIngestOfIdenticalContent(t *testing.T) {
	inspector := &fakeInspector{available: true, captureOK: true}
	im, st, _ := newTestImporter(t, inspector)

	dir := t.TempDir()
	content := []byte("identical video bytes")
	a := writeFile(t, dir, "a.mp4", content)
	b := writeFile(t, dir, "b.mp4", content)

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i, path := range []string{a, b} {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = im.Ingest(path)
		}(i, path)
	}
	wg.Wait()

	imported, rejected := 0, 0
	for _, res := range results {
		switch res.Status {
		case StatusImported:
			imported++
		case StatusRejected:
			if res.Reason != ReasonDuplicate {
				t.Errorf("unexpected rejection reason: %v", res.Reason)
			}
			rejected++
		default:
			t.Errorf("unexpected result: %+v", res)
		}
	}
	if imported != 1 || rejected != 1 {
		t.Errorf("expected exactly one import and one duplicate, got %d/%d", imported, rejected)
	}
	if got := recordCount(t, st); got != 1 {
		t.Errorf("expected single record, got %d", got)
	}
}

func TestImportTitle(t *testing.T) {
	inspector := &fakeInspector{available: true}
	im, st, _ := newTestImporter(t, inspector)

	src := writeFile(t, t.TempDir(), "notes.pdf", []byte("pdf bytes"))

	res := im.ImportTitle(src)
	if res.Status != StatusImported {
		t.Fatalf("expected import, got %+v", res)
	}

	rec, err := st.Get(res.ID)
	if err != nil || rec == nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if rec["title"] != "notes.pdf" {
		t.Errorf("expected file name as title, got %q", rec["title"])
	}
	if rec["media_type"] != "doc" {
		t.Errorf("expected doc classification, got %q", rec["media_type"])
	}
}

func TestImportTitleMusicWithoutTagsFallsBack(t *testing.T) {
	inspector := &fakeInspector{available: true}
	im, st, _ := newTestImporter(t, inspector)

	// Not a real mp3, so tag reading fails and the base name wins
	src := writeFile(t, t.TempDir(), "track01.mp3", []byte("not an mp3"))

	res := im.ImportTitle(src)
	if res.Status != StatusImported {
		t.Fatalf("expected import, got %+v", res)
	}

	rec, err := st.Get(res.ID)
	if err != nil || rec == nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if rec["title"] != "track01.mp3" {
		t.Errorf("expected fallback title, got %q", rec["title"])
	}
	if rec["author"] != "" {
		t.Errorf("expected no author, got %q", rec["author"])
	}
}

func TestImportTitleMissingFile(t *testing.T) {
	inspector := &fakeInspector{available: true}
	im, _, _ := newTestImporter(t, inspector)

	res := im.ImportTitle(filepath.Join(t.TempDir(), "ghost.pdf"))
	if res.Status != StatusFailed {
		t.Fatalf("expected failure, got %+v", res)
	}
	if res.RecordID() != 0 {
		t.Errorf("expected legacy id 0, got %d", res.RecordID())
	}
}
