// Package ingest orchestrates the import of media files: classify, hash,
// probe, dedup-check, insert, thumbnail capture and relocation.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ktaka/mediavault/internal/checksum"
	"github.com/ktaka/mediavault/internal/mediainfo"
	"github.com/ktaka/mediavault/internal/store"
	"github.com/ktaka/mediavault/internal/util"
	"golang.org/x/text/unicode/norm"
)

// ThumbnailName is the file name of the captured still frame inside a
// record's storage folder
const ThumbnailName = "capture.jpg"

// Importer runs the ingestion workflow against a shared store. Ingestions
// of distinct files may run concurrently; the dedup check-then-insert
// section is serialized per content digest.
type Importer struct {
	store     *store.Store
	inspector mediainfo.Inspector
	baseDir   string
	locks     keyedMutex
}

// New creates an Importer. baseDir is the library directory that receives
// one id<N> folder per imported record.
func New(st *store.Store, inspector mediainfo.Inspector, baseDir string) *Importer {
	return &Importer{
		store:     st,
		inspector: inspector,
		baseDir:   baseDir,
	}
}

// Ingest imports one video file. Non-video files, files with already-known
// content and files seen while the decoder toolchain is missing are
// rejected; failures past the insert step leave the record in place with
// whatever location facts were established.
func (im *Importer) Ingest(path string) Result {
	if mediainfo.Classify(path) != mediainfo.TypeMovie {
		util.DebugLog("skipping %s: not a video file", path)
		return Rejected(ReasonNotVideo)
	}

	if !im.inspector.Available() {
		util.WarnLog("media inspector unavailable, cannot import %s", path)
		return Rejected(ReasonInspectorUnavailable)
	}

	digest, err := checksum.Sum(path)
	if err != nil {
		return Failed(fmt.Errorf("failed to hash %s: %w", path, err))
	}

	info, status := im.inspector.Probe(path, digest)
	if status == mediainfo.StatusDegraded {
		util.WarnLog("probe degraded for %s, importing partial metadata", path)
	}
	cols, vals := candidateRecord(&info)

	// Check-then-insert is a critical section per digest; the unique
	// index on file_hash_data backstops it
	unlock := im.locks.lock(digest)
	defer unlock()

	exists, err := im.store.Exists("file_hash_data", store.Text(digest))
	if err != nil {
		return Failed(fmt.Errorf("dedup check failed for %s: %w", path, err))
	}
	if exists {
		util.InfoLog("skipping %s: content already imported", path)
		return Rejected(ReasonDuplicate)
	}

	id, err := im.store.Insert(cols, vals)
	if err != nil {
		if isDuplicate(err) {
			return Rejected(ReasonDuplicate)
		}
		return Failed(fmt.Errorf("failed to insert record for %s: %w", path, err))
	}

	saveDir := filepath.Join(im.baseDir, fmt.Sprintf("id%d", id))
	finalCols := []string{"file_name"}
	finalVals := []store.Value{store.Text(filepath.Base(path))}

	if err := util.EnsureDir(saveDir); err != nil {
		// The record stays valid without a storage folder
		util.ErrorLog("failed to allocate storage folder for record %d: %v", id, err)
	} else {
		capturePath := filepath.Join(saveDir, ThumbnailName)
		if im.inspector.CaptureFrame(path, capturePath, mediainfo.DefaultFrameOffset) {
			if _, err := util.CopyFileToDir(path, saveDir); err != nil {
				util.ErrorLog("failed to copy %s into library: %v", path, err)
			}
		}
		finalCols = append(finalCols, "save_dir_path")
		finalVals = append(finalVals, store.Text(saveDir))
	}

	if err := im.store.Update(id, finalCols, finalVals); err != nil {
		return Failed(fmt.Errorf("failed to finalize record %d: %w", id, err))
	}

	util.SuccessLog("imported %s as record %d", filepath.Base(path), id)
	return Imported(id)
}

// ImportTitle creates a record from a file's name alone, without probing
// or relocation. Music files with readable embedded tags contribute their
// title and artist.
func (im *Importer) ImportTitle(path string) Result {
	if _, err := os.Stat(path); err != nil {
		return Failed(fmt.Errorf("%w: %s", util.ErrNotFound, path))
	}

	base := filepath.Base(path)
	title := norm.NFC.String(base)
	author := ""

	mediaType := mediainfo.Classify(path)
	if mediaType == mediainfo.TypeMusic {
		if tags, err := mediainfo.ReadMusicTags(path); err == nil {
			if tags.Title != "" {
				title = norm.NFC.String(tags.Title)
			}
			author = norm.NFC.String(tags.Artist)
		} else {
			util.DebugLog("no readable tags in %s: %v", path, err)
		}
	}

	cols := []string{"title", "media_type", "file_name"}
	vals := []store.Value{store.Text(title), store.Text(string(mediaType)), store.Text(base)}
	if author != "" {
		cols = append(cols, "author")
		vals = append(vals, store.Text(author))
	}

	id, err := im.store.Insert(cols, vals)
	if err != nil {
		return Failed(fmt.Errorf("failed to insert record for %s: %w", path, err))
	}

	return Imported(id)
}

// candidateRecord maps probe facts onto store columns
func candidateRecord(info *mediainfo.Info) ([]string, []store.Value) {
	cols := []string{
		"title",
		"media_type",
		"video_codec_name",
		"video_width",
		"video_height",
		"audio_codec_name",
		"audio_sample_rate",
		"duration",
		"file_name",
		"file_hash_algorithm",
		"file_hash_data",
	}
	vals := []store.Value{
		store.Text(norm.NFC.String(info.Title)),
		store.Text(string(info.MediaType)),
		store.Text(info.VideoCodecName),
		store.Text(info.VideoWidth),
		store.Text(info.VideoHeight),
		store.Text(info.AudioCodecName),
		store.Text(info.AudioSampleRate),
		store.Text(info.Duration),
		store.Text(info.FileName),
		store.Text(info.FileHashAlgorithm),
		store.Text(info.FileHashData),
	}
	return cols, vals
}

func isDuplicate(err error) bool {
	return errors.Is(err, util.ErrDuplicate)
}

// keyedMutex serializes critical sections by string key
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	entry := k.locks[key]
	if entry == nil {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
