package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/ktaka/mediavault/internal/ingest"
	"github.com/ktaka/mediavault/internal/mediainfo"
	"github.com/ktaka/mediavault/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importTitleOnly bool

var importCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Import media files into the library",
	Long: `Import one or more media files (or directories of them) into the library.

Each video file is hashed, probed with ffprobe, deduplicated by content
hash, given a thumbnail frame and copied into its own folder under the
library directory. Non-video files are skipped unless --title-only is set,
which records a title-only entry without probing or relocation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importTitleOnly, "title-only", false, "record titles only, no probing or relocation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	setupLogging()
	cfg := config.Load()

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		util.WarnLog("No importable files found")
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	importer := newImporter(cfg, st)

	// Progress bar only when attached to a terminal
	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() && len(files) > 1 {
		width := util.GetTerminalWidth() / 2
		if width > 60 {
			width = 60
		}
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Importing"),
			progressbar.OptionSetWidth(width),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	start := time.Now()
	imported, rejected, failed := 0, 0, 0

	for _, path := range files {
		var res ingest.Result
		if importTitleOnly {
			res = importer.ImportTitle(path)
		} else {
			res = importer.Ingest(path)
		}

		switch res.Status {
		case ingest.StatusImported:
			imported++
		case ingest.StatusRejected:
			util.InfoLog("Skipped %s: %s", path, res.Reason)
			rejected++
		case ingest.StatusFailed:
			util.ErrorLog("Failed %s: %v", path, res.Err)
			failed++
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	util.SuccessLog("Import complete in %v: %d imported, %d skipped, %d failed",
		time.Since(start).Round(time.Millisecond), imported, rejected, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

// collectFiles expands the argument list: directories are walked for
// video files, plain files are taken as given.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				util.WarnLog("Error accessing %s: %v", path, err)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if importTitleOnly || mediainfo.Classify(path) == mediainfo.TypeMovie {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}
	return files, nil
}
