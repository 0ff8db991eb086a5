package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/easytuber/easytuber/internal/config"
	"github.com/easytuber/easytuber/internal/download"
	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/model"
	"github.com/easytuber/easytuber/internal/platform"
	"github.com/easytuber/easytuber/internal/update"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	appRepoOwner = "easytuber"
	appRepoName  = "easytuber"
)

func main() {
	urlFlag := flag.String("url", "", "media or playlist URL (required)")
	searchOnly := flag.Bool("search", false, "fetch metadata and list detected formats, do not download")
	outDir := flag.String("out", "", "destination directory (default: from settings)")
	media := flag.String("media", "video", "media kind: video or audio")
	container := flag.String("format", "", "target container (default: from settings)")
	quality := flag.Int("quality", 0, "maximum video height in pixels (default: from settings)")
	playlist := flag.Bool("playlist", false, "treat the URL as a playlist")
	items := flag.String("items", "", "playlist item selector, e.g. 1-5,8")
	reverse := flag.Bool("reverse", false, "download playlist in reverse order")
	random := flag.Bool("random", false, "download playlist in random order")
	formatID := flag.String("format-id", "", "advanced: download this exact source format id")
	ffmpegPath := flag.String("ffmpeg", "", "path to ffmpeg (default: from settings or $PATH)")
	configPath := flag.String("config", defaultConfigPath(), "path to the settings file")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *urlFlag == "" {
		log.Fatal("Missing required flag: -url")
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	go checkForUpdates(settings, *configPath)

	svc := download.NewService(engine.NewYTDLP())

	if *searchOnly {
		runSearch(svc, *urlFlag)
		return
	}

	req := buildRequest(settings, *urlFlag, *outDir, *media, *container, *quality,
		*playlist, *items, *reverse, *random, *formatID, *ffmpegPath)

	if *formatID != "" {
		// Advanced requests need the format table from a preceding search.
		waitForSearch(svc, req.URL)
	}

	if err := platform.CreateDirectoryIfNotExists(req.DestinationPath); err != nil {
		log.Fatalf("cannot create destination directory: %v", err)
	}
	if !platform.IsWritableDir(req.DestinationPath) {
		log.Fatalf("destination directory is not writable: %s", req.DestinationPath)
	}

	if _, err := svc.Start(req); err != nil {
		log.Fatalf("cannot start download: %v", err)
	}

	cancelOnInterrupt(svc)
	final := renderProgress(svc)
	applySideEffects(settings, req, final)

	if final.Phase == model.PhaseFailed {
		fmt.Fprintf(os.Stderr, "Error: %s\n", final.Error)
		os.Exit(1)
	}
}

// buildRequest assembles the immutable download request from flags and
// settings
func buildRequest(settings *config.Settings, url, outDir, media, container string, quality int,
	playlist bool, items string, reverse, random bool, formatID, ffmpegPath string) model.DownloadRequest {

	if outDir == "" {
		outDir = settings.DownloadDir
	}
	if container == "" {
		container = settings.DefaultContainer
	}
	if quality == 0 {
		quality = settings.DefaultQuality
	}

	req := model.DownloadRequest{
		URL:             url,
		Mode:            model.ModeBasic,
		DestinationPath: outDir,
		TranscoderPath:  platform.FindFFmpeg(firstNonEmpty(ffmpegPath, settings.FFmpegPath)),
		MediaKind:       model.MediaKind(media),
		ContainerFormat: container,
		QualityCeiling:  quality,
		Playlist: model.PlaylistOptions{
			Enabled:      playlist,
			ItemSelector: items,
			Reverse:      reverse,
			Random:       random,
		},
	}

	if formatID != "" {
		req.Mode = model.ModeAdvanced
		req.SourceFormatID = formatID
	}

	return req
}

// runSearch fetches metadata and prints the detected format presets
func runSearch(svc *download.Service, url string) {
	done := make(chan struct{})
	svc.Search(context.Background(), url, func(res *model.SearchResult, err error) {
		defer close(done)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			return
		}
		fmt.Printf("%s — %s (%ds, %d views)\n",
			res.Title, res.UploaderName, res.DurationSeconds, res.ViewCount)
		for _, p := range res.Presets {
			fmt.Printf("  [%s] %s\n", p.ID, p.Description())
		}
		if res.BestAudioID != "" {
			fmt.Printf("  default audio: %s\n", res.BestAudioID)
		}
	})
	<-done
}

// waitForSearch runs a blocking metadata pass so advanced requests have a
// format table to score against
func waitForSearch(svc *download.Service, url string) {
	done := make(chan error, 1)
	svc.Search(context.Background(), url, func(_ *model.SearchResult, err error) {
		done <- err
	})
	if err := <-done; err != nil {
		log.Fatalf("metadata extraction failed: %v", err)
	}
}

// renderProgress consumes the state stream until the job reaches a
// terminal phase and returns the final snapshot
func renderProgress(svc *download.Service) model.JobState {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetDescription("Starting..."),
	)

	for st := range svc.Updates() {
		if st.HasPercent() {
			_ = bar.Set(int(st.Percent * 100))
		}
		if st.Message != "" {
			bar.Describe(st.Message)
		}
		if st.Phase.IsTerminal() {
			fmt.Println()
			return st
		}
	}
	return model.JobState{Phase: model.PhaseFailed, Error: "state stream closed unexpectedly"}
}

// applySideEffects runs the user's completion side effects. Cancellation
// is informational, never styled as an error.
func applySideEffects(settings *config.Settings, req model.DownloadRequest, final model.JobState) {
	switch final.Phase {
	case model.PhaseFinished:
		if settings.NotifyOnSuccess {
			fmt.Println("Download completed successfully.")
		}
		if settings.OpenFolderOnSuccess {
			if err := platform.OpenFolder(req.DestinationPath); err != nil {
				slog.Warn("could not open destination folder", "error", err)
			}
		}
	case model.PhaseCancelled:
		fmt.Println("Download cancelled.")
	}
}

// cancelOnInterrupt wires Ctrl-C to cooperative cancellation
func cancelOnInterrupt(svc *download.Service) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Println("\nCancelling...")
		svc.Cancel()
	}()
}

// checkForUpdates queries GitHub at most once per interval and prints a
// notice when a newer release exists. Failures only get logged.
func checkForUpdates(settings *config.Settings, configPath string) {
	checker := update.NewChecker(appRepoOwner, appRepoName, version)
	if !checker.ShouldCheck(settings.LastUpdateCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), update.DefaultHTTPTimeout)
	defer cancel()

	release, err := checker.Check(ctx)
	if err != nil {
		slog.Debug("update check failed", "error", err)
		return
	}

	settings.LastUpdateCheck = time.Now()
	if err := settings.Save(configPath); err != nil {
		slog.Debug("could not persist update-check time", "error", err)
	}

	if release != nil {
		fmt.Printf("A new version is available: %s (%s)\n", release.Version, release.URL)
	}
}

// defaultConfigPath places the settings file under the user config dir
func defaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "easytuber.yaml"
	}
	return filepath.Join(base, "easytuber", "settings.yaml")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
