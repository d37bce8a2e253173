package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lepinkainen/jxlsweep/jxl"
	"github.com/lepinkainen/jxlsweep/logging"
	"github.com/lepinkainen/jxlsweep/types"
	"github.com/lepinkainen/jxlsweep/ui"
	"github.com/lepinkainen/jxlsweep/utils"
)

type ConvertCmd struct {
	Directory       string  `arg:"" name:"directory" help:"Directory containing JPEG files" type:"existingdir"`
	InPlace         bool    `short:"i" help:"Replace originals after verified conversion"`
	SkipHealthCheck bool    `help:"Skip JXL health checks (all outputs treated as valid)"`
	NoRecursive     bool    `help:"Do not descend into subdirectories"`
	DryRun          bool    `help:"List matching files without converting"`
	Jobs            int     `short:"j" help:"Number of parallel workers (1-32)" default:"4"`
	Distance        float64 `short:"d" help:"JXL distance (0=lossless, 1=high quality)" default:"1.0"`
	Effort          int     `short:"e" help:"JXL effort (1-9)" default:"7"`
	Lossless        bool    `help:"Lossless JPEG transcode (forces distance 0)"`
	Resume          bool    `help:"Skip files already recorded in the journal"`
	LogFile         string  `help:"Write JSON diagnostics to this file" type:"path"`
}

func (cmd *ConvertCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	verbose := false
	if appCtx != nil {
		version = appCtx.Version
		verbose = appCtx.Verbose
	}

	logger, err := logging.New(cmd.LogFile, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	workers := jxl.ClampWorkers(cmd.Jobs)
	if workers != cmd.Jobs {
		logger.Warn("worker count clamped", zap.Int("requested", cmd.Jobs), zap.Int("using", workers))
	}

	cfg := &jxl.Config{
		Dir:             cmd.Directory,
		InPlace:         cmd.InPlace,
		SkipHealthCheck: cmd.SkipHealthCheck,
		Recursive:       !cmd.NoRecursive,
		Verbose:         verbose,
		DryRun:          cmd.DryRun,
		Workers:         workers,
		Distance:        cmd.Distance,
		Effort:          cmd.Effort,
		Lossless:        cmd.Lossless,
		Resume:          cmd.Resume,
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("jxlsweep %s", version)))

	// A destructive run on a system root or $HOME is never intended.
	if cfg.InPlace && jxl.IsProtected(cfg.Dir) {
		return fmt.Errorf("refusing in-place conversion of protected directory: %s", cmd.Directory)
	}

	if err := utils.ValidateConversionDependencies(); err != nil {
		return err
	}

	tools := jxl.NewCjxlTools(cfg, logger)
	if !cfg.SkipHealthCheck && !tools.HasDecoder() {
		fmt.Printf("%s\n", ui.WarnStyle.Render("⚠️  djxl not found, health check limited to signature validation"))
	}

	files, truncated, err := jxl.Collect(cfg.Dir, cfg.Recursive, logger)
	if err != nil {
		return err
	}
	if truncated {
		fmt.Printf("%s\n", ui.WarnStyle.Render(fmt.Sprintf("⚠️  Maximum file limit reached (%d), remaining files ignored", jxl.MaxFiles)))
	}

	if len(files) == 0 {
		fmt.Println("🔍 No JPEG files found.")
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("📷 Found %d JPEG files", len(files))))

	if cmd.DryRun {
		return cmd.runDryRun(files)
	}

	var journal *jxl.Journal
	if journal, err = jxl.OpenJournal(cfg.Dir); err != nil {
		fmt.Printf("%s\n", ui.WarnStyle.Render(fmt.Sprintf("⚠️  Journal unavailable: %v", err)))
		logger.Warn("journal unavailable", zap.Error(err))
		journal = nil
	} else {
		defer func() { _ = journal.Close() }()
		if cfg.Resume {
			fmt.Printf("📒 Resume: %d conversions recorded from earlier runs\n", journal.Count())
		}
	}

	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("🚀 Converting %d files with %d workers:", len(files), workers)))
	fmt.Printf("⚙️  Settings: distance=%.1f, effort=%d, in-place=%t, lossless=%t\n",
		cfg.Distance, cfg.Effort, cfg.InPlace, cfg.Lossless)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Printf("\n%s\n", ui.WarnStyle.Render("⚠️  Interrupted! Finishing current file..."))
		cancel()
	}()

	stats := jxl.NewStats(len(files))
	bar := ui.NewConversionBar(len(files))

	pool := &jxl.Pool{
		Cfg:      cfg,
		Pipeline: jxl.NewPipeline(cfg, tools, journal, logger),
		Stats:    stats,
		Log:      logger,
		OnResult: func(res jxl.Result) {
			cmd.handleResult(res, verbose)
		},
		OnProgress: func(processed, _ int) {
			_ = bar.Set(processed)
		},
	}

	pool.Run(ctx, files)

	snap := stats.Snapshot()
	_ = bar.Set(snap.Processed)
	fmt.Print("\n")

	cmd.printSummary(snap)

	if snap.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", snap.Failed, snap.Total)
	}
	return nil
}

// runDryRun lists what a real run would convert, without touching anything
func (cmd *ConvertCmd) runDryRun(files []jxl.FileEntry) error {
	fmt.Println(ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))

	var totalSize int64
	for _, entry := range files {
		fmt.Printf("   📄 %s (%.1f MB)\n", entry.Path, float64(entry.Size)/(1024*1024))
		totalSize += entry.Size
	}

	fmt.Printf("\n📈 Would convert %d files (%.1f MB total)\n", len(files), float64(totalSize)/(1024*1024))
	return nil
}

// handleResult prints the per-file line for one pipeline result.
// Failures always print; success and skip lines only in verbose mode.
func (cmd *ConvertCmd) handleResult(res jxl.Result, verbose bool) {
	switch res.Outcome {
	case jxl.OutcomeSuccess:
		if verbose {
			line := fmt.Sprintf("✅ Done: %s", res.OutputPath)
			if res.Entry.Size > 0 && res.OutputSize > 0 {
				reduction := (1 - float64(res.OutputSize)/float64(res.Entry.Size)) * 100
				line = fmt.Sprintf("✅ Done: %s (%.1f%% smaller)", res.OutputPath, reduction)
			}
			fmt.Printf("\n%s\n", ui.SuccessStyle.Render(line))
		}
	case jxl.OutcomeSkipped:
		if verbose {
			fmt.Printf("\n⏭️  Skipped: %s (%s)\n", res.Entry.Path, res.Message)
		}
	default:
		fmt.Printf("\n%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %s", res.Message, res.Entry.Path)))
	}
}

// printSummary displays final statistics
func (cmd *ConvertCmd) printSummary(snap jxl.Snapshot) {
	elapsed := snap.Elapsed()

	fmt.Printf("\n%s\n", ui.HeaderStyle.Render("📊 Conversion Summary"))
	fmt.Printf("   Total files: %d\n", snap.Total)
	fmt.Printf("   %s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Success: %d", snap.Success)))
	fmt.Printf("   %s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Failed: %d", snap.Failed)))
	fmt.Printf("   ⏭️  Skipped: %d\n", snap.Skipped)
	fmt.Printf("   ⏱️  Time: %dm %ds\n", int(elapsed.Minutes()), int(elapsed.Seconds())%60)

	if snap.BytesInput > 0 {
		inputMB := float64(snap.BytesInput) / (1024 * 1024)
		outputMB := float64(snap.BytesOutput) / (1024 * 1024)
		reduction := (1 - float64(snap.BytesOutput)/float64(snap.BytesInput)) * 100
		fmt.Printf("   💾 Input: %.2f MB\n", inputMB)
		fmt.Printf("   💾 Output: %.2f MB\n", outputMB)
		fmt.Printf("   📉 Reduction: %.1f%%\n", reduction)
	}

	if !cmd.SkipHealthCheck {
		fmt.Printf("\n🏥 Health report:\n")
		fmt.Printf("   ✅ Passed: %d\n", snap.HealthPassed)
		fmt.Printf("   ❌ Failed: %d\n", snap.HealthFailed)
		if total := snap.HealthPassed + snap.HealthFailed; total > 0 {
			fmt.Printf("   📊 Rate: %d%%\n", snap.HealthPassed*100/total)
		}
	}
}
