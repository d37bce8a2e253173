package cmd

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/corona10/goimagehash"
	"go.uber.org/zap"

	"github.com/lepinkainen/jxlsweep/jxl"
	"github.com/lepinkainen/jxlsweep/types"
	"github.com/lepinkainen/jxlsweep/ui"
	"github.com/lepinkainen/jxlsweep/utils"
)

type DupesCmd struct {
	Directory   string `arg:"" name:"directory" help:"Directory to scan for similar JPEG files" type:"existingdir"`
	Threshold   int    `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
	NoRecursive bool   `help:"Do not descend into subdirectories"`
	Workers     int    `help:"Number of parallel hash workers" default:"0"`
}

func (cmd *DupesCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("jxlsweep %s - duplicate scan", version)))

	// Set default worker count based on drive type
	workers := cmd.Workers
	if workers <= 0 {
		if utils.IsNetworkPath(cmd.Directory) {
			workers = 1
			fmt.Printf("%s\n", ui.WarnStyle.Render("⚠️  Network path detected, using 1 worker"))
		} else {
			workers = runtime.NumCPU()
		}
	}

	files, _, err := jxl.Collect(cmd.Directory, !cmd.NoRecursive, zap.NewNop())
	if err != nil {
		return err
	}
	if len(files) < 2 {
		fmt.Println("🔍 Need at least 2 JPEG files to compare.")
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Calculating perceptual hashes for %d files with %d workers...", len(files), workers)))

	type fileHash struct {
		path string
		hash *goimagehash.ImageHash
	}

	jobs := make(chan jxl.FileEntry, len(files))
	results := make(chan fileHash, len(files))
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				hash, err := jxl.PerceptualHash(entry.Path)
				if err != nil {
					fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Error hashing %s: %v", entry.Path, err)))
					continue
				}
				results <- fileHash{path: entry.Path, hash: hash}
			}
		}()
	}

	// Send jobs
	for _, entry := range files {
		jobs <- entry
	}
	close(jobs)

	// Wait for completion
	wg.Wait()
	close(results)

	hashes := make([]fileHash, 0, len(files))
	for fh := range results {
		hashes = append(hashes, fh)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i].path < hashes[j].path })

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Comparing %d files for similarity (threshold: %d):", len(hashes), cmd.Threshold)))

	found := false
	for i := 0; i < len(hashes); i++ {
		for j := i + 1; j < len(hashes); j++ {
			distance, err := hashes[i].hash.Distance(hashes[j].hash)
			if err != nil {
				fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Error comparing %s and %s: %v", hashes[i].path, hashes[j].path, err)))
				continue
			}

			if distance <= cmd.Threshold {
				fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n", distance, hashes[i].path, hashes[j].path)
				found = true
			}
		}
	}

	if !found {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar files found within threshold"))
	}

	return nil
}
