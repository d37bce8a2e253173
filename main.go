package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/jxlsweep/cmd"
	"github.com/lepinkainen/jxlsweep/config"
	"github.com/lepinkainen/jxlsweep/types"
)

var Version = "dev"

type CLI struct {
	Verbose bool             `short:"v" help:"Enable per-file log lines"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Convert cmd.ConvertCmd `cmd:"" default:"withargs" help:"Convert JPEG files under a directory to JXL"`
	Check   cmd.CheckCmd   `cmd:"" help:"Report external tool availability and versions"`
	Dupes   cmd.DupesCmd   `cmd:"" help:"Find perceptually similar JPEG files"`
}

func main() {
	var cli CLI

	options := []kong.Option{
		kong.Name("jxlsweep"),
		kong.Description("Concurrent JPEG to JXL batch converter"),
		kong.Vars{"version": Version},
	}

	if cfg, err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring config file: %v\n", err)
	} else {
		options = append(options, kong.Resolvers(config.Resolver(cfg)))
	}

	ctx := kong.Parse(&cli, options...)
	err := ctx.Run(&types.AppContext{Version: Version, Verbose: cli.Verbose})
	ctx.FatalIfErrorf(err)
}
