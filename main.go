package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"picfit/config"
	"picfit/fit"
	"picfit/logging"
	"picfit/parallel"
	"picfit/plan"

	"github.com/alecthomas/kong"
)

var cli struct {
	Workers  int             `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
	LogLevel string          `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogJSON  bool            `help:"Log as JSON" default:"false"`
	Config   kong.ConfigFlag `help:"YAML configuration file"`

	Fit  fit.CLICmd  `cmd:"" help:"Fit pictures onto a fixed size canvas, cropping or padding to keep the aspect ratio"`
	Plan plan.CLICmd `cmd:"" help:"Show how pictures would be fitted without writing anything"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("picfit"),
		kong.Description("Fit pictures to an exact resolution without distorting them."),
		kong.UsageOnError(),
		kong.Configuration(config.YAML, "~/.config/picfit.yaml", "picfit.yaml"),
	)

	kctx.FatalIfErrorf(logging.Setup(os.Stderr, cli.LogLevel, cli.LogJSON))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := parallel.Start(ctx, cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait, pool.Abort)
	pool.Wait()
	kctx.FatalIfErrorf(err)
}
