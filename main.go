package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/game"
	"github.com/iburimskiy/loopvis/internal/logx"
	"github.com/iburimskiy/loopvis/internal/suggest"
)

// assignments collects repeated -set key=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(s string) error {
	if _, _, err := config.SplitAssignment(s); err != nil {
		return err
	}
	*a = append(*a, s)
	return nil
}

var (
	flagTool      = flag.String("tool", "stellar", "generator: stellar or gradient")
	flagMode      = flag.String("mode", "motion", "still or motion")
	flagPreset    = flag.String("preset", "", "stellar preset: "+strings.Join(config.StellarPresetNames(), ", "))
	flagOut       = flag.String("out", ".", "directory for stills and recordings")
	flagFormats   = flag.String("formats", strings.Join(capture.DefaultPreference, ","), "recording formats in order of preference")
	flagSyncTrack = flag.Bool("synctrack", false, "write a WAV click track next to loop recordings")
	flagMute      = flag.Bool("mute", false, "no recording cues")
	flagSeed      = flag.Uint64("seed", 0, "particle seed, 0 for random")
	flagModel     = flag.String("model", suggest.DefaultModel, "suggestion model")
	flagExport    = flag.String("export", "", "render still or loop without a window, then exit")
	flagQuiet     = flag.Bool("quiet", false, "no log output")
	flagPProf     = flag.Bool("pprof", false, "enable pprof")
	flagSet       assignments
)

func init() {
	flag.Var(&flagSet, "set", "config field as key=value, repeatable")
}

func buildOptions() (game.Options, error) {
	opts := game.Options{
		Tool:      strings.ToLower(*flagTool),
		Stellar:   config.DefaultStellar(),
		Gradient:  config.DefaultGradient(0),
		Seed:      *flagSeed,
		OutDir:    *flagOut,
		Formats:   capture.ParsePreference(*flagFormats),
		SyncTrack: *flagSyncTrack,
		Mute:      *flagMute,
	}
	if opts.Tool != "stellar" && opts.Tool != "gradient" {
		return opts, errors.Errorf("unknown tool %q", *flagTool)
	}
	if *flagPreset != "" {
		c, ok := config.StellarPreset(*flagPreset)
		if !ok {
			return opts, errors.Errorf("unknown preset %q", *flagPreset)
		}
		opts.Stellar = c
	}
	mode, ok := config.ParseMode(*flagMode)
	if !ok {
		return opts, errors.Errorf("unknown mode %q", *flagMode)
	}
	opts.Stellar.Mode = mode
	opts.Gradient.Mode = mode

	for _, s := range flagSet {
		key, value, _ := config.SplitAssignment(s)
		var err error
		if opts.Tool == "gradient" {
			err = opts.Gradient.Set(key, value)
		} else {
			err = opts.Stellar.Set(key, value)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func attachSuggestions(ctx context.Context, opts *game.Options) {
	g, err := suggest.NewGemini(ctx, suggest.APIKey(), *flagModel)
	if err != nil {
		logx.Info.Printf("suggestions off: %v", err)
		return
	}
	opts.StellarService = g
	opts.GradientService = g
}

func main() {
	flag.Parse()
	if *flagQuiet {
		logx.Quiet()
	}

	if *flagPProf {
		go func() {
			logx.Info.Print("initializing pprof")
			logx.Info.Print(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	opts, err := buildOptions()
	if err != nil {
		logx.Error.Println(err)
		flag.Usage()
		os.Exit(2)
	}

	if *flagExport != "" {
		still := *flagExport == "still"
		if !still && *flagExport != "loop" {
			logx.Error.Printf("-export must be still or loop, got %q", *flagExport)
			os.Exit(2)
		}
		path, err := game.Export(context.Background(), opts, still)
		if err != nil {
			logx.Error.Println(err)
			os.Exit(1)
		}
		logx.Info.Printf("wrote %s", path)
		return
	}

	attachSuggestions(context.Background(), &opts)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("loopvis - Tab: switch tool, M/L: record, S: still, Esc/Q: quit")

	app := game.New(opts)
	defer app.Close()
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
