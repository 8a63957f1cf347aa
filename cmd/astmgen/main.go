// astmgen compiles an instrument profile descriptor into typed Go
// bindings.
//
// Usage:
//
//	astmgen -profile cobalt.yaml -target ./profiles/cobalt
//	astmgen -profile cobalt.yaml -features profile/snapshot,enum/values -watch
package main

import (
	"context"
	"flag"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/labwire/astm/compiler/gen"
	"github.com/labwire/astm/compiler/load"
)

func main() {
	var (
		profile  = flag.String("profile", "", "path of the YAML profile descriptor")
		target   = flag.String("target", "", "output directory (defaults to the package base name)")
		pkg      = flag.String("pkg", "", "import path of the generated package (defaults to the descriptor's package)")
		header   = flag.String("header", "", "header comment placed on generated files")
		workers  = flag.Int("workers", 0, "number of files emitted concurrently (0 means one per CPU)")
		features = flag.String("features", "", "comma-separated feature-flags, e.g. profile/snapshot,enum/values")
		watch    = flag.Bool("watch", false, "keep running and regenerate when the descriptor changes")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "astmgen").Logger()

	if *profile == "" {
		flag.Usage()
		log.Fatal().Msg("missing -profile")
	}

	r := runner{
		profile:  *profile,
		target:   *target,
		pkg:      *pkg,
		header:   *header,
		workers:  *workers,
		features: splitFeatures(*features),
	}
	if err := r.generate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
	if *watch {
		r.watch()
	}
}

type runner struct {
	profile  string
	target   string
	pkg      string
	header   string
	workers  int
	features []string
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	names := strings.Split(s, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	return names
}

// generate runs the load → graph → emit pipeline once.
func (r *runner) generate(ctx context.Context) error {
	start := time.Now()
	p, err := load.ParseFile(r.profile)
	if err != nil {
		return err
	}

	pkg := r.pkg
	if pkg == "" {
		pkg = p.Package
	}
	target := r.target
	if target == "" {
		target = path.Base(pkg)
	}

	opts := []gen.Option{gen.WithPackage(pkg), gen.WithTarget(target)}
	if r.header != "" {
		opts = append(opts, gen.WithHeader(r.header))
	}
	if r.workers > 0 {
		opts = append(opts, gen.WithWorkers(r.workers))
	}
	if len(r.features) > 0 {
		opts = append(opts, gen.WithFeatureNames(r.features...))
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}

	if cfg.HasFeature(gen.FeatureSnapshot.Name) && gen.UpToDate(p, target) {
		log.Info().Str("profile", p.Name).Str("target", target).Msg("profile unchanged, skipping")
		return nil
	}

	built, err := p.Build()
	if err != nil {
		return err
	}
	graph, err := gen.NewGraph(cfg, built)
	if err != nil {
		return err
	}
	if err := gen.Generate(ctx, graph); err != nil {
		return err
	}
	log.Info().
		Str("profile", p.Name).
		Str("target", target).
		Int("layouts", len(graph.Nodes)).
		Dur("took", time.Since(start)).
		Msg("bindings generated")
	return nil
}

// watch regenerates on every change of the descriptor file. Editors write
// through renames and temp files, so the parent directory is watched and
// events are filtered by name.
func (r *runner) watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(r.profile)
	if err := watcher.Add(dir); err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("cannot watch directory")
	}
	log.Info().Str("profile", r.profile).Msg("watching for changes")

	base := filepath.Base(r.profile)
	// Collapse the event bursts a single save produces.
	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending = time.After(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watch error")
		case <-pending:
			pending = nil
			if err := r.generate(context.Background()); err != nil {
				log.Error().Err(err).Msg("generation failed")
			}
		}
	}
}
