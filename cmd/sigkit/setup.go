package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dhamidi/sigkit/analyzer"
	"github.com/dhamidi/sigkit/annotations"
	"github.com/dhamidi/sigkit/config"
	"github.com/dhamidi/sigkit/format"
	"github.com/dhamidi/sigkit/loader"
	"github.com/dhamidi/sigkit/maven"
	"github.com/dhamidi/sigkit/names"
	"github.com/dhamidi/sigkit/signature"
)

type globalOptions struct {
	configFile string
	verbose    int
	logFile    string
}

// runOptions are the flags shared by commands that compile classes.
type runOptions struct {
	workers     int
	all         bool
	metricsFile string
}

func loadConfig(opts *globalOptions, run *runOptions) (*config.Config, error) {
	cfg, err := config.LoadOptional(opts.configFile)
	if err != nil {
		return nil, err
	}
	if run.workers > 0 {
		cfg.Workers = run.workers
	}
	if run.all {
		cfg.Filter = config.FilterAll
	}
	return cfg, nil
}

// fetchArchives downloads the configured Maven annotation jars.
func fetchArchives(ctx context.Context, cfg *config.Config) ([]string, error) {
	coords, err := cfg.Annotations.Coordinates()
	if err != nil || len(coords) == 0 {
		return nil, err
	}
	cacheDir := cfg.Annotations.CacheDir
	if cacheDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache directory: %w", err)
		}
		cacheDir = filepath.Join(userCache, "sigkit")
	}
	return maven.NewFetcher(cacheDir).FetchAll(ctx, coords)
}

func newCompiler(ctx context.Context, cfg *config.Config) (*signature.Compiler, error) {
	fetched, err := fetchArchives(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var providers []annotations.Provider
	for _, path := range cfg.Annotations.Archives {
		providers = append(providers, annotations.NewCachingProvider(annotations.NewZipProvider(path)))
	}
	for _, path := range fetched {
		providers = append(providers, annotations.NewCachingProvider(annotations.NewZipProvider(path)))
	}
	for _, path := range cfg.Annotations.Directories {
		providers = append(providers, annotations.NewCachingProvider(annotations.NewDirectoryProvider(path)))
	}

	var oracle signature.NameOracle = names.EmptyOracle{}
	if cfg.Names != "" {
		fileOracle, err := names.LoadFile(cfg.Names)
		if err != nil {
			return nil, err
		}
		oracle = names.NewCachingOracle(fileOracle)
	}

	return signature.NewCompiler(
		signature.WithAnnotationEvidence(annotations.NewManager(annotations.NewCompoundProvider(providers...))),
		signature.WithNameOracle(oracle),
	), nil
}

// compileClasses loads path and compiles every class in it, class by class.
// Classes that fail to load are reported and skipped.
func compileClasses(ctx context.Context, cfg *config.Config, metricsFile, path string) ([]*format.Class, error) {
	classes, err := loader.Load(path)
	if err != nil {
		if len(classes) == 0 {
			return nil, err
		}
		log.Warningf("some classes could not be loaded: %s", err)
	}

	compiler, err := newCompiler(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	opts := []analyzer.Option{
		analyzer.WithWorkers(cfg.Workers),
		analyzer.WithMetrics(analyzer.NewMetrics(reg)),
	}
	if cfg.Filter == config.FilterPublic {
		opts = append(opts, analyzer.WithFilter(analyzer.PublicAPI))
	}
	a := analyzer.New(compiler, opts...)

	out := make([]*format.Class, 0, len(classes))
	for _, class := range classes {
		results, err := a.Run(ctx, class.Methods)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", class.Name, err)
		}
		out = append(out, &format.Class{Name: class.Name, Source: class.Source, Results: results})
	}
	log.Infof("compiled %d classes from %s", len(out), path)

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}
	return out, nil
}

func encodeAll(enc format.Encoder, classes []*format.Class) error {
	for _, class := range classes {
		if err := enc.Encode(class); err != nil {
			return fmt.Errorf("encode %s: %w", class.Name, err)
		}
	}
	return nil
}

func newEncoder(cfg *config.Config, w io.Writer) (format.Encoder, error) {
	args := format.ArgumentsWithDefaults(cfg.DefaultsPrimitivesOnly)
	switch cfg.Format {
	case config.FormatJSON:
		enc := format.NewJSONEncoder(w)
		enc.Arguments = args
		return enc, nil
	case config.FormatText:
		enc := format.NewLineEncoder(w)
		enc.Arguments = args
		return enc, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected %s or %s)", cfg.Format, config.FormatText, config.FormatJSON)
	}
}
