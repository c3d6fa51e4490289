// Package config merges layered configuration sources into the context tree.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Loader implements ports.ContextLoader using koanf.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.ContextLoader = (*Loader)(nil)

// Load merges sources in order. File sources are read and parsed concurrently,
// then everything is merged strictly in the order given.
func (l *Loader) Load(ctx context.Context, sources []domain.Source) (*domain.Node, error) {
	parsed := make([]*koanf.Koanf, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		if !isFileSource(src.Kind) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			k, err := l.loadFile(src)
			if err != nil {
				return err
			}
			parsed[i] = k
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := koanf.New(domain.PathDelimiter)
	for i, src := range sources {
		switch {
		case isFileSource(src.Kind):
			if parsed[i] == nil {
				continue
			}
			if err := merged.Merge(parsed[i]); err != nil {
				return nil, sourceError(err, src)
			}
		case src.Kind == domain.SourceEnv:
			if err := merged.Load(envProvider(src.Location), nil); err != nil {
				return nil, sourceError(err, src)
			}
		default:
			if len(src.Values) == 0 {
				continue
			}
			if err := merged.Load(confmap.Provider(src.Values, domain.PathDelimiter), nil); err != nil {
				return nil, sourceError(err, src)
			}
		}
	}

	return domain.NewNode(merged.Raw()), nil
}

// loadFile parses the first existing candidate of a file source. It returns
// nil when an optional source has no file.
func (l *Loader) loadFile(src domain.Source) (*koanf.Koanf, error) {
	path, found, err := locate(src)
	if err != nil {
		return nil, sourceError(err, src)
	}
	if !found {
		if src.Optional {
			l.logger.Debug("no " + string(src.Kind) + " config at " + src.Location)
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, src.Location), "source", src.Location)
	}

	k := koanf.New(domain.PathDelimiter)
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, zerr.With(domain.Because(domain.ErrConfigLoadFailed, err), "source", path)
	}
	l.logger.Debug("loaded " + string(src.Kind) + " config from " + path)
	return k, nil
}

// locate resolves the file a source refers to. Prefix sources try each of
// domain.ConfigExtensions in order; the first existing file wins.
func locate(src domain.Source) (string, bool, error) {
	candidates := []string{src.Location}
	if !src.Exact {
		candidates = candidates[:0]
		for _, ext := range domain.ConfigExtensions {
			candidates = append(candidates, src.Location+ext)
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", false, err
		}
		if info.IsDir() {
			continue
		}
		return candidate, true, nil
	}
	return "", false, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

// envProvider maps PREFIX_A__B_C=v to a.b_c. Values are parsed as YAML so
// lists and booleans can be expressed from the environment.
func envProvider(prefix string) koanf.Provider {
	return env.ProviderWithValue(prefix, domain.PathDelimiter, func(key, value string) (string, any) {
		name := strings.ToLower(strings.TrimPrefix(key, prefix))
		if name == "" {
			return "", nil
		}
		name = strings.ReplaceAll(name, domain.EnvNestingSeparator, domain.PathDelimiter)
		return name, ParseValue(value)
	})
}

func isFileSource(kind domain.SourceKind) bool {
	switch kind {
	case domain.SourceSystem, domain.SourceUser, domain.SourceProject, domain.SourceRuntime:
		return true
	default:
		return false
	}
}

func sourceError(err error, src domain.Source) error {
	location := src.Location
	if location == "" {
		location = string(src.Kind)
	}
	return zerr.With(domain.Because(domain.ErrConfigLoadFailed, err), "source", location)
}
