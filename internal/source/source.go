// Package source provides the releases that relnotes renders. Providers load
// releases from local files, HTTP(S) URLs, or memory; LoadAll combines
// several inputs and runs the issue body parser over raw bodies.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/issuebody"
	"golang.org/x/sync/errgroup"
)

// DefaultRemoteTimeout is the default timeout for remote input fetches.
const DefaultRemoteTimeout = 10 * time.Second

// maxParallelLoads bounds how many inputs are read at once.
const maxParallelLoads = 4

// Provider supplies releases in render order.
type Provider interface {
	Releases(ctx context.Context) ([]changelog.Release, error)
}

// Static is an in-memory Provider.
type Static []changelog.Release

// Releases returns the static release list.
func (s Static) Releases(ctx context.Context) ([]changelog.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []changelog.Release(s), nil
}

// File loads releases from a YAML or JSON file.
type File struct {
	Path string
}

// Releases reads and validates the file.
func (f File) Releases(ctx context.Context) ([]changelog.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	releases, err := changelog.Load(f.Path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.Path, err)
	}
	return releases, nil
}

// Options configures how inputs are resolved and loaded.
type Options struct {
	// Timeout bounds each remote fetch (default: DefaultRemoteTimeout).
	Timeout time.Duration
	// Client is used for remote inputs (default: http.DefaultClient).
	Client *http.Client
	// Logger receives debug output (default: discarded).
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// IsRemote reports whether input names an HTTP(S) URL.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Resolve returns the Provider for a single input path or URL.
func Resolve(input string, opts Options) Provider {
	if IsRemote(input) {
		return Remote{URL: input, Client: opts.Client, Timeout: opts.Timeout}
	}
	return File{Path: input}
}

// LoadAll loads every input in parallel and concatenates the releases in
// argument order. The combined list is validated again so a release name
// may not repeat across inputs. Raw issue bodies are parsed into blocks.
func LoadAll(ctx context.Context, inputs []string, opts Options) ([]changelog.Release, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input given")
	}

	log := opts.logger()
	results := make([][]changelog.Release, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, input := range inputs {
		g.Go(func() error {
			start := time.Now()
			releases, err := Resolve(input, opts).Releases(gctx)
			if err != nil {
				return err
			}
			log.Debug("loaded input", "input", input, "releases", len(releases), "elapsed", time.Since(start))
			results[i] = releases
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []changelog.Release
	for _, releases := range results {
		all = append(all, releases...)
	}

	if len(inputs) > 1 {
		if err := changelog.Validate(all); err != nil {
			return nil, fmt.Errorf("combining inputs: %w", err)
		}
	}

	return Enrich(all), nil
}

// Enrich returns a copy of releases where every issue that has a raw body
// but no parsed body gets its body parsed. The input is left untouched.
func Enrich(releases []changelog.Release) []changelog.Release {
	out := make([]changelog.Release, len(releases))
	for i, rel := range releases {
		out[i] = rel
		if !needsParsing(rel.Commits) {
			continue
		}
		commits := make([]changelog.Commit, len(rel.Commits))
		for j, c := range rel.Commits {
			commits[j] = c
			if c.GitHubIssue == nil || c.GitHubIssue.ParsedBody != nil || c.GitHubIssue.Body == "" {
				continue
			}
			issue := *c.GitHubIssue
			issue.ParsedBody = issuebody.Parse(issue.Body)
			commits[j].GitHubIssue = &issue
		}
		out[i].Commits = commits
	}
	return out
}

func needsParsing(commits []changelog.Commit) bool {
	for _, c := range commits {
		if c.GitHubIssue != nil && c.GitHubIssue.ParsedBody == nil && c.GitHubIssue.Body != "" {
			return true
		}
	}
	return false
}
