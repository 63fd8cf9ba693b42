package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SentenceFiles lists the .txt files of dir. Files with a numeric name come
// first in numeric order (1.txt, 2.txt, ..., 10.txt), the others follow in
// lexical order
func SentenceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "listing sentence files")
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		ni, erri := strconv.Atoi(strings.TrimSuffix(names[i], ".txt"))
		nj, errj := strconv.Atoi(strings.TrimSuffix(names[j], ".txt"))
		switch {
		case erri == nil && errj == nil:
			if ni != nj {
				return ni < nj
			}
			return names[i] < names[j]
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return names[i] < names[j]
		}
	})

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// ExpandInputs replaces every directory in inputs by its sentence files
func ExpandInputs(inputs []string) ([]string, error) {
	paths := []string{}
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil || !info.IsDir() {
			// Unreadable files are reported with their result
			paths = append(paths, input)
			continue
		}
		files, err := SentenceFiles(input)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

// AnalyzeFile analyzes the sentence stored in the file at path
func (a *Analyzer) AnalyzeFile(path string) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Warn("reading sentence file", zap.String("path", path), zap.Error(err))
		return &Result{Name: path, Err: errors.Wrap(err, "reading sentence")}
	}
	result := a.Analyze(strings.TrimSpace(string(data)))
	result.Name = path
	return result
}

// AnalyzeFiles analyzes the sentence files concurrently. Results are in the
// order of paths, a file that can't be read gets a result with Err set
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) ([]*Result, error) {
	return a.run(ctx, len(paths), func(i int) *Result {
		return a.AnalyzeFile(paths[i])
	})
}

// AnalyzeSentences analyzes the sentences concurrently, results are in the
// order of sentences
func (a *Analyzer) AnalyzeSentences(ctx context.Context, sentences []string) ([]*Result, error) {
	return a.run(ctx, len(sentences), func(i int) *Result {
		return a.Analyze(sentences[i])
	})
}

func (a *Analyzer) run(ctx context.Context, n int, analyze func(i int) *Result) ([]*Result, error) {
	results := make([]*Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = analyze(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("batch analyzed", zap.Int("sentences", n), zap.Int("workers", a.workers))
	return results, nil
}
