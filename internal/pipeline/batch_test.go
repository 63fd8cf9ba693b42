package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSentenceFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.txt", "2.txt", "1.txt", "notes.txt", "extra.md"} {
		writeFile(t, filepath.Join(dir, name), "holmes sat")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "3.txt"), 0o755))

	paths, err := SentenceFiles(dir)
	require.NoError(t, err)
	want := []string{
		filepath.Join(dir, "1.txt"),
		filepath.Join(dir, "2.txt"),
		filepath.Join(dir, "10.txt"),
		filepath.Join(dir, "notes.txt"),
	}
	assert.Equal(t, want, paths)

	_, err = SentenceFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1.txt"), "holmes sat")
	writeFile(t, filepath.Join(dir, "2.txt"), "holmes lit a pipe")
	single := filepath.Join(t.TempDir(), "single.txt")
	writeFile(t, single, "she smiled")

	paths, err := ExpandInputs([]string{single, dir, "missing.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(dir, "1.txt"),
		filepath.Join(dir, "2.txt"),
		"missing.txt",
	}, paths)
}

func TestAnalyzeFiles(t *testing.T) {
	a := newTestAnalyzer(t, testConfig())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1.txt"), "Holmes sat.\n")
	writeFile(t, filepath.Join(dir, "2.txt"), "Holmes lit a pipe.\n")
	paths := []string{
		filepath.Join(dir, "1.txt"),
		filepath.Join(dir, "missing.txt"),
		filepath.Join(dir, "2.txt"),
	}

	results, err := a.AnalyzeFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, paths[0], results[0].Name)
	assert.Equal(t, "Holmes sat.", results[0].Sentence)
	assert.Equal(t, []string{"holmes"}, results[0].NounPhrases)

	assert.Equal(t, paths[1], results[1].Name)
	assert.Error(t, results[1].Err)

	assert.Equal(t, []string{"holmes", "a pipe"}, results[2].NounPhrases)
	assert.Equal(t, []string{"lit a pipe"}, results[2].VerbPhrases)
}

func TestAnalyzeSentencesKeepsOrder(t *testing.T) {
	a := newTestAnalyzer(t, testConfig())
	sentences := []string{
		"Holmes sat.",
		"Holmes lit a pipe.",
		"We arrived the day before Thursday.",
		"Holmes chuckled to himself.",
		"My companion smiled an enigmatical smile.",
	}

	results, err := a.AnalyzeSentences(context.Background(), sentences)
	require.NoError(t, err)
	require.Len(t, results, len(sentences))
	for i, r := range results {
		assert.Equal(t, sentences[i], r.Sentence)
		assert.NoError(t, r.ParseErr, r.Sentence)
	}
}

func TestAnalyzeSentencesCanceled(t *testing.T) {
	a := newTestAnalyzer(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeSentences(ctx, []string{"Holmes sat."})
	assert.ErrorIs(t, err, context.Canceled)
}
