package worker

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/versemeter/versemeter/internal/model"
)

// mockAnalyzer implements Analyzer.
type mockAnalyzer struct {
	shouldError bool
}

func (m *mockAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.VideoReport, error) {
	time.Sleep(10 * time.Millisecond) // simulate work
	if m.shouldError {
		return nil, errors.New("analysis error")
	}
	return &model.VideoReport{
		VideoID: "dQw4w9WgXcQ",
		Title:   "Sermon from " + url,
	}, nil
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2, 0, 0)

	urls := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
		"https://youtu.be/ccccccccccc",
	}
	results := processor.ProcessURLs(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
		}
		if res.Report == nil {
			t.Errorf("expected report for %s", res.URL)
		}
	}
}

func TestBatchProcessor_ProcessURLs_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{shouldError: true}, 2, 0, 0)

	results := processor.ProcessURLs(context.Background(), []string{"https://www.youtube.com/watch?v=aaaaaaaaaaa"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessURLs_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2, 0, 0)

	results := processor.ProcessURLs(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	content := `https://www.youtube.com/watch?v=aaaaaaaaaaa
# a comment line
https://youtu.be/bbbbbbbbbbb

https://www.youtube.com/watch?v=aaaaaaaaaaa
   https://www.youtube.com/watch?v=ccccccccccc   `

	tmpfile, err := os.CreateTemp(t.TempDir(), "urls")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	want := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://youtu.be/bbbbbbbbbbb",
		"https://www.youtube.com/watch?v=ccccccccccc",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("urls = %v, want %v", urls, want)
	}
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	if _, err := ReadURLsFromFile("/nonexistent/urls.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
