package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	yt "google.golang.org/api/youtube/v3"

	"github.com/himasha0421/FinTracker/internal/logger"
)

// fakeLister is a test double for the Data API lookup.
type fakeLister struct {
	video *yt.Video
	err   error
}

func (f *fakeLister) ListVideo(ctx context.Context, videoID string) (*yt.Video, error) {
	return f.video, f.err
}

func discardLogger() zerolog.Logger {
	return logger.NewWithWriter(discard{})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestMetadataFetcher_UpstreamFailureReturnsDefault(t *testing.T) {
	fetcher := NewMetadataFetcherWithLister(&fakeLister{err: errors.New("quota exceeded")}, discardLogger())

	meta := fetcher.Fetch(context.Background(), "dQw4w9WgXcQ")

	if meta.Title != "Unknown Title" {
		t.Errorf("Title = %q, want default", meta.Title)
	}
	if meta.ThumbnailURL != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("ThumbnailURL = %q, want identifier-derived default", meta.ThumbnailURL)
	}
	if meta.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("VideoURL = %q, want identifier-derived default", meta.VideoURL)
	}
	if len(meta.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", meta.Tags)
	}
	if meta.PublishDate != nil {
		t.Errorf("PublishDate = %v, want nil", *meta.PublishDate)
	}
}

func TestMetadataFetcher_IncompleteResponseReturnsDefault(t *testing.T) {
	// Snippet present but no maxres thumbnail.
	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       "Some Video",
			Tags:        []string{"music"},
			PublishedAt: "2009-10-25T06:57:20Z",
			Thumbnails:  &yt.ThumbnailDetails{},
		},
	}
	fetcher := NewMetadataFetcherWithLister(&fakeLister{video: video}, discardLogger())

	meta := fetcher.Fetch(context.Background(), "abc123")

	if meta.Title != "Unknown Title" {
		t.Errorf("Title = %q, want default record on partial response", meta.Title)
	}
}

func TestMetadataFetcher_Success(t *testing.T) {
	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       "Never Gonna Give You Up",
			Tags:        []string{"rick astley", "rickrolling"},
			PublishedAt: "2009-10-25T06:57:20Z",
			Thumbnails: &yt.ThumbnailDetails{
				Maxres: &yt.Thumbnail{Url: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"},
			},
		},
	}
	fetcher := NewMetadataFetcherWithLister(&fakeLister{video: video}, discardLogger())

	meta := fetcher.Fetch(context.Background(), "dQw4w9WgXcQ")

	if meta.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.ThumbnailURL != "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("ThumbnailURL = %q", meta.ThumbnailURL)
	}
	if meta.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("VideoURL = %q", meta.VideoURL)
	}
	if len(meta.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 entries", meta.Tags)
	}
	if meta.PublishDate == nil || *meta.PublishDate != "2009-10-25T06:57:20Z" {
		t.Errorf("PublishDate = %v, want publish timestamp", meta.PublishDate)
	}
}
