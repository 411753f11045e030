package youtube

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/himasha0421/FinTracker/internal/domain"
)

// VideoLister is the single Data API operation the metadata fetcher needs.
// The indirection keeps the fetcher mockable in tests.
type VideoLister interface {
	ListVideo(ctx context.Context, videoID string) (*yt.Video, error)
}

// dataAPILister backs VideoLister with the YouTube Data API v3.
type dataAPILister struct {
	svc *yt.Service
}

func (l *dataAPILister) ListVideo(ctx context.Context, videoID string) (*yt.Video, error) {
	resp, err := l.svc.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("videos.list: no items for video %q", videoID)
	}
	return resp.Items[0], nil
}

// MetadataFetcher looks up video metadata and degrades to an ID-derived
// default record on any failure. Fetch never returns an error; this is the
// one intentional graceful-degradation path in the service.
type MetadataFetcher struct {
	lister VideoLister
	log    zerolog.Logger
}

// NewMetadataFetcher builds a fetcher backed by the Data API, keyed by the
// given API key. The service client is created once and reused for the
// process lifetime.
func NewMetadataFetcher(ctx context.Context, apiKey string, log zerolog.Logger) (*MetadataFetcher, error) {
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &MetadataFetcher{lister: &dataAPILister{svc: svc}, log: log}, nil
}

// NewMetadataFetcherWithLister builds a fetcher around a custom lister.
func NewMetadataFetcherWithLister(lister VideoLister, log zerolog.Logger) *MetadataFetcher {
	return &MetadataFetcher{lister: lister, log: log}
}

// Fetch returns metadata for the video, or the default record when the lookup
// fails in any way: network error, quota error, unknown video, or a response
// missing the maxres thumbnail, tags or publish date. Successful fields are
// copied verbatim from the API response.
func (f *MetadataFetcher) Fetch(ctx context.Context, videoID string) domain.VideoMetadata {
	fallback := domain.DefaultVideoMetadata(videoID)

	video, err := f.lister.ListVideo(ctx, videoID)
	if err != nil {
		f.log.Warn().Err(err).Str("video_id", videoID).Msg("Metadata lookup failed, using default record")
		return fallback
	}

	snippet := video.Snippet
	if snippet == nil ||
		snippet.Thumbnails == nil ||
		snippet.Thumbnails.Maxres == nil ||
		len(snippet.Tags) == 0 ||
		snippet.PublishedAt == "" {
		f.log.Warn().Str("video_id", videoID).Msg("Metadata response incomplete, using default record")
		return fallback
	}

	publishDate := snippet.PublishedAt
	return domain.VideoMetadata{
		Title:        snippet.Title,
		ThumbnailURL: snippet.Thumbnails.Maxres.Url,
		VideoURL:     domain.WatchURL(videoID),
		Tags:         snippet.Tags,
		PublishDate:  &publishDate,
	}
}
