package domain

import "fmt"

// VideoMetadata holds the subset of YouTube video metadata the summary
// endpoint returns alongside the generated summary.
type VideoMetadata struct {
	Title        string
	ThumbnailURL string
	VideoURL     string
	Tags         []string
	PublishDate  *string
}

// DefaultVideoMetadata builds the fallback record used whenever the Data API
// lookup fails. Every field is derivable from the video ID alone.
func DefaultVideoMetadata(videoID string) VideoMetadata {
	return VideoMetadata{
		Title:        "Unknown Title",
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
		VideoURL:     WatchURL(videoID),
		Tags:         []string{},
		PublishDate:  nil,
	}
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// TranscriptSegment is one timestamped caption unit from a video's caption
// track. Start and Duration are carried through but only segment order matters
// for summarization.
type TranscriptSegment struct {
	Text     string
	Start    float64
	Duration float64
}
