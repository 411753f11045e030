package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/himasha0421/FinTracker/internal/domain"
	"github.com/himasha0421/FinTracker/internal/youtube"
)

// MetadataFetcher looks up video metadata; it never fails, degrading to an
// identifier-derived default record instead.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoID string) domain.VideoMetadata
}

// TranscriptFetcher retrieves the ordered transcript segments for a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)
}

// ClientError marks a pipeline failure caused by the request itself (bad URL,
// transcript unavailable). Handlers map it to a 400 response carrying Message.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

// State holds the shared state across all pipeline steps.
type State struct {
	URL        string
	VideoID    string
	Metadata   domain.VideoMetadata
	Segments   []domain.TranscriptSegment
	Transcript string
	Summary    string
}

// Step represents a single step in the summary pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// ExtractVideoIDStep parses the video identifier out of the request URL.
type ExtractVideoIDStep struct{}

func (s *ExtractVideoIDStep) Execute(ctx context.Context, state *State) error {
	videoID, ok := youtube.ExtractVideoID(state.URL)
	if !ok {
		return &ClientError{Message: "Invalid YouTube URL. Could not extract video ID."}
	}
	state.VideoID = videoID
	return nil
}

// FetchMetadataStep looks up the video metadata. The fetcher never fails, so
// this step cannot either.
type FetchMetadataStep struct {
	Fetcher MetadataFetcher
}

func (s *FetchMetadataStep) Execute(ctx context.Context, state *State) error {
	state.Metadata = s.Fetcher.Fetch(ctx, state.VideoID)
	return nil
}

// FetchTranscriptStep retrieves the transcript segments. All transcript
// failures are client errors carrying the fetcher's message; metadata fetched
// by the previous step is discarded on this path.
type FetchTranscriptStep struct {
	Fetcher TranscriptFetcher
}

func (s *FetchTranscriptStep) Execute(ctx context.Context, state *State) error {
	segments, err := s.Fetcher.Fetch(ctx, state.VideoID)
	if err != nil {
		return &ClientError{Message: transcriptFailureMessage(err)}
	}
	if len(segments) == 0 {
		return &ClientError{Message: "No transcript data available for this video."}
	}
	state.Segments = segments
	return nil
}

func transcriptFailureMessage(err error) string {
	if errors.Is(err, youtube.ErrTranscriptsDisabled) || errors.Is(err, youtube.ErrNoTranscriptFound) {
		return err.Error()
	}
	return fmt.Sprintf("Error fetching transcript: %v", err)
}

// ConcatenateStep joins the segments into one text blob.
type ConcatenateStep struct{}

func (s *ConcatenateStep) Execute(ctx context.Context, state *State) error {
	state.Transcript = youtube.ConcatenateSegments(state.Segments)
	return nil
}

// SummarizeStep generates the summary text. The summarizer masks its own
// failures with fallback text, so this step cannot fail.
type SummarizeStep struct {
	Summarizer Summarizer
}

func (s *SummarizeStep) Execute(ctx context.Context, state *State) error {
	state.Summary = s.Summarizer.Summarize(ctx, state.Transcript, state.Metadata)
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
// ClientError passes through untouched so handlers can map it to a 400.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			var clientErr *ClientError
			if errors.As(err, &clientErr) {
				return err
			}
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewVideoSummaryPipeline creates the standard five-step pipeline behind the
// youtube-summary endpoint.
func NewVideoSummaryPipeline(metadata MetadataFetcher, transcripts TranscriptFetcher, summarizer Summarizer) *Pipeline {
	return NewPipeline(
		&ExtractVideoIDStep{},
		&FetchMetadataStep{Fetcher: metadata},
		&FetchTranscriptStep{Fetcher: transcripts},
		&ConcatenateStep{},
		&SummarizeStep{Summarizer: summarizer},
	)
}
