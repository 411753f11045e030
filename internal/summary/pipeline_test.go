package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/himasha0421/FinTracker/internal/domain"
	"github.com/himasha0421/FinTracker/internal/youtube"
)

// mockMetadataFetcher returns a fixed metadata record.
type mockMetadataFetcher struct {
	meta domain.VideoMetadata
}

func (m *mockMetadataFetcher) Fetch(ctx context.Context, videoID string) domain.VideoMetadata {
	if m.meta.VideoURL == "" {
		return domain.DefaultVideoMetadata(videoID)
	}
	return m.meta
}

// mockTranscriptFetcher returns fixed segments or a fixed error.
type mockTranscriptFetcher struct {
	segments []domain.TranscriptSegment
	err      error
}

func (m *mockTranscriptFetcher) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	return m.segments, m.err
}

// mockSummarizer returns a fixed summary and records its input.
type mockSummarizer struct {
	summary       string
	gotTranscript string
	gotMetadata   domain.VideoMetadata
}

func (m *mockSummarizer) Summarize(ctx context.Context, transcript string, meta domain.VideoMetadata) string {
	m.gotTranscript = transcript
	m.gotMetadata = meta
	return m.summary
}

func TestPipeline_InvalidURL(t *testing.T) {
	p := NewVideoSummaryPipeline(
		&mockMetadataFetcher{},
		&mockTranscriptFetcher{},
		&mockSummarizer{summary: "unused"},
	)

	state := &State{URL: "https://notyoutube.com/watch?v=abc"}
	err := p.Execute(context.Background(), state)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("err = %v, want ClientError", err)
	}
	if clientErr.Message != "Invalid YouTube URL. Could not extract video ID." {
		t.Errorf("message = %q", clientErr.Message)
	}
}

func TestPipeline_TranscriptsDisabled(t *testing.T) {
	p := NewVideoSummaryPipeline(
		&mockMetadataFetcher{},
		&mockTranscriptFetcher{err: youtube.ErrTranscriptsDisabled},
		&mockSummarizer{summary: "unused"},
	)

	state := &State{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
	err := p.Execute(context.Background(), state)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("err = %v, want ClientError", err)
	}
	if clientErr.Message != "Transcripts are disabled for this video." {
		t.Errorf("message = %q", clientErr.Message)
	}
}

func TestPipeline_GenericTranscriptFailure(t *testing.T) {
	p := NewVideoSummaryPipeline(
		&mockMetadataFetcher{},
		&mockTranscriptFetcher{err: errors.New("connection reset")},
		&mockSummarizer{summary: "unused"},
	)

	state := &State{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
	err := p.Execute(context.Background(), state)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("err = %v, want ClientError", err)
	}
	if clientErr.Message != "Error fetching transcript: connection reset" {
		t.Errorf("message = %q", clientErr.Message)
	}
}

func TestPipeline_EmptyTranscript(t *testing.T) {
	p := NewVideoSummaryPipeline(
		&mockMetadataFetcher{},
		&mockTranscriptFetcher{},
		&mockSummarizer{summary: "unused"},
	)

	state := &State{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
	err := p.Execute(context.Background(), state)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("err = %v, want ClientError", err)
	}
	if clientErr.Message != "No transcript data available for this video." {
		t.Errorf("message = %q", clientErr.Message)
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	summarizer := &mockSummarizer{summary: "SUMMARY"}
	p := NewVideoSummaryPipeline(
		&mockMetadataFetcher{},
		&mockTranscriptFetcher{segments: []domain.TranscriptSegment{
			{Text: "hello"},
			{Text: "world"},
		}},
		summarizer,
	)

	state := &State{URL: "https://youtu.be/dQw4w9WgXcQ"}
	if err := p.Execute(context.Background(), state); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if state.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q", state.VideoID)
	}
	if state.Transcript != "hello world" {
		t.Errorf("Transcript = %q, want %q", state.Transcript, "hello world")
	}
	if state.Summary != "SUMMARY" {
		t.Errorf("Summary = %q, want SUMMARY", state.Summary)
	}
	if state.Metadata.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("Metadata.VideoURL = %q", state.Metadata.VideoURL)
	}
	if summarizer.gotTranscript != "hello world" {
		t.Errorf("summarizer received %q, want concatenated transcript", summarizer.gotTranscript)
	}
}
