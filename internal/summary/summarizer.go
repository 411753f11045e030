// Package summary turns a video transcript into a markdown summary report and
// carries the URL → metadata → transcript → summary pipeline.
package summary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/himasha0421/FinTracker/internal/domain"
)

// DefaultModelName is the Gemini model used for transcript summarization.
const DefaultModelName = "gemini-2.0-flash-thinking-exp-01-21"

// FallbackSummary is returned whenever the summarization call fails.
const FallbackSummary = "Failed to generate summary. Please try again later."

const systemInstruction = `You are an expert YouTube transcript summarizer. Analyze the provided YouTube video transcript to identify its core concepts, major arguments, and essential information. Generate a concise yet comprehensive summary report structured according to the guidelines below. The goal is to allow someone to quickly understand the video's main message, key findings, and overall significance without watching the entire video.

Output Structure & Guidelines:

1.  Key Points / Core Concepts:
    * Identify and list the 3-5 most critical concepts, arguments, or findings discussed in the video.
    * Use concise, informative bullet points. Each point should represent a distinct major idea.
    * Focus on *what* is being discussed, not just topic mentions.


2.  Detailed Summary:
    * Weave the Key Points identified above into a coherent narrative summary.
    * Expand on each key point by incorporating supporting details, context, explanations, important facts, figures, statistics, or specific examples mentioned in the transcript.
    * Ensure the summary flows logically, connecting the different ideas presented in the video.
    * Maintain a neutral and objective tone, accurately reflecting the information in the transcript.
    * Prioritize clarity and conciseness while ensuring all crucial information is included.


3.  Main Takeaway / Conclusion:
    * State the single most important message, conclusion, or call to action the video aims to convey.
    * This should encapsulate the essence or primary purpose of the video in one or two sentences.

Mandatory Formatting & Rules:
* Format the entire output using Markdown for readability (use bullet points, bolding where appropriate).
* Strictly adhere to the section structure: Key Points, Detailed Summary, Main Takeaway.
* **Do not** include any introductory phrases like "Here's a summary..." or "This report summarizes...".
* Base the summary *only* on the provided transcript text. Do not add external information or interpretations not explicitly supported by the transcript.`

// Summarizer produces a markdown summary from transcript text. The metadata
// argument is currently inert; it stays in the signature so implementations
// can start using it without an interface change.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, meta domain.VideoMetadata) string
}

// GeminiSummarizer is the Summarizer backed by the Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiSummarizer creates a summarizer with its own API client, built
// once at startup.
func NewGeminiSummarizer(ctx context.Context, apiKey string, log zerolog.Logger) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: DefaultModelName, log: log}, nil
}

// Summarize sends the transcript with the fixed summary instruction and a
// deterministic-leaning temperature. It never fails: any call error is masked
// with FallbackSummary.
func (s *GeminiSummarizer) Summarize(ctx context.Context, transcript string, _ domain.VideoMetadata) string {
	prompt := fmt.Sprintf("YouTube Video Transcript:\n%s\n", transcript)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "text/plain",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		s.log.Error().Err(err).Msg("Summary generation failed, returning fallback text")
		return FallbackSummary
	}

	return resp.Text()
}
