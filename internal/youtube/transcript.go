package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/himasha0421/FinTracker/internal/domain"
)

// Typed transcript failures. The error text doubles as the user-facing
// message carried in the 400 response, so keep the wording stable.
var (
	ErrTranscriptsDisabled = errors.New("Transcripts are disabled for this video.")
	ErrNoTranscriptFound   = errors.New("No transcript found for this video.")
)

// English transcript preference: try "en" first, then the regional variants.
var (
	primaryLanguage   = "en"
	fallbackLanguages = []string{"en-US", "en-GB"}
)

// TranscriptFetcher retrieves caption transcripts for a video. YouTube has no
// official transcript API; caption tracks are discovered from the watch page
// player response and fetched from the timedtext endpoint as XML.
type TranscriptFetcher struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewTranscriptFetcher builds a fetcher with a dedicated HTTP client.
func NewTranscriptFetcher(log zerolog.Logger) *TranscriptFetcher {
	return &TranscriptFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://www.youtube.com",
		log:     log,
	}
}

// NewTranscriptFetcherWithClient builds a fetcher around a custom client and
// base URL, used by tests.
func NewTranscriptFetcherWithClient(client *http.Client, baseURL string, log zerolog.Logger) *TranscriptFetcher {
	return &TranscriptFetcher{client: client, baseURL: baseURL, log: log}
}

// captionTrack is one entry of the player response captionTracks array.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// Fetch returns the ordered transcript segments for the video. Failure modes:
// ErrTranscriptsDisabled when the video exposes no caption tracks at all,
// ErrNoTranscriptFound when no English transcript is available, and a wrapped
// generic error for network or service failures.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	tracks, err := f.listCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := selectEnglishTrack(tracks)
	if !ok {
		return nil, ErrNoTranscriptFound
	}

	segments, err := f.fetchTrack(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	return segments, nil
}

// listCaptionTracks loads the watch page and extracts the caption track list
// from the embedded player response.
func (f *TranscriptFetcher) listCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	pageURL := fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building watch page request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching watch page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading watch page: %w", err)
	}

	raw, ok := captionTracksJSON(string(body))
	if !ok {
		// No captionTracks array in the player response: the owner has
		// disabled captions for this video.
		return nil, ErrTranscriptsDisabled
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("decoding caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	return tracks, nil
}

// captionTracksJSON slices the "captionTracks":[...] array out of the watch
// page HTML. Bracket depth is tracked with string-literal awareness since
// track names may contain brackets.
func captionTracksJSON(page string) (string, bool) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx == -1 {
		return "", false
	}

	rest := page[idx+len(marker):]
	start := strings.Index(rest, "[")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(rest); i++ {
		c := rest[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// ignore brackets inside string literals
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return rest[start : i+1], true
			}
		}
	}
	return "", false
}

// selectEnglishTrack applies the locale preference order.
func selectEnglishTrack(tracks []captionTrack) (captionTrack, bool) {
	for _, t := range tracks {
		if t.LanguageCode == primaryLanguage {
			return t, true
		}
	}
	for _, lang := range fallbackLanguages {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return captionTrack{}, false
}

// timedTextDoc mirrors the timedtext XML transcript format.
type timedTextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// fetchTrack downloads and decodes one caption track.
func (f *TranscriptFetcher) fetchTrack(ctx context.Context, trackURL string) ([]domain.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building transcript request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching transcript: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding transcript XML: %w", err)
	}

	segments := make([]domain.TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		segments = append(segments, domain.TranscriptSegment{
			Text:     html.UnescapeString(t.Body),
			Start:    t.Start,
			Duration: t.Dur,
		})
	}
	return segments, nil
}

// ConcatenateSegments joins transcript segments into a single text blob in
// their original order, separated by single spaces. Empty input yields "".
func ConcatenateSegments(segments []domain.TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}
