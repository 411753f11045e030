package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/himasha0421/FinTracker/internal/api/middleware"
	"github.com/himasha0421/FinTracker/internal/summary"
)

// summaryResponseText is the fixed confirmation accompanying a successful
// summary payload.
const summaryResponseText = "Here is the summary of the video."

// SummaryData is the data section of a successful youtube-summary response.
type SummaryData struct {
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnail_url"`
	VideoURL     string   `json:"video_url"`
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags"`
	PublishDate  *string  `json:"publish_date"`
}

// YoutubeSummaryResponse is the envelope returned by POST /api/youtube-summary.
type YoutubeSummaryResponse struct {
	Response string      `json:"response"`
	Data     SummaryData `json:"data"`
	TaskType string      `json:"task_type"`
}

// YouTubeHandler handles the video summary endpoint.
type YouTubeHandler struct {
	pipeline *summary.Pipeline
	log      zerolog.Logger
}

// NewYouTubeHandler wires the summary pipeline from its three collaborators.
func NewYouTubeHandler(metadata summary.MetadataFetcher, transcripts summary.TranscriptFetcher, summarizer summary.Summarizer, log zerolog.Logger) *YouTubeHandler {
	return &YouTubeHandler{
		pipeline: summary.NewVideoSummaryPipeline(metadata, transcripts, summarizer),
		log:      log,
	}
}

// Summarize handles POST /api/youtube-summary: a JSON body {"url": ...}.
// The pipeline runs URL parsing, metadata lookup, transcript retrieval,
// concatenation and summarization in strict sequence. Bad URLs and transcript
// failures are 400s carrying the pipeline message; anything else is a 500
// exposing the error text.
func (h *YouTubeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		middleware.WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	state := &summary.State{URL: req.URL}
	if err := h.pipeline.Execute(r.Context(), state); err != nil {
		var clientErr *summary.ClientError
		if errors.As(err, &clientErr) {
			h.log.Info().Str("url", req.URL).Str("reason", clientErr.Message).Msg("Summary request rejected")
			middleware.WriteError(w, http.StatusBadRequest, clientErr.Message)
			return
		}
		h.log.Error().Err(err).Str("url", req.URL).Msg("Summary pipeline failed")
		middleware.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().
		Str("video_id", state.VideoID).
		Int("segments", len(state.Segments)).
		Msg("Summary generated")

	middleware.WriteJSON(w, http.StatusOK, YoutubeSummaryResponse{
		Response: summaryResponseText,
		Data: SummaryData{
			Title:        state.Metadata.Title,
			ThumbnailURL: state.Metadata.ThumbnailURL,
			VideoURL:     state.Metadata.VideoURL,
			Summary:      state.Summary,
			Tags:         state.Metadata.Tags,
			PublishDate:  state.Metadata.PublishDate,
		},
		TaskType: "youtube_summary",
	})
}
