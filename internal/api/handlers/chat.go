// Package handlers contains the HTTP entry points of the service.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/himasha0421/FinTracker/internal/api/middleware"
	"github.com/himasha0421/FinTracker/internal/domain"
	"github.com/himasha0421/FinTracker/internal/statement"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

// placeholderResponse is the fixed assistant reply. The live chat-model call
// is intentionally disabled while the transaction flow is finished; the
// frontend relies on this exact string.
const placeholderResponse = "I have updated the transactions"

// chatMessage is one entry of the synthetic exchange built for traceability.
// The exchange is logged but not sent anywhere.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the envelope returned by POST /api/chat.
type ChatResponse struct {
	Response string                     `json:"response"`
	Data     []domain.TransactionRecord `json:"data"`
	TaskType string                     `json:"task_type"`
}

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	reader statement.Reader
	log    zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(reader statement.Reader, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		reader: reader,
		log:    log,
	}
}

// Chat handles POST /api/chat: a multipart form with an optional statement
// image under "file" and an optional text "message". When an image is present
// its transactions are extracted; the assistant reply is currently the fixed
// placeholder either way.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, header, err := r.FormFile("file")
	hasFile := err == nil
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if hasFile {
		defer file.Close()
	}

	message := r.FormValue("message")

	if !hasFile && message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "No file or message provided")
		return
	}

	var messages []chatMessage
	extracted := make([]domain.TransactionRecord, 0)

	if hasFile {
		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			middleware.WriteError(w, http.StatusBadRequest, "Unsupported file type. Please upload an image file.")
			return
		}

		imageBytes, err := io.ReadAll(file)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
			return
		}

		transactions, err := h.reader.ReadStatement(ctx, imageBytes, message)
		if err != nil {
			h.log.Error().Err(err).Str("filename", header.Filename).Msg("Statement extraction failed")
			middleware.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
			return
		}
		extracted = transactions

		messages = append(messages,
			chatMessage{
				Role:    "system",
				Content: "You are a financial assistant. Analyze the following bank statement and extract all transactions:",
			},
			chatMessage{
				Role:    "user",
				Content: fmt.Sprintf("Here is the text extracted from the bank statement:\n\n%v", transactions),
			},
		)
	}

	if message != "" {
		messages = append(messages, chatMessage{Role: "user", Content: message})
	}

	h.log.Info().
		Int("transactions", len(extracted)).
		Interface("messages", messages).
		Msg("Chat request processed")

	middleware.WriteJSON(w, http.StatusOK, ChatResponse{
		Response: placeholderResponse,
		Data:     extracted,
		TaskType: "add_transactions",
	})
}
