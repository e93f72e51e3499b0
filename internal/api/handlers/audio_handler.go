package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/services"
	"github.com/hirevox/backend/internal/storage"
	"github.com/hirevox/backend/internal/utils"
)

const maxAudioSize = 50 << 20

var allowedAudioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
	".ogg": true,
}

type AudioHandler struct {
	audio services.AudioService
	store storage.AudioStore
}

func NewAudioHandler(audio services.AudioService, store storage.AudioStore) *AudioHandler {
	return &AudioHandler{audio: audio, store: store}
}

func readAudioUpload(c *gin.Context, op string) ([]byte, *multipart.FileHeader, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return nil, nil, false
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedAudioExts[ext] {
		writeError(c, utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("unsupported format: %s (allowed: .mp3, .wav, .m4a, .ogg)", ext), nil))
		return nil, nil, false
	}
	if fh.Size <= 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil))
		return nil, nil, false
	}
	if fh.Size > maxAudioSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 50MB)", nil))
		return nil, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return nil, nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxAudioSize))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return nil, nil, false
	}
	return content, fh, true
}

func (h *AudioHandler) Upload(c *gin.Context) {
	content, fh, ok := readAudioUpload(c, "AudioHandler.Upload")
	if !ok {
		return
	}

	info, err := h.store.Save(content, fh.Filename)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AudioHandler.Upload", "failed to store audio", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Audio uploaded successfully",
		"data":    info,
	})
}

func (h *AudioHandler) Transcribe(c *gin.Context) {
	content, _, ok := readAudioUpload(c, "AudioHandler.Transcribe")
	if !ok {
		return
	}

	result := h.audio.Transcribe(c.Request.Context(), content, c.PostForm("language"))

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"transcription": result.Text,
		"duration":      result.DurationSeconds,
		"confidence":    result.Confidence,
		"source":        result.Source,
	})
}

// Analyze transcribes the upload and returns delivery metrics only, for
// callers that want pacing and clarity feedback without a content score.
func (h *AudioHandler) Analyze(c *gin.Context) {
	content, _, ok := readAudioUpload(c, "AudioHandler.Analyze")
	if !ok {
		return
	}

	transcription := h.audio.Transcribe(c.Request.Context(), content, c.PostForm("language"))
	analysis := h.audio.AnalyzeDelivery(transcription.Text, transcription.DurationSeconds)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   analysis,
	})
}

// Score transcribes the upload and runs the full spoken-answer scoring
// pipeline against the supplied question.
func (h *AudioHandler) Score(c *gin.Context) {
	const op = "AudioHandler.Score"

	question := c.PostForm("question")
	if question == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "question is required", nil))
		return
	}
	role := c.PostForm("role")
	if role == "" {
		role = "Software Engineer"
	}
	level := c.PostForm("experience_level")
	if level == "" {
		level = "mid"
	}
	// The scoring pipeline absorbs evaluator errors into its fallback, so
	// a bad level must be rejected before it gets that far.
	if !models.ValidLevel(level) {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "experience_level must be 'junior', 'mid', or 'senior'", nil))
		return
	}

	content, _, ok := readAudioUpload(c, op)
	if !ok {
		return
	}

	transcription := h.audio.Transcribe(c.Request.Context(), content, c.PostForm("language"))
	score := h.audio.ScoreSpokenAnswer(c.Request.Context(), transcription.Text, question, role, level, transcription.DurationSeconds)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   score,
	})
}
