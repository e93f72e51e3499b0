package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hirevox/backend/internal/services"
	"github.com/hirevox/backend/internal/utils"
)

const maxResumeSize = 10 << 20

type ResumeHandler struct {
	resumes services.ResumeService
}

func NewResumeHandler(resumes services.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// Parse extracts the plain text of an uploaded resume (.pdf, .docx, .txt).
func (h *ResumeHandler) Parse(c *gin.Context) {
	const op = "ResumeHandler.Parse"

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > maxResumeSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxResumeSize))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}

	text, err := h.resumes.ExtractText(strings.ToLower(filepath.Ext(fh.Filename)), content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"filename": fh.Filename,
		"text":     text,
	})
}
