package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/hirevox/backend/internal/utils"
)

type ResumeService interface {
	// ExtractText pulls plain text out of an uploaded resume. ext is the
	// lowercase file extension including the dot.
	ExtractText(ext string, data []byte) (string, error)
}

type resumeService struct{}

func NewResumeService() ResumeService {
	return &resumeService{}
}

func (s *resumeService) ExtractText(ext string, data []byte) (string, error) {
	const op = "ResumeService.ExtractText"

	if len(data) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}

	switch ext {
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	case ".pdf":
		text, err := extractPDFText(data)
		if err != nil {
			return "", utils.E(utils.CodeInvalidArgument, op, "failed to parse pdf", err)
		}
		return strings.TrimSpace(text), nil
	case ".docx":
		text, err := extractDocxText(data)
		if err != nil {
			return "", utils.E(utils.CodeInvalidArgument, op, "failed to parse docx", err)
		}
		return strings.TrimSpace(text), nil
	default:
		return "", utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("unsupported file type: %s (supported: .pdf, .docx, .txt)", ext), nil)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
