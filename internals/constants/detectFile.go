package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindAudio    = "audio"
	FileKindDocument = "document"
	FileKindPDF      = "pdf"
	FileKindSlides   = "slides"
	FileKindImage    = "image"
	FileKindOther    = "other"
)

func DetectFileKindFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav", ".m4a":
		return FileKindAudio
	case ".doc", ".docx", ".odt", ".txt":
		return FileKindDocument
	case ".pdf":
		return FileKindPDF
	case ".ppt", ".pptx":
		return FileKindSlides
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileKindImage
	default:
		return FileKindOther
	}
}
