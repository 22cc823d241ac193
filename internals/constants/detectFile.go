package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeAudio        = "AUDIO"
	FileTypeDocument     = "DOCUMENT"
	FileTypePDF          = "PDF"
	FileTypePresentation = "PRESENTATION"
	FileTypeSpreadsheet  = "SPREADSHEET"
	FileTypeImage        = "IMAGE"
	FileTypeOther        = "OTHER"
)

func DetectFileTypeFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".mp3", ".wav", ".m4a", ".ogg":
		return FileTypeAudio
	case ".doc", ".docx", ".txt":
		return FileTypeDocument
	case ".pdf":
		return FileTypePDF
	case ".ppt", ".pptx":
		return FileTypePresentation
	case ".xls", ".xlsx", ".csv":
		return FileTypeSpreadsheet
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileTypeImage
	default:
		return FileTypeOther
	}
}
