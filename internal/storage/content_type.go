package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectContentType determines the MIME type of an object. The explicitly
// provided type wins; otherwise the key's extension is looked up, falling
// back to a generic binary type.
func DetectContentType(providedType, filename string) string {
	if providedType != "" {
		return providedType
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}

// IsImage reports whether the content type is any image format. Parameters
// such as charset are ignored.
func IsImage(contentType string) bool {
	baseType := strings.Split(contentType, ";")[0]
	baseType = strings.TrimSpace(strings.ToLower(baseType))
	return strings.HasPrefix(baseType, "image/")
}
