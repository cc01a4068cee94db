// Package blob holds what the blob store backends share: object key rules
// and the paths used for envelope artifacts.
package blob

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// ErrInvalidKey is returned for keys that are empty, absolute or escape
// the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// CleanKey normalizes a slash-separated object key and rejects keys that
// could address anything outside the store.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}

// SignedArtifactKey is the storage path of a sealed PDF. Every attempt gets
// its own key so a retried seal never overwrites an earlier upload.
func SignedArtifactKey(companyID, requestID string, at time.Time) string {
	return fmt.Sprintf("%s/%s/signed-%d.pdf", companyID, requestID, at.Unix())
}

// TemplatePrefix is the directory holding a company's uploaded templates.
func TemplatePrefix(companyID string) string {
	return companyID + "/templates/"
}

// TemplateKey is the storage path of an uploaded template.
func TemplateKey(companyID, templateID string) string {
	return TemplatePrefix(companyID) + templateID + ".pdf"
}

// TemplateRefPrefix marks a template URL that points into the blob store
// rather than at an external HTTP location.
const TemplateRefPrefix = "blob:"

// ParseTemplateRef returns the key behind a "blob:<key>" reference and
// whether ref is one.
func ParseTemplateRef(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, TemplateRefPrefix)
	if !ok {
		return "", false
	}
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", false
	}
	return cleaned, true
}
