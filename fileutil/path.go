package fileutil

import (
	"log"
	"net/url"
	"path"
)

// Join joins path segments in a scheme-aware way, so local paths and URIs
// like s3://bucket/prefix both join correctly.
func Join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	u, err := url.Parse(parts[0])
	if err != nil {
		log.Fatal(err)
	}

	segments := append([]string{u.Path}, parts[1:]...)
	u.Path = path.Join(segments...)
	return u.String()
}
