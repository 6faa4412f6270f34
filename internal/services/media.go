package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MediaKind classifies a media slot into the image or video bucket.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

var imageURLPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|webp)$`)

// ClassifyURL decides whether an external media URL points at an image or a
// video, by extension with a special case for Google image CDN links.
func ClassifyURL(rawURL string) MediaKind {
	if imageURLPattern.MatchString(rawURL) || strings.Contains(rawURL, "gstatic.com/images") {
		return MediaImage
	}
	return MediaVideo
}

// MediaStore writes uploaded files under a root directory, split into
// image and video buckets.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	for _, bucket := range []string{"images", "videos"} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &MediaStore{root: root}, nil
}

// SaveUpload stores the file in the bucket matching its declared MIME type
// and returns the public path it will be served from. The stored name is
// field-<timestamp><ext> so concurrent uploads cannot collide on the
// original filename.
func (s *MediaStore) SaveUpload(fh *multipart.FileHeader, field string) (string, MediaKind, error) {
	kind, err := kindOf(fh)
	if err != nil {
		return "", "", err
	}

	bucket := "images"
	if kind == MediaVideo {
		bucket = "videos"
	}

	name := fmt.Sprintf("%s-%d%s", field, time.Now().UnixMilli(), filepath.Ext(fh.Filename))
	dst := filepath.Join(s.root, bucket, name)

	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", "", err
	}

	return "/uploads/" + bucket + "/" + name, kind, nil
}

func kindOf(fh *multipart.FileHeader) (MediaKind, error) {
	ct := fh.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage, nil
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo, nil
	default:
		return "", fmt.Errorf("only image or video files are allowed, got %q", ct)
	}
}
