package domain

import "mime/multipart"

const (
	// PostImageDir is the directory inside the media dir where attached post
	// pictures are stored.
	PostImageDir = "posts"
	// MaxUploadSize determines the maximum filesize of an image to be uploaded.
	MaxUploadSize int64 = 5 << 20 // 5 Megabyte
)

// Image represents a picture attached to a post. Images are only stored as
// files in the filesystem, the posts table holds the relative path inside the
// media directory. File contains the actual image file to be stored.
type Image struct {
	File        multipart.File
	Filename    string
	Extension   string
	ContentType string
}

// ImageService is a set of methods to validate and store uploaded image files.
type ImageService interface {
	// Create validates and stores the image, returning its path relative to
	// the media directory.
	Create(img *Image) (string, error)
	Delete(relPath string) error
}
