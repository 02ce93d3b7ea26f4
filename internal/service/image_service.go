package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"

	"globetrotter/internal/config"
	"globetrotter/internal/models"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir       = "/tmp/globetrotter/uploads"
	DefaultMaxUploadSizeMB = 5
	// Profile pictures and trip covers never need more than this.
	MaxImageDimension = 1024
	JPEGQuality       = 82
)

// ImageService normalizes uploaded images (profile pictures, trip covers):
// validates, downscales, re-encodes as JPEG, and stores under uploadDir.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

type StoreImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxSizeMB > 0 {
			maxUploadSizeMB = cfg.UploadMaxSizeMB
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Store validates and persists an uploaded image, returning the public URL
// path it will be served from.
func (s *ImageService) Store(in StoreImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detected := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detected) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	normalized := resizeToFit(decoded, MaxImageDimension, MaxImageDimension)
	encoded, err := encodeJPEG(normalized, JPEGQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ".jpg"
	if err := writeBytesToFile(filepath.Join(s.uploadDir, name), encoded); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/uploads/" + name, nil
}

// UploadDir exposes the storage root for static file serving.
func (s *ImageService) UploadDir() string {
	return s.uploadDir
}

func isAllowedImageMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
