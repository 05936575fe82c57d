package utils

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"github.com/oklog/ulid/v2"
	_ "golang.org/x/image/webp"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrNotAnImage      = errors.New("uploaded file is not an image")
	ErrUndecodableData = errors.New("frame data cannot be decoded")
)

const (
	defaultMaxFileSize  = 5 * 1024 * 1024
	defaultMaxDimension = 1280
	defaultMaxPixels    = 4096 * 4096
	detectorJPEGQuality = 90
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadFile(file multipart.File) ([]byte, error)
	DecodeBase64Frame(encoded string) ([]byte, error)
	DecodeFrame(frame []byte) (image.Image, error)
	PrepareDetectorFrame(img image.Image) ([]byte, error)
	MaxFileSize() int64
}

type utils struct {
	maxFileSize  int64
	maxDimension uint
	maxPixels    int64
}

func New() IUtils {
	u := &utils{
		maxFileSize:  defaultMaxFileSize,
		maxDimension: defaultMaxDimension,
		maxPixels:    defaultMaxPixels,
	}

	if v, err := strconv.ParseInt(os.Getenv("MAX_FRAME_SIZE"), 10, 64); err == nil && v > 0 {
		u.maxFileSize = v
	}
	if v, err := strconv.ParseUint(os.Getenv("MAX_FRAME_DIMENSION"), 10, 32); err == nil && v > 0 {
		u.maxDimension = uint(v)
	}
	if v, err := strconv.ParseInt(os.Getenv("MAX_FRAME_PIXELS"), 10, 64); err == nil && v > 0 {
		u.maxPixels = v
	}

	return u
}

func (u *utils) MaxFileSize() int64 {
	return u.maxFileSize
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") && contentType != "application/octet-stream" {
		return ErrNotAnImage
	}

	return nil
}

func (u *utils) ReadFile(file multipart.File) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, u.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// DecodeBase64Frame accepts plain base64 or a data URL such as the one a
// browser canvas produces.
func (u *utils) DecodeBase64Frame(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableData, err)
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// DecodeFrame decodes a JPEG, PNG or WebP frame into pixels. The header is
// read first so frames above MAX_FRAME_PIXELS are refused before any pixel
// buffer is allocated.
func (u *utils) DecodeFrame(frame []byte) (image.Image, error) {
	if len(frame) == 0 {
		return nil, ErrUndecodableData
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableData, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > u.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUndecodableData, cfg.Width, cfg.Height, u.maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableData, err)
	}
	if img.Bounds().Empty() {
		return nil, ErrUndecodableData
	}

	return img, nil
}

// PrepareDetectorFrame shrinks the frame so its longer side fits the
// configured maximum and encodes it as JPEG. Landmarks come back normalized,
// so scaling does not affect them.
func (u *utils) PrepareDetectorFrame(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	if uint(bounds.Dx()) > u.maxDimension || uint(bounds.Dy()) > u.maxDimension {
		img = resize.Thumbnail(u.maxDimension, u.maxDimension, img, resize.Bilinear)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: detectorJPEGQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
