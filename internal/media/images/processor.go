package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/tastemapapp/tastemap-server/internal/errors"
)

const (
	// Uploads wider than this get scaled down. Height follows the aspect ratio.
	maxPhotoWidth = 800

	jpegQuality = 85

	// Hard cap on upload size before decoding.
	maxUploadBytes = 10 << 20 // 10 MiB
)

// Processor validates, resizes, and stores uploaded place photos.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Result describes a processed photo.
type Result struct {
	Filename string // Stored filename, e.g. "3f1c...d2.jpg"
	BlurHash string // Compact placeholder for clients
}

// Process takes an uploaded image, scales it down to at most maxPhotoWidth
// wide, stores it as JPEG under a random filename, and computes its BlurHash.
// Rejects anything that isn't an image.
func (p *Processor) Process(contentType string, r io.Reader) (*Result, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.Validationf("unsupported file type %q, only images are accepted", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, errors.Validation("image exceeds the 10 MiB upload limit")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Validation("file is not a valid image").WithCause(err)
	}

	resized := resizeToWidth(img, maxPhotoWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}

	filename := uuid.NewString() + ".jpg"
	if err := p.storage.Save(filename, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	hash, err := ComputeBlurHash(resized)
	if err != nil {
		// A photo without a placeholder is still a photo.
		p.logger.Warn("failed to compute blurhash", "filename", filename, "error", err)
		hash = ""
	}

	p.logger.Debug("processed photo upload",
		"filename", filename,
		"format", format,
		"original_bytes", len(data),
		"stored_bytes", buf.Len(),
	)

	return &Result{Filename: filename, BlurHash: hash}, nil
}

// Remove deletes a stored photo. Missing files are not an error.
func (p *Processor) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	return p.storage.Delete(filename)
}
