package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tastemapapp/tastemap-server/internal/errors"
)

func setupProcessor(t *testing.T) (*Processor, *Storage) {
	t.Helper()

	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProcessor(storage, logger), storage
}

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessResizesWideImages(t *testing.T) {
	p, storage := setupProcessor(t)

	result, err := p.Process("image/png", bytes.NewReader(encodeTestPNG(t, 1600, 1200)))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.Filename, ".jpg"))
	assert.NotEmpty(t, result.BlurHash)

	data, err := storage.Get(result.Filename)
	require.NoError(t, err)

	stored, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, stored.Bounds().Dx())
	assert.Equal(t, 600, stored.Bounds().Dy(), "aspect ratio must be preserved")
}

func TestProcessKeepsSmallImages(t *testing.T) {
	p, storage := setupProcessor(t)

	result, err := p.Process("image/png", bytes.NewReader(encodeTestPNG(t, 400, 300)))
	require.NoError(t, err)

	data, err := storage.Get(result.Filename)
	require.NoError(t, err)

	stored, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, stored.Bounds().Dx())
}

func TestProcessRejectsNonImageContentType(t *testing.T) {
	p, _ := setupProcessor(t)

	_, err := p.Process("text/plain", strings.NewReader("hello"))
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestProcessRejectsCorruptImage(t *testing.T) {
	p, _ := setupProcessor(t)

	_, err := p.Process("image/png", strings.NewReader("definitely not a png"))
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestProcessGeneratesUniqueFilenames(t *testing.T) {
	p, _ := setupProcessor(t)

	data := encodeTestPNG(t, 100, 100)

	first, err := p.Process("image/png", bytes.NewReader(data))
	require.NoError(t, err)

	second, err := p.Process("image/png", bytes.NewReader(data))
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}

func TestRemoveIsIdempotent(t *testing.T) {
	p, storage := setupProcessor(t)

	result, err := p.Process("image/png", bytes.NewReader(encodeTestPNG(t, 100, 100)))
	require.NoError(t, err)

	require.NoError(t, p.Remove(result.Filename))
	assert.False(t, storage.Exists(result.Filename))

	// Removing again is fine
	assert.NoError(t, p.Remove(result.Filename))
	assert.NoError(t, p.Remove(""))
}
