// Package upload reads the ID-card image from a form submission and
// normalises it before it is forwarded to the gateway for OCR.
package upload

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // register decoder
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

const (
	// DefaultMaxBytes caps an uploaded scan.
	DefaultMaxBytes = 10 << 20
	// DefaultMaxDimension is the longest edge kept before downscaling.
	DefaultMaxDimension = 2400

	jpegQuality = 90
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("uploaded file is too large")
	ErrInvalidForm     = errors.New("invalid upload form")
)

// Allowed lists the accepted image types.
var Allowed = []string{"image/jpeg", "image/png", "image/webp"}

// FromRequest reads the named multipart file. A missing or empty file is not
// an error here: it yields a nil upload, and the caller decides how to
// report the omission.
func FromRequest(r *http.Request, field string, maxBytes int64) (*domain.Upload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := r.ParseMultipartForm(maxBytes + (2 << 20)); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.Errorf("%v: %w", err, ErrInvalidForm)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.Errorf("%v: %w", err, ErrInvalidForm)
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read uploaded file")
	}
	if int64(len(raw)) > maxBytes {
		return nil, ErrTooLarge
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return &domain.Upload{
		Filename:    strings.TrimSpace(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        raw,
	}, nil
}

// Normalize checks the content type by sniffing the bytes and re-encodes the
// image as JPEG when it is WebP or larger than maxDim on its longest edge.
// JPEG and PNG files within bounds pass through untouched.
func Normalize(u *domain.Upload, maxDim int) (*domain.Upload, error) {
	if u.Empty() {
		return u, nil
	}
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	mt := mimetype.Detect(u.Data)
	if !mimetype.EqualsAny(mt.String(), Allowed...) {
		return nil, errors.Wrap(ErrUnsupportedType, mt.String())
	}

	cfg, err := decodeConfig(u.Data, mt.String())
	if err != nil {
		return nil, errors.Wrap(err, "decode image header")
	}
	if mt.Is("image/webp") || cfg.Width > maxDim || cfg.Height > maxDim {
		return reencode(u, mt.String(), maxDim)
	}

	out := *u
	out.ContentType = mt.String()
	if out.Filename == "" {
		out.Filename = "id-card" + mt.Extension()
	}
	return &out, nil
}

func decodeConfig(data []byte, mime string) (image.Config, error) {
	if mime == "image/webp" {
		return webp.DecodeConfig(bytes.NewReader(data))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	return cfg, err
}

func decode(data []byte, mime string) (image.Image, error) {
	if mime == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func reencode(u *domain.Upload, mime string, maxDim int) (*domain.Upload, error) {
	src, err := decode(u.Data, mime)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	w, h := Fit(src.Bounds().Dx(), src.Bounds().Dy(), maxDim)
	if w <= 0 || h <= 0 {
		return nil, errors.New("invalid image dimensions")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	name := strings.TrimSuffix(u.Filename, filepath.Ext(u.Filename))
	if name == "" {
		name = "id-card"
	}
	return &domain.Upload{Filename: name + ".jpg", ContentType: "image/jpeg", Data: buf.Bytes()}, nil
}

// Fit scales (w, h) down so that neither edge exceeds maxDim, keeping the
// aspect ratio. Sizes already inside the box are returned unchanged.
func Fit(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
