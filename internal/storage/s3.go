package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/fisiogest/physio-scheduler/internal/config"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
)

const maxAvatarSide = 512

// Uploader guarda avatares en S3 re-codificados a WebP
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	if cfg.S3Bucket == "" {
		return &Uploader{}
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &Uploader{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}
}

func (u *Uploader) Enabled() bool {
	return u != nil && u.client != nil
}

// UploadAvatar decodifica la imagen (png/jpeg), la reduce a 512px como
// máximo, la codifica en WebP y la sube. Devuelve la URL pública.
func (u *Uploader) UploadAvatar(
	ctx context.Context,
	therapistID uuid.UUID,
	r io.Reader,
) (string, error) {

	if !u.Enabled() {
		return "", httperr.ErrBusiness("storage_not_configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	img := downscale(src, maxAvatarSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s.webp", therapistID)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}

func downscale(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxSide && h <= maxSide {
		return src
	}

	if w > h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
