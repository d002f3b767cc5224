package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/salonflowpro/salon-api/internal/config"
	"github.com/salonflowpro/salon-api/internal/httperr"
)

const (
	maxAvatarSide = 512
	webpQuality   = 80
)

// AvatarStorage recomprime avatares para webp e publica no bucket S3.
type AvatarStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewAvatarStorage(cfg *config.Config) *AvatarStorage {
	if cfg.S3Bucket == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &AvatarStorage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Upload decodifica a imagem, reduz para no máximo 512px no maior lado,
// converte para webp e devolve a URL pública do objeto.
func (s *AvatarStorage) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	if s == nil {
		return "", httperr.ErrBusiness("storage_not_configured")
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", err
	}

	objectKey := "avatars/" + key + ".webp"

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return s.publicURL + "/" + objectKey, nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxAvatarSide && h <= maxAvatarSide {
		return img
	}

	if w >= h {
		h = h * maxAvatarSide / w
		w = maxAvatarSide
	} else {
		w = w * maxAvatarSide / h
		h = maxAvatarSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
