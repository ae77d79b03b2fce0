package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/farahcakes/bakery-engine/internal/config"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

const (
	maxWidth    = 800
	jpegQuality = 70
)

// Optimizer shrinks uploaded cake photos for storefront display: scaled to a
// bounded width, flattened onto white, re-encoded as JPEG. With a media
// bucket configured the result is uploaded to S3; otherwise it is returned
// inline as a data URL so uploads keep working without object storage.
type Optimizer struct {
	s3Config *config.S3Config
	s3Client *s3.Client
	logger   *logger.Logger
}

func NewOptimizer(s3Config *config.S3Config, s3Client *s3.Client, logger *logger.Logger) *Optimizer {
	return &Optimizer{
		s3Config: s3Config,
		s3Client: s3Client,
		logger:   logger,
	}
}

// Optimize compresses the uploaded image and returns a URL for it.
func (o *Optimizer) Optimize(ctx context.Context, data []byte) (string, error) {
	compressed, err := compress(data)
	if err != nil {
		return "", fmt.Errorf("failed to optimize image: %w", err)
	}

	if o.s3Client != nil && o.s3Config.Enabled() {
		key := "images/" + uuid.New().String() + ".jpg"
		_, err := o.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(o.s3Config.BucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(compressed),
			ContentType: aws.String("image/jpeg"),
		})
		if err != nil {
			// Inline fallback keeps the upload usable when the bucket is down.
			o.logger.Warn("failed to upload image to S3, falling back to data URL", zap.Error(err))
			return dataURL(compressed), nil
		}
		return o.s3Config.ObjectURL(key), nil
	}

	return dataURL(compressed), nil
}

func compress(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > maxWidth {
		height = height * maxWidth / width
		width = maxWidth
	}
	if height < 1 {
		height = 1
	}

	// White backdrop so transparent PNG regions do not turn black in JPEG.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func dataURL(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
