package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// ImageStorage uploads catalog images and hands back public URLs.
// Two backends are supported: Cloudflare R2 over the S3 API (default)
// and GCS. STORAGE_BACKEND selects one at startup.
type ImageStorage interface {
	Upload(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error)
}

// NewImageStorage picks the backend from STORAGE_BACKEND ("r2" or "gcs").
func NewImageStorage(ctx context.Context) (ImageStorage, error) {
	switch strings.ToLower(os.Getenv("STORAGE_BACKEND")) {
	case "", "r2":
		return newR2Storage(ctx)
	case "gcs":
		return newGCSStorage(ctx)
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", os.Getenv("STORAGE_BACKEND"))
	}
}

func objectName(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UTC().Unix(), uuid.New().String(), ext)
}

func contentTypeFor(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

// R2Storage wraps the S3 client + bucket name. Public URLs use the R2
// public domain set via R2_PUBLIC_DOMAIN.
type R2Storage struct {
	S3           *s3.Client
	Bucket       string
	PublicDomain string
}

func newR2Storage(ctx context.Context) (*R2Storage, error) {
	bucket := os.Getenv("R2_BUCKET")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("R2_ENDPOINT") // https://<account-id>.r2.cloudflarestorage.com

	if bucket == "" || accessKey == "" || secretKey == "" || endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Storage{
		S3:           client,
		Bucket:       bucket,
		PublicDomain: strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
	}, nil
}

func (r *R2Storage) Upload(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, fh := range files {
		name := objectName(prefix, fh.Filename)

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}

		_, err = r.S3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(r.Bucket),
			Key:         aws.String(name),
			Body:        f,
			ContentType: aws.String(contentTypeFor(fh)),
		})
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}

		urls = append(urls, fmt.Sprintf("%s/%s", r.PublicDomain, name))
	}

	return urls, nil
}

type GCSStorage struct {
	Client *storage.Client
	Bucket string
}

func newGCSStorage(ctx context.Context) (*GCSStorage, error) {
	bucket := os.Getenv("GCS_BUCKET")
	credentialsPath := os.Getenv("CREDENTIALS_FILE_LOCATION")
	if bucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET env var")
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSStorage{Client: client, Bucket: bucket}, nil
}

func (g *GCSStorage) Upload(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, fh := range files {
		name := objectName(prefix, fh.Filename)

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}

		w := g.Client.Bucket(g.Bucket).Object(name).NewWriter(ctx)
		w.ContentType = contentTypeFor(fh)
		w.CacheControl = "no-cache"

		if _, err := io.Copy(w, f); err != nil {
			_ = f.Close()
			_ = w.Close()
			return nil, fmt.Errorf("upload copy: %w", err)
		}
		_ = f.Close()

		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("upload close: %w", err)
		}

		urls = append(urls, fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.Bucket, name))
	}

	return urls, nil
}

// FileValidator rejects uploads that are too large or are not images,
// sniffing the real content type rather than trusting the extension.
type FileValidator struct {
	allowedExt  map[string]bool
	allowedMime map[string]bool
	maxSize     int64
	maxCount    int
}

func NewImageValidator() *FileValidator {
	allowedExt := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if raw := os.Getenv("ALLOWED_FILE_EXTENSIONS"); raw != "" {
		allowedExt = map[string]bool{}
		for _, ext := range strings.Split(raw, ",") {
			if ext = strings.TrimSpace(strings.ToLower(ext)); ext != "" {
				allowedExt[ext] = true
			}
		}
	}

	allowedMime := map[string]bool{"image/jpeg": true, "image/png": true, "image/webp": true}
	if raw := os.Getenv("ALLOWED_FILE_MIME_TYPES"); raw != "" {
		allowedMime = map[string]bool{}
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(strings.ToLower(m)); m != "" {
				allowedMime[m] = true
			}
		}
	}

	sizeMB := 5
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			sizeMB = parsed
		}
	}

	return &FileValidator{
		allowedExt:  allowedExt,
		allowedMime: allowedMime,
		maxSize:     int64(sizeMB) << 20,
		maxCount:    ParseIntDefault(os.Getenv("MAX_IMAGES_PER_UPLOAD"), 4),
	}
}

func (v *FileValidator) ValidateFiles(files []*multipart.FileHeader) error {
	if len(files) < 1 || len(files) > v.maxCount {
		return fmt.Errorf("images must be 1 to %d", v.maxCount)
	}
	for _, fh := range files {
		if _, err := v.validateFile(fh); err != nil {
			return fmt.Errorf("%s: %w", fh.Filename, err)
		}
	}
	return nil
}

func (v *FileValidator) validateFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("file too large (max %d MB)", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err = file.Read(buffer); err != nil {
		return "", fmt.Errorf("failed to read file header")
	}
	if _, err = file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to reset file reader")
	}

	detectedMime := strings.ToLower(http.DetectContentType(buffer))
	if i := strings.Index(detectedMime, ";"); i >= 0 {
		detectedMime = detectedMime[:i]
	}
	if !v.allowedMime[detectedMime] {
		return "", fmt.Errorf("invalid file type")
	}

	return detectedMime, nil
}
