package utils

import (
	"context"
	"errors"
	"io"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/neonglow/neonglow-backend-go/config"
)

var cld *cloudinary.Cloudinary

// InitCloudinary configures the remote image store client from the
// environment. Credentials are required; there is no degraded mode.
func InitCloudinary() error {
	c, err := cloudinary.NewFromParams(
		config.MustGetEnv("CLOUDINARY_CLOUD_NAME"),
		config.MustGetEnv("CLOUDINARY_API_KEY"),
		config.MustGetEnv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return err
	}
	cld = c
	log.Println("☁️ Cloudinary configured")
	return nil
}

// UploadImage pushes a staged file to the remote store under the given folder
// and returns the serving URL plus the public id needed to release it later.
func UploadImage(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
		UseFilename:  api.Bool(true),
	})
	if err != nil {
		return "", "", err
	}
	if result.Error.Message != "" {
		return "", "", errors.New(result.Error.Message)
	}
	return result.SecureURL, result.PublicID, nil
}

// DestroyImage releases a remote asset. Destroying an already-deleted asset
// is treated as success; the remote side is idempotent about it.
func DestroyImage(ctx context.Context, publicID string) error {
	result, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return errors.New("cloudinary destroy failed: " + result.Result)
	}
	return nil
}

var uploadVersionRe = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL derives the public id from a Cloudinary delivery URL, for
// documents that stored only the URL. Returns "" for foreign URLs, which are
// not ours to delete.
func PublicIDFromURL(rawURL string) string {
	if !strings.Contains(rawURL, "res.cloudinary.com") {
		return ""
	}
	idx := strings.Index(rawURL, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimPrefix(rawURL[idx+len("/upload/"):], "/")
	parts := strings.Split(rest, "/")
	if len(parts) > 0 && uploadVersionRe.MatchString(parts[0]) {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return ""
	}
	publicID := strings.Join(parts, "/")
	if ext := path.Ext(publicID); ext != "" {
		publicID = strings.TrimSuffix(publicID, ext)
	}
	return publicID
}
