package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/neonglow/neonglow-backend-go/models"
	"github.com/neonglow/neonglow-backend-go/utils"
)

// productImageFields are the fixed multipart fields catalog products accept.
var productImageFields = []string{"mainImage", "image1", "image2", "image3"}

// sniffMIME prefers the declared part content type and falls back to
// sniffing the first 512 bytes, resetting the reader afterwards.
func sniffMIME(file multipart.File, header *multipart.FileHeader) (string, error) {
	if declared := header.Header.Get("Content-Type"); declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek reset: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// parseFileKey splits an indexed form field like "addOnFiles[2]" or
// "addOnFiles[flowers]" into its group and token.
func parseFileKey(name string) (group, token string, ok bool) {
	open := strings.Index(name, "[")
	if open <= 0 || !strings.HasSuffix(name, "]") {
		return "", "", false
	}
	group = name[:open]
	token = name[open+1 : len(name)-1]
	if token == "" {
		return "", "", false
	}
	return group, token, true
}

// uploadIndexedFiles pushes every recognized indexed file field to the
// remote store and returns the resulting locator set.
func uploadIndexedFiles(ctx context.Context, form *multipart.Form, folder string, groups map[string]bool) (uploadedFileSet, error) {
	files := make(uploadedFileSet)
	for name, headers := range form.File {
		group, token, ok := parseFileKey(name)
		if !ok || !groups[group] || len(headers) == 0 {
			continue
		}

		src, err := headers[0].Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		mimeType, err := sniffMIME(src, headers[0])
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("sniff %s: %w", name, err)
		}
		url, publicID, err := utils.UploadImage(ctx, src, folder)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}

		files.add(group, token, uploadedFile{URL: url, PublicID: publicID, MimeType: mimeType})
	}
	return files, nil
}

// saveThenReleaseAssets persists a document and only then destroys the
// assets it replaced. A failed save keeps every old asset reachable; a
// failed destroy is logged and never surfaces to the caller.
func saveThenReleaseAssets(ctx context.Context, save func(context.Context) error, replaced []string, destroy func(context.Context, string) error) error {
	if err := save(ctx); err != nil {
		return err
	}
	for _, publicID := range replaced {
		if publicID == "" {
			continue
		}
		if err := destroy(ctx, publicID); err != nil {
			log.Printf("Failed to release replaced asset %s: %v", publicID, err)
		}
	}
	return nil
}

// releaseUploadedFiles best-effort destroys files staged for a request that
// failed before persisting them.
func releaseUploadedFiles(ctx context.Context, files uploadedFileSet, destroy func(context.Context, string) error) {
	for group, byToken := range files {
		for token, f := range byToken {
			if f.PublicID == "" {
				continue
			}
			if err := destroy(ctx, f.PublicID); err != nil {
				log.Printf("Failed to clean up staged %s[%s] asset %s: %v", group, token, f.PublicID, err)
			}
		}
	}
}

// uploadProductImages pushes whichever of the fixed product image fields are
// present to the remote store and returns their locators by field name.
func uploadProductImages(ctx context.Context, c echo.Context, folder string) (map[string]models.ImageAsset, error) {
	assets := make(map[string]models.ImageAsset)
	for _, field := range productImageFields {
		header, err := c.FormFile(field)
		if err != nil {
			continue
		}
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", field, err)
		}
		url, publicID, err := utils.UploadImage(ctx, src, folder)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", field, err)
		}
		assets[field] = models.ImageAsset{URL: url, PublicID: publicID}
	}
	return assets, nil
}
