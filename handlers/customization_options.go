package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neonglow/neonglow-backend-go/database"
	"github.com/neonglow/neonglow-backend-go/models"
	"github.com/neonglow/neonglow-backend-go/utils"
)

const customizationOptionsFolder = "customization-options"

// optionsLocks serializes the diff-then-upsert sequence per productType so
// two concurrent updates cannot both release the same assets or clobber
// each other mid-reconciliation.
var optionsLocks = utils.NewKeyedMutex()

var optionFileGroups = map[string]bool{
	"addOnFiles":       true,
	"backgroundFiles":  true,
	"shapeOptionFiles": true,
}

func GetCustomizationOptions(c echo.Context) error {
	collection := database.DB.Collection("customizationoptions")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch customization options"})
	}
	defer cursor.Close(ctx)

	optionSets := []models.CustomizationOptions{}
	if err := cursor.All(ctx, &optionSets); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch customization options"})
	}

	return c.JSON(http.StatusOK, optionSets)
}

func GetCustomizationOptionsByType(c echo.Context) error {
	productType := c.Param("productType")

	var doc models.CustomizationOptions
	err := database.DB.Collection("customizationoptions").FindOne(
		c.Request().Context(),
		bson.M{"productType": productType, "isActive": true},
	).Decode(&doc)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Customization options not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch customization options"})
	}

	return c.JSON(http.StatusOK, doc)
}

func CreateCustomizationOptions(c echo.Context) error {
	var payload optionsPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	productType := models.ProductType(payload.ProductType)
	if !productType.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product type"})
	}

	unlock := optionsLocks.Lock(string(productType))
	defer unlock()

	collection := database.DB.Collection("customizationoptions")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing := collection.FindOne(ctx, bson.M{"productType": productType})
	if existing.Err() == nil {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Customization options for " + string(productType) + " already exist. Use PUT to update.",
		})
	}

	doc, err := normalizeOptions(productType, &payload, nil)
	if err != nil {
		return validationResponse(c, err)
	}

	doc.IsActive = true
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "Customization options for " + string(productType) + " already exist. Use PUT to update.",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create customization options"})
	}

	return c.JSON(http.StatusCreated, doc)
}

func UpdateCustomizationOptions(c echo.Context) error {
	productType := models.ProductType(c.Param("productType"))
	if !productType.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	var payload optionsPayload
	var form *multipart.Form

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	isMultipart := strings.HasPrefix(contentType, echo.MIMEMultipartForm)
	if isMultipart {
		var err error
		form, err = c.MultipartForm()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid multipart form"})
		}
		defer form.RemoveAll()

		optionsJSON := c.FormValue("options")
		if optionsJSON == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing options field"})
		}
		if err := json.Unmarshal([]byte(optionsJSON), &payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid options JSON"})
		}
	} else {
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
		}
	}

	// Validate the payload before pushing anything to the remote store so a
	// malformed request cannot strand freshly uploaded assets.
	if _, err := normalizeOptions(productType, &payload, nil); err != nil {
		return validationResponse(c, err)
	}

	files := make(uploadedFileSet)
	if isMultipart {
		var err error
		files, err = uploadIndexedFiles(ctx, form, customizationOptionsFolder, optionFileGroups)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload files"})
		}
	}

	unlock := optionsLocks.Lock(string(productType))
	defer unlock()

	collection := database.DB.Collection("customizationoptions")

	var stored *models.CustomizationOptions
	var existing models.CustomizationOptions
	err := collection.FindOne(ctx, bson.M{"productType": productType}).Decode(&existing)
	if err == nil {
		stored = &existing
	} else if err != mongo.ErrNoDocuments {
		releaseUploadedFiles(ctx, files, utils.DestroyImage)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load customization options"})
	}

	doc, err := normalizeOptions(productType, &payload, files)
	if err != nil {
		releaseUploadedFiles(ctx, files, utils.DestroyImage)
		return validationResponse(c, err)
	}

	doc.IsActive = true
	doc.CreatedAt = time.Now()
	if stored != nil {
		doc.IsActive = stored.IsActive
		doc.CreatedAt = stored.CreatedAt
	}
	doc.UpdatedAt = time.Now()

	var persisted models.CustomizationOptions
	err = collection.FindOneAndReplace(
		ctx,
		bson.M{"productType": productType},
		doc,
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&persisted)
	if err != nil {
		releaseUploadedFiles(ctx, files, utils.DestroyImage)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update customization options"})
	}

	// Release dropped assets only after the upsert succeeded, so a failed
	// write never costs remote assets.
	releaseOrphanedAssets(ctx, stored, doc, utils.DestroyImage)

	return c.JSON(http.StatusOK, persisted)
}

func DeleteCustomizationOptions(c echo.Context) error {
	productType := c.Param("productType")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Matching on productType alone keeps the delete idempotent: repeating
	// it on an inactive document still succeeds.
	result := database.DB.Collection("customizationoptions").FindOneAndUpdate(
		ctx,
		bson.M{"productType": productType},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Customization options not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete customization options"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Customization options deleted successfully"})
}

// UploadCustomizationImage pushes a single admin-supplied image to the
// remote store and returns its locator.
func UploadCustomizationImage(c echo.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image file provided"})
	}

	src, err := header.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read image file"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	url, publicID, err := utils.UploadImage(ctx, src, customizationOptionsFolder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload image"})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url, "publicId": publicID})
}

func validationResponse(c echo.Context, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process customization options"})
}
