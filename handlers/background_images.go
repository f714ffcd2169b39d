package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neonglow/neonglow-backend-go/database"
	"github.com/neonglow/neonglow-backend-go/models"
	"github.com/neonglow/neonglow-backend-go/utils"
)

const backgroundImagesFolder = "background-images"

func GetAllBackgroundImages(c echo.Context) error {
	collection := database.DB.Collection("backgroundimages")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch background images"})
	}
	defer cursor.Close(ctx)

	images := []models.BackgroundImage{}
	if err := cursor.All(ctx, &images); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch background images"})
	}

	return c.JSON(http.StatusOK, images)
}

func GetBackgroundImage(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid background image ID"})
	}

	var image models.BackgroundImage
	err = database.DB.Collection("backgroundimages").FindOne(c.Request().Context(), bson.M{"_id": objID}).Decode(&image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Background image not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch background image"})
	}

	return c.JSON(http.StatusOK, image)
}

func CreateBackgroundImage(c echo.Context) error {
	if form, err := c.MultipartForm(); err == nil {
		defer form.RemoveAll()
	}

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

	url, publicID, err := utils.UploadImage(ctx, src, backgroundImagesFolder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload image"})
	}

	name := c.FormValue("name")
	if name == "" {
		name = "Untitled"
	}

	image := models.BackgroundImage{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Category:     c.FormValue("category"),
		Description:  c.FormValue("description"),
		ImageURL:     url,
		CloudinaryID: publicID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := database.DB.Collection("backgroundimages").InsertOne(ctx, image); err != nil {
		if cleanupErr := utils.DestroyImage(ctx, publicID); cleanupErr != nil {
			log.Printf("Failed to clean up background image asset %s: %v", publicID, cleanupErr)
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create background image"})
	}

	return c.JSON(http.StatusCreated, image)
}

func UpdateBackgroundImage(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid background image ID"})
	}

	if form, err := c.MultipartForm(); err == nil {
		defer form.RemoveAll()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	collection := database.DB.Collection("backgroundimages")

	var image models.BackgroundImage
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&image); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Background image not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch background image"})
	}

	replaced := []string{}
	if header, err := c.FormFile("image"); err == nil {
		src, err := header.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read image file"})
		}
		url, publicID, err := utils.UploadImage(ctx, src, backgroundImagesFolder)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload image"})
		}
		replaced = append(replaced, image.CloudinaryID)
		image.ImageURL = url
		image.CloudinaryID = publicID
	}

	if name := c.FormValue("name"); name != "" {
		image.Name = name
	}
	if category := c.FormValue("category"); category != "" {
		image.Category = category
	}
	if description := c.FormValue("description"); description != "" {
		image.Description = description
	}
	image.UpdatedAt = time.Now()

	// Release the replaced asset only once the new one is durably recorded.
	err = saveThenReleaseAssets(ctx, func(ctx context.Context) error {
		_, err := collection.ReplaceOne(ctx, bson.M{"_id": objID}, image)
		return err
	}, replaced, utils.DestroyImage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update background image"})
	}

	return c.JSON(http.StatusOK, image)
}

func DeleteBackgroundImage(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid background image ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	collection := database.DB.Collection("backgroundimages")

	var image models.BackgroundImage
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&image); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Background image not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch background image"})
	}

	// Best-effort asset release; a failure never blocks document removal.
	if image.CloudinaryID != "" {
		if err := utils.DestroyImage(ctx, image.CloudinaryID); err != nil {
			log.Printf("Failed to release background image asset %s: %v", image.CloudinaryID, err)
		}
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete background image"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Background image deleted successfully"})
}
