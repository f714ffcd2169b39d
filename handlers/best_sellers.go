package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
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

const bestSellersFolder = "bestseller-products"

func GetAllBestSellers(c echo.Context) error {
	collection := database.DB.Collection("bestsellers")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch best sellers"})
	}
	defer cursor.Close(ctx)

	bestSellers := []models.BestSeller{}
	if err := cursor.All(ctx, &bestSellers); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch best sellers"})
	}

	return c.JSON(http.StatusOK, bestSellers)
}

func GetBestSeller(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid best seller ID"})
	}

	var bestSeller models.BestSeller
	err = database.DB.Collection("bestsellers").FindOne(c.Request().Context(), bson.M{"_id": objID}).Decode(&bestSeller)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Best seller not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch best seller"})
	}

	return c.JSON(http.StatusOK, bestSeller)
}

func CreateBestSeller(c echo.Context) error {
	if form, err := c.MultipartForm(); err == nil {
		defer form.RemoveAll()
	}

	name := c.FormValue("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name is required"})
	}

	price := 0.0
	if raw := c.FormValue("price"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "price must be a number"})
		}
		price = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	assets, err := uploadProductImages(ctx, c, bestSellersFolder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload images"})
	}
	if _, ok := assets["mainImage"]; !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "mainImage file is required"})
	}

	bestSeller := models.BestSeller{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: c.FormValue("description"),
		Price:       price,
		Category:    c.FormValue("category"),
		MainImage:   assets["mainImage"],
		Image1:      assets["image1"],
		Image2:      assets["image2"],
		Image3:      assets["image3"],
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := database.DB.Collection("bestsellers").InsertOne(ctx, bestSeller); err != nil {
		for field, asset := range assets {
			if cleanupErr := utils.DestroyImage(ctx, asset.PublicID); cleanupErr != nil {
				log.Printf("Failed to clean up best seller %s asset %s: %v", field, asset.PublicID, cleanupErr)
			}
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create best seller"})
	}

	return c.JSON(http.StatusCreated, bestSeller)
}

func UpdateBestSeller(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid best seller ID"})
	}

	if form, err := c.MultipartForm(); err == nil {
		defer form.RemoveAll()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	collection := database.DB.Collection("bestsellers")

	var bestSeller models.BestSeller
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&bestSeller); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Best seller not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch best seller"})
	}

	assets, err := uploadProductImages(ctx, c, bestSellersFolder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload images"})
	}

	replaced := []string{}
	assign := func(field string, current *models.ImageAsset) {
		if asset, ok := assets[field]; ok {
			replaced = append(replaced, current.PublicID)
			*current = asset
		}
	}
	assign("mainImage", &bestSeller.MainImage)
	assign("image1", &bestSeller.Image1)
	assign("image2", &bestSeller.Image2)
	assign("image3", &bestSeller.Image3)

	if name := c.FormValue("name"); name != "" {
		bestSeller.Name = name
	}
	if description := c.FormValue("description"); description != "" {
		bestSeller.Description = description
	}
	if category := c.FormValue("category"); category != "" {
		bestSeller.Category = category
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "price must be a number"})
		}
		bestSeller.Price = price
	}
	bestSeller.UpdatedAt = time.Now()

	// Old assets go only after the replacement is durably recorded.
	err = saveThenReleaseAssets(ctx, func(ctx context.Context) error {
		_, err := collection.ReplaceOne(ctx, bson.M{"_id": objID}, bestSeller)
		return err
	}, replaced, utils.DestroyImage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update best seller"})
	}

	return c.JSON(http.StatusOK, bestSeller)
}

func DeleteBestSeller(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid best seller ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	collection := database.DB.Collection("bestsellers")

	var bestSeller models.BestSeller
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&bestSeller); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Best seller not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch best seller"})
	}

	for _, asset := range []models.ImageAsset{bestSeller.MainImage, bestSeller.Image1, bestSeller.Image2, bestSeller.Image3} {
		if asset.PublicID == "" {
			continue
		}
		if err := utils.DestroyImage(ctx, asset.PublicID); err != nil {
			log.Printf("Failed to release best seller asset %s: %v", asset.PublicID, err)
		}
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete best seller"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Best seller deleted successfully"})
}
