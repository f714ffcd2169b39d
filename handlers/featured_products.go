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

const featuredProductsFolder = "featured-products"

func GetAllFeaturedProducts(c echo.Context) error {
	collection := database.DB.Collection("featuredproducts")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch featured products"})
	}
	defer cursor.Close(ctx)

	products := []models.FeaturedProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch featured products"})
	}

	return c.JSON(http.StatusOK, products)
}

func GetFeaturedProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid featured product ID"})
	}

	var product models.FeaturedProduct
	err = database.DB.Collection("featuredproducts").FindOne(c.Request().Context(), bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Featured product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch featured product"})
	}

	return c.JSON(http.StatusOK, product)
}

func CreateFeaturedProduct(c echo.Context) error {
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

	assets, err := uploadProductImages(ctx, c, featuredProductsFolder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload images"})
	}
	if _, ok := assets["mainImage"]; !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "mainImage file is required"})
	}

	product := models.FeaturedProduct{
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

	if _, err := database.DB.Collection("featuredproducts").InsertOne(ctx, product); err != nil {
		for field, asset := range assets {
			if cleanupErr := utils.DestroyImage(ctx, asset.PublicID); cleanupErr != nil {
				log.Printf("Failed to clean up featured product %s asset %s: %v", field, asset.PublicID, cleanupErr)
			}
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create featured product"})
	}

	return c.JSON(http.StatusCreated, product)
}

func UpdateFeaturedProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid featured product ID"})
	}

	if form, err := c.MultipartForm(); err == nil {
		defer form.RemoveAll()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	collection := database.DB.Collection("featuredproducts")

	var product models.FeaturedProduct
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Featured product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch featured product"})
	}

	assets, err := uploadProductImages(ctx, c, featuredProductsFolder)
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
	assign("mainImage", &product.MainImage)
	assign("image1", &product.Image1)
	assign("image2", &product.Image2)
	assign("image3", &product.Image3)

	if name := c.FormValue("name"); name != "" {
		product.Name = name
	}
	if description := c.FormValue("description"); description != "" {
		product.Description = description
	}
	if category := c.FormValue("category"); category != "" {
		product.Category = category
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "price must be a number"})
		}
		product.Price = price
	}
	product.UpdatedAt = time.Now()

	// Old assets go only after the replacement is durably recorded.
	err = saveThenReleaseAssets(ctx, func(ctx context.Context) error {
		_, err := collection.ReplaceOne(ctx, bson.M{"_id": objID}, product)
		return err
	}, replaced, utils.DestroyImage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update featured product"})
	}

	return c.JSON(http.StatusOK, product)
}

func DeleteFeaturedProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid featured product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	collection := database.DB.Collection("featuredproducts")

	var product models.FeaturedProduct
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Featured product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch featured product"})
	}

	for _, asset := range []models.ImageAsset{product.MainImage, product.Image1, product.Image2, product.Image3} {
		if asset.PublicID == "" {
			continue
		}
		if err := utils.DestroyImage(ctx, asset.PublicID); err != nil {
			log.Printf("Failed to release featured product asset %s: %v", asset.PublicID, err)
		}
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete featured product"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Featured product deleted successfully"})
}
