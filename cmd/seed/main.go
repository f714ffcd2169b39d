// Seeds the default neon and floro customization-option sets so a fresh
// deployment has a working catalog. Product types that already have a
// document are left untouched.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neonglow/neonglow-backend-go/config"
	"github.com/neonglow/neonglow-backend-go/database"
	"github.com/neonglow/neonglow-backend-go/models"
)

func defaultFonts() []models.FontOption {
	return []models.FontOption{
		{Name: "Passionate", Class: "font-dancing-script", Font: "Dancing Script"},
		{Name: "Dreamy", Class: "font-great-vibes", Font: "Great Vibes"},
		{Name: "Flowy", Class: "font-parisienne", Font: "Parisienne"},
		{Name: "Original", Class: "font-fredoka", Font: "Fredoka"},
		{Name: "Classic", Class: "font-georgia", Font: "Georgia"},
		{Name: "Boujee", Class: "font-playfair", Font: "Playfair Display"},
		{Name: "Funky", Class: "font-righteous", Font: "Righteous"},
		{Name: "Chic", Class: "font-poppins", Font: "Poppins"},
		{Name: "Stylish", Class: "font-montserrat", Font: "Montserrat"},
		{Name: "Sassy", Class: "font-lobster", Font: "Lobster"},
		{Name: "DOPE", Class: "font-anton", Font: "Anton"},
		{Name: "Bossy", Class: "font-bebas-neue", Font: "Bebas Neue"},
		{Name: "MODERN", Class: "font-urbanist", Font: "Urbanist"},
	}
}

func defaultSizes() []models.SizeOption {
	return []models.SizeOption{
		{Value: "regular", Name: "Regular", Width: 3, Height: 10, Price: 299},
		{Value: "medium", Name: "Medium", Width: 4, Height: 10, Price: 399},
		{Value: "large", Name: "Large", Width: 5, Height: 10, Price: 499},
	}
}

func neonOptions() models.CustomizationOptions {
	return models.CustomizationOptions{
		ProductType: models.ProductTypeNeon,
		Colors: []models.ColorOption{
			{Name: "Pink", Value: "#ff69b4"},
			{Name: "Gold", Value: "#ffd700"},
			{Name: "Purple", Value: "#9370db"},
			{Name: "Teal", Value: "#00ced1"},
			{Name: "Orange", Value: "#ff7f50"},
			{Name: "Lime", Value: "#32cd32"},
			{Name: "Rainbow", Value: "rainbow"},
		},
		Sizes: defaultSizes(),
		Fonts: defaultFonts(),
		AddOns: []models.AddOnOption{
			{ID: "crown", Name: "Crown", Icon: "👑", Price: 500},
			{ID: "stars", Name: "Stars", Icon: "⭐", Price: 500},
			{ID: "hearts", Name: "Hearts", Icon: "❤️", Price: 500},
		},
		Backgrounds: []models.BackgroundOption{
			{ID: "modern-living", Name: "Modern Living Room"},
			{ID: "industrial", Name: "Industrial Space"},
			{ID: "bedroom", Name: "Cozy Bedroom"},
			{ID: "cafe", Name: "Cafe Wall"},
			{ID: "brick", Name: "Brick Wall"},
		},
		DimmerOptions: []models.DimmerOption{
			{ID: false, Name: "No Dimmer", Icon: "❌"},
			{ID: true, Name: "Add Dimmer", Icon: "🎛️", Price: 800},
		},
		ShapeOptions: []models.IconOption{
			{ID: "cut-to-shape", Name: "Cut to Shape", Icon: "✂️", Price: 0},
			{ID: "rectangle", Name: "Rectangle Box", Icon: "⬜", Price: 800},
		},
		UsageOptions: []models.IconOption{
			{ID: "indoor", Name: "Indoor", Icon: "🏠", Price: 0},
			{ID: "outdoor", Name: "Outdoor", Icon: "🌳", Price: 1500},
		},
		IsActive: true,
	}
}

func floroOptions() models.CustomizationOptions {
	return models.CustomizationOptions{
		ProductType: models.ProductTypeFloro,
		Colors: []models.ColorOption{
			{Name: "Electric lime", Value: "#00ffff", Class: "from-cyan-400"},
			{Name: "Hot pink", Value: "#ff00ff", Class: "from-pink-500"},
			{Name: "Neon Green", Value: "#39ff14", Class: "from-green-400"},
			{Name: "lime Haze", Value: "#b026ff", Class: "from-lime-500"},
			{Name: "Fire Red", Value: "#ff0000", Class: "from-red-500"},
			{Name: "Golden Sun", Value: "#ffd700", Class: "from-yellow-400"},
			{Name: "Rainbow Mode", Value: "rainbow", Class: "from-white"},
		},
		Sizes: defaultSizes(),
		Fonts: defaultFonts(),
		AddOns: []models.AddOnOption{
			{ID: "flowers", Name: "Flowers", Icon: "🌸", Price: 500},
			{ID: "stars", Name: "Stars", Icon: "⭐", Price: 500},
			{ID: "hearts", Name: "Hearts", Icon: "❤️", Price: 500},
		},
		Backgrounds: []models.BackgroundOption{
			{ID: "modern-living", Name: "Modern Living Room"},
			{ID: "industrial", Name: "Industrial Space"},
			{ID: "bedroom", Name: "Cozy Bedroom"},
			{ID: "cafe", Name: "Cafe Wall"},
			{ID: "brick", Name: "Brick Wall"},
		},
		DimmerOptions: []models.DimmerOption{
			{ID: nil, Name: "No Dimmer", Icon: "❌"},
			{ID: "dimmer", Name: "Add Dimmer", Icon: "🎛️", Price: 800},
		},
		ShapeOptions: []models.IconOption{
			{ID: "cut-to-shape", Name: "Cut to Shape", Icon: "✂️", Price: 0},
			{ID: "rectangle", Name: "Rectangle Box", Icon: "⬜", Price: 800},
		},
		UsageOptions: []models.IconOption{
			{ID: "indoor", Name: "Indoor", Icon: "🏠", Price: 0},
			{ID: "outdoor", Name: "Outdoor", Icon: "🌳", Price: 1500},
		},
		IsActive: true,
	}
}

func main() {
	config.LoadEnv()

	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.EnsureIndexes(); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	collection := database.DB.Collection("customizationoptions")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, doc := range []models.CustomizationOptions{neonOptions(), floroOptions()} {
		err := collection.FindOne(ctx, bson.M{"productType": doc.ProductType}).Err()
		if err == nil {
			log.Printf("Customization options for %s already exist, skipping", doc.ProductType)
			continue
		}
		if err != mongo.ErrNoDocuments {
			log.Fatalf("Failed to check existing options for %s: %v", doc.ProductType, err)
		}

		doc.CreatedAt = time.Now()
		doc.UpdatedAt = time.Now()
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			log.Fatalf("Failed to seed options for %s: %v", doc.ProductType, err)
		}
		log.Printf("Seeded customization options for %s", doc.ProductType)
	}
}
