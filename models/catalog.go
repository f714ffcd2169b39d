package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageAsset is a remote-store locator: the serving URL plus the opaque id
// needed to release the asset later.
type ImageAsset struct {
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
	PublicID string `bson:"publicId,omitempty" json:"publicId,omitempty"`
}

type BackgroundImage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	CloudinaryID string             `bson:"cloudinaryId" json:"cloudinaryId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type BestSeller struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	MainImage   ImageAsset         `bson:"mainImage" json:"mainImage"`
	Image1      ImageAsset         `bson:"image1,omitempty" json:"image1,omitempty"`
	Image2      ImageAsset         `bson:"image2,omitempty" json:"image2,omitempty"`
	Image3      ImageAsset         `bson:"image3,omitempty" json:"image3,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type FeaturedProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	MainImage   ImageAsset         `bson:"mainImage" json:"mainImage"`
	Image1      ImageAsset         `bson:"image1,omitempty" json:"image1,omitempty"`
	Image2      ImageAsset         `bson:"image2,omitempty" json:"image2,omitempty"`
	Image3      ImageAsset         `bson:"image3,omitempty" json:"image3,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
