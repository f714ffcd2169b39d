package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductType string

const (
	ProductTypeNeon  ProductType = "neon"
	ProductTypeFloro ProductType = "floro"
)

func (p ProductType) Valid() bool {
	return p == ProductTypeNeon || p == ProductTypeFloro
}

type ColorOption struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
	Class string `bson:"class,omitempty" json:"class,omitempty"`
}

type SizeOption struct {
	Value  string  `bson:"value" json:"value"`
	Name   string  `bson:"name" json:"name"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
	Price  float64 `bson:"price" json:"price"`
}

type FontOption struct {
	Name  string `bson:"name" json:"name"`
	Class string `bson:"class" json:"class"`
	Font  string `bson:"font" json:"font"`
}

type AddOnOption struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Icon  string  `bson:"icon,omitempty" json:"icon,omitempty"`
	Price float64 `bson:"price" json:"price"`
	Image string  `bson:"image,omitempty" json:"image,omitempty"`
	SVG   string  `bson:"svg,omitempty" json:"svg,omitempty"`
}

type BackgroundOption struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// DimmerOption ids live in a productType-dependent domain: booleans for neon,
// nil or the literal "dimmer" for floro. Stored as a mixed type.
type DimmerOption struct {
	ID    interface{} `bson:"id" json:"id"`
	Name  string      `bson:"name" json:"name"`
	Icon  string      `bson:"icon,omitempty" json:"icon,omitempty"`
	Price float64     `bson:"price" json:"price"`
}

// IconOption backs both shapeOptions and usageOptions. Shape options may
// carry an uploaded image locator.
type IconOption struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Icon  string  `bson:"icon,omitempty" json:"icon,omitempty"`
	Price float64 `bson:"price" json:"price"`
	Image string  `bson:"image,omitempty" json:"image,omitempty"`
}

type CustomizationOptions struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductType   ProductType        `bson:"productType" json:"productType"`
	Colors        []ColorOption      `bson:"colors" json:"colors"`
	Sizes         []SizeOption       `bson:"sizes" json:"sizes"`
	Fonts         []FontOption       `bson:"fonts" json:"fonts"`
	AddOns        []AddOnOption      `bson:"addOns" json:"addOns"`
	Backgrounds   []BackgroundOption `bson:"backgrounds" json:"backgrounds"`
	DimmerOptions []DimmerOption     `bson:"dimmerOptions" json:"dimmerOptions"`
	ShapeOptions  []IconOption       `bson:"shapeOptions" json:"shapeOptions"`
	UsageOptions  []IconOption       `bson:"usageOptions" json:"usageOptions"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
