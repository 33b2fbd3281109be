package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategory is the closed set of catalog categories.
type ProductCategory string

const (
	CategoryPerfume       ProductCategory = "Perfume"
	CategoryRoomFreshener ProductCategory = "Room Freshener"
	CategorySoap          ProductCategory = "Soap"
)

// MeasurementUnit is the unit the capacity field is expressed in.
type MeasurementUnit string

const (
	UnitKilogram   MeasurementUnit = "kg"
	UnitGram       MeasurementUnit = "g"
	UnitLitre      MeasurementUnit = "litre"
	UnitMilliliter MeasurementUnit = "ml"
)

// Gender is the audience a fragrance is marketed to.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderUnisex Gender = "Unisex"
)

// Texture is the physical form of a product.
type Texture string

const (
	TextureBar     Texture = "Bar"
	TextureCream   Texture = "Cream"
	TextureLotion  Texture = "Lotion"
	TextureAerosol Texture = "Aerosol"
	TexturePowder  Texture = "Powder"
	TextureLiquid  Texture = "Liquid"
)

// StoredFile is a persisted reference to an uploaded product image.
// Entries are only ever built whole; a failed upload produces no entry.
type StoredFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Product represents a committed catalog entry. Prices are kept as decimals
// with two fractional digits; enum fields hold only validated members.
type Product struct {
	ID               string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string          `json:"name" gorm:"uniqueIndex;type:varchar(70)"`
	Description      string          `json:"description"`
	Category         ProductCategory `json:"category" gorm:"type:varchar(20)"`
	Capacity         int             `json:"capacity,omitempty"`
	MeasurementUnit  MeasurementUnit `json:"measurementUnit" gorm:"type:varchar(10)"`
	InspiredBy       string          `json:"inspiredBy,omitempty"`
	Fragrance        string          `json:"fragrance,omitempty"`
	TopNotes         string          `json:"topNotes,omitempty"`
	MiddleNotes      string          `json:"middleNotes,omitempty"`
	BaseNotes        string          `json:"baseNotes,omitempty"`
	SellingPrice     decimal.Decimal `json:"sellingPrice" gorm:"type:decimal(10,2)"`
	MRP              decimal.Decimal `json:"MRP" gorm:"type:decimal(10,2)"`
	Gender           Gender          `json:"gender" gorm:"type:varchar(10)"`
	NoOfItems        int             `json:"noOfItems,omitempty"`
	Texture          Texture         `json:"texture,omitempty" gorm:"type:varchar(10)"`
	CountryOfOrigin  string          `json:"countryOfOrigin"`
	HSNCode          string          `json:"HSNCode"`
	ReturnPolicy     string          `json:"returnPolicy,omitempty"`
	CareInstructions string          `json:"careInstructions,omitempty"`
	Images           []StoredFile    `json:"images,omitempty" gorm:"type:text;serializer:json"`
	gorm.Model       // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
