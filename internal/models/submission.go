package models

// ProductSubmission is one untrusted intake payload as it arrives off the
// wire. Prices travel as strings and are checked against the two-decimal
// lexical pattern; enum fields are plain strings until validation admits
// them into a Product.
type ProductSubmission struct {
	Name             string `json:"name" form:"name" validate:"required,min=3,max=70"`
	Description      string `json:"description" form:"description" validate:"omitempty,max=500"`
	Category         string `json:"category" form:"category" validate:"required,oneof=Perfume 'Room Freshener' Soap"`
	Capacity         *int   `json:"capacity" form:"capacity" validate:"omitempty,gt=0"`
	MeasurementUnit  string `json:"measurementUnit" form:"measurementUnit" validate:"required,oneof=kg g litre ml"`
	InspiredBy       string `json:"inspiredBy" form:"inspiredBy"`
	Fragrance        string `json:"fragrance" form:"fragrance"`
	TopNotes         string `json:"topNotes" form:"topNotes"`
	MiddleNotes      string `json:"middleNotes" form:"middleNotes"`
	BaseNotes        string `json:"baseNotes" form:"baseNotes"`
	SellingPrice     string `json:"sellingPrice" form:"sellingPrice" validate:"required,price"`
	MRP              string `json:"MRP" form:"MRP" validate:"required,price"`
	Gender           string `json:"gender" form:"gender" validate:"required,oneof=Male Female Unisex"`
	NoOfItems        *int   `json:"noOfItems" form:"noOfItems" validate:"omitempty,gte=1"`
	Texture          string `json:"texture" form:"texture" validate:"omitempty,oneof=Bar Cream Lotion Aerosol Powder Liquid"`
	CountryOfOrigin  string `json:"countryOfOrigin" form:"countryOfOrigin"`
	HSNCode          string `json:"HSNCode" form:"HSNCode" validate:"required"`
	ReturnPolicy     string `json:"returnPolicy" form:"returnPolicy"`
	CareInstructions string `json:"careInstructions" form:"careInstructions"`
}

// FileBlob is one raw image payload lifted out of the multipart form.
type FileBlob struct {
	Name string
	Data []byte
}
