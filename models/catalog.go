package models

// CatalogItem is a sellable product or prepared dish. Products and dishes
// live in separate collections but share one shape.
type CatalogItem struct {
	ID          string   `bson:"id"          json:"id"`
	Name        string   `bson:"name"        json:"name"`
	Description string   `bson:"description" json:"description"`
	Price       float64  `bson:"price"       json:"price"`
	Unit        string   `bson:"unit"        json:"unit"`
	Image       string   `bson:"image"       json:"image"`
	Features    []string `bson:"features"    json:"features"`
}
