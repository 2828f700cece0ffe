package model

import "strings"

// Item represents a classified listing.
type Item struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	Price               string   `json:"price"`
	Contact             string   `json:"contact"`
	Category            string   `json:"category"`
	CategoryDescription string   `json:"categoryDescription,omitempty"`
	Images              []string `json:"images"`
	Timestamp           int64    `json:"timestamp"`
	ApronSize           string   `json:"apronSize,omitempty"`
	ApronColor          string   `json:"apronColor,omitempty"`
	DeleteKeyHash       string   `json:"-"`
}

// CategoryAprons is the only category carrying extra attributes.
const CategoryAprons = "Aprons"

// Image count bounds for a listing.
const (
	MinImages = 1
	MaxImages = 5
)

// PriceFree is the canonical representation of a no-cost listing.
const PriceFree = "Free"

// NormalizePrice maps the zero-cost spellings ("0", "free") to PriceFree.
// Anything else is stored as submitted.
func NormalizePrice(price string) string {
	p := strings.TrimSpace(price)
	if p == "0" || strings.EqualFold(p, "free") {
		return PriceFree
	}
	return p
}

// PrimaryImage returns the display image (first by submission order).
func (i *Item) PrimaryImage() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}
