package domain

import "strconv"

// Product is a catalog entry from the meat table. Rows are maintained outside the bot.
type Product struct {
	Code   string
	Name   string
	Price  float64
	Image  string
	Amount string
}

// HasImage reports whether the product references a picture in media storage.
func (p Product) HasImage() bool {
	return p.Image != ""
}

// PriceLabel formats the price without trailing zeros.
func (p Product) PriceLabel() string {
	return strconv.FormatFloat(p.Price, 'f', -1, 64)
}
