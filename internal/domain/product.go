package domain

import "time"

// ProductStatus represents moderation states for a listing.
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusApproved ProductStatus = "APPROVED"
	ProductStatusRejected ProductStatus = "REJECTED"
)

// Product is a marketplace listing tied to a charity.
type Product struct {
	ID              string        `json:"id"`
	SellerID        string        `json:"seller_id"`
	CharityID       string        `json:"charity_id"`
	CategoryID      string        `json:"category_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	PriceCents      int64         `json:"price_cents"`
	DonationPercent int           `json:"donation_percent"`
	Status          ProductStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
