package dto

// CreateProductRequest payload for listing a product.
type CreateProductRequest struct {
	CharityID       string `json:"charity_id"`
	CategoryID      string `json:"category_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PriceCents      int64  `json:"price_cents"`
	DonationPercent int    `json:"donation_percent"`
}

// ModerateProductRequest payload for an admin status change.
type ModerateProductRequest struct {
	Status string `json:"status"`
}

// CreateCharityRequest payload for registering a charity.
type CreateCharityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// VerifyAccountRequest payload for toggling an account's verified flag.
type VerifyAccountRequest struct {
	Verified bool `json:"verified"`
}
