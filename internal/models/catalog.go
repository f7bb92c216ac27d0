package models

// NetworkProvider is a static reference record for a supported carrier
type NetworkProvider struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Color string `json:"color"`
}

// AirtimeTier is a named discount level for airtime purchases
type AirtimeTier struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Discount    float64 `json:"discount"`
	MinAmount   float64 `json:"minAmount"`
	Description string  `json:"description"`
}

// BundleOption is a fixed data-allowance product with a catalog price pair
type BundleOption struct {
	ID              string  `json:"id"`
	Size            string  `json:"size"`
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Validity        string  `json:"validity"`
	Description     string  `json:"description"`
}

// NetworkBalance reports a provider float balance on the status board
type NetworkBalance struct {
	Network string  `json:"network"`
	Balance float64 `json:"balance"`
	Status  string  `json:"status"`
}
