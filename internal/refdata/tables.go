package refdata

import "github.com/nebulanet/topup-backend/internal/models"

var networkProviders = []models.NetworkProvider{
	{ID: "mtn", Name: "MTN", Logo: "/mtn-logo.png", Color: "yellow"},
	{ID: "airtel", Name: "Airtel", Logo: "/airtel-logo.png", Color: "red"},
	{ID: "glo", Name: "Glo", Logo: "/glo-logo.png", Color: "green"},
	{ID: "9mobile", Name: "9mobile", Logo: "/9mobile-logo.png", Color: "emerald"},
	{ID: "safaricom", Name: "Safaricom", Logo: "/safaricom-logo.png", Color: "green"},
}

var airtimeTiers = []models.AirtimeTier{
	{ID: "basic", Name: "Basic", Discount: 2, MinAmount: 100, Description: "Perfect for regular users"},
	{ID: "premium", Name: "Premium", Discount: 5, MinAmount: 500, Description: "Great savings for frequent users"},
	{ID: "vip", Name: "VIP", Discount: 8, MinAmount: 1000, Description: "Maximum savings for power users"},
}

var bundleOptions = []models.BundleOption{
	{ID: "1gb", Size: "1GB", OriginalPrice: 500, DiscountedPrice: 450, Validity: "30 days", Description: "Perfect for light browsing and social media"},
	{ID: "2gb", Size: "2GB", OriginalPrice: 1000, DiscountedPrice: 850, Validity: "30 days", Description: "Great for streaming and downloads"},
	{ID: "5gb", Size: "5GB", OriginalPrice: 2500, DiscountedPrice: 2000, Validity: "30 days", Description: "Ideal for heavy internet users"},
	{ID: "10gb", Size: "10GB", OriginalPrice: 5000, DiscountedPrice: 3800, Validity: "30 days", Description: "Best value for unlimited browsing"},
	{ID: "20gb", Size: "20GB", OriginalPrice: 10000, DiscountedPrice: 7500, Validity: "30 days", Description: "Premium package for power users"},
	{ID: "50gb", Size: "50GB", OriginalPrice: 25000, DiscountedPrice: 18000, Validity: "30 days", Description: "Ultimate data package for businesses"},
}
