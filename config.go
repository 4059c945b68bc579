package seogen

import "time"

// DefaultStaleAfter is how long a generated page is served before it is
// regenerated.
const DefaultStaleAfter = 24 * time.Hour

// Config carries brand and placeholder settings into derivation. It is
// passed explicitly to every service so tests can vary it freely.
type Config struct {
	BrandName string `yaml:"brand_name" env:"SEOGEN_BRAND_NAME"`
	LogoURL   string `yaml:"logo_url" env:"SEOGEN_LOGO_URL"`

	// BaseURL prefixes slugs to form canonical page URLs.
	BaseURL string `yaml:"base_url" env:"SEOGEN_BASE_URL"`

	// StaleAfter bounds how long a cached page is reused.
	StaleAfter time.Duration `yaml:"stale_after" env:"SEOGEN_STALE_AFTER"`

	Hotel HotelDefaults `yaml:"hotel"`
}

// HotelDefaults are the values placed into Hotel structured data when the
// record has no column of its own for them.
type HotelDefaults struct {
	Image       string `yaml:"image" env:"SEOGEN_HOTEL_IMAGE"`
	PriceRange  string `yaml:"price_range" env:"SEOGEN_HOTEL_PRICE_RANGE"`
	RatingValue string `yaml:"rating_value" env:"SEOGEN_HOTEL_RATING_VALUE"`
	Country     string `yaml:"country" env:"SEOGEN_HOTEL_COUNTRY"`
}

// DefaultConfig returns the placeholder configuration.
func DefaultConfig() Config {
	return Config{
		BrandName:  "Your Brand Name",
		LogoURL:    "https://yourdomain.com/logo.png",
		BaseURL:    "https://yourdomain.com",
		StaleAfter: DefaultStaleAfter,
		Hotel: HotelDefaults{
			Image:       "https://example.com/hotel-image.jpg",
			PriceRange:  "$$",
			RatingValue: "4.5",
			Country:     "US",
		},
	}
}

// TitleSuffix returns the brand suffix appended to every title tag.
func (c Config) TitleSuffix() string {
	return " | " + c.BrandName
}

// Validate returns an error if the configuration contains invalid fields.
func (c Config) Validate() error {
	if c.BrandName == "" {
		return Errorf(EINVALID, "brand name required")
	}
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.StaleAfter < 0 {
		return Errorf(EINVALID, "stale window must not be negative")
	}
	return nil
}
