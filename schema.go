package seogen

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SchemaContext is the JSON-LD vocabulary every document refers to.
const SchemaContext = "https://schema.org"

// DefaultLocality fills a hotel address when the record has no location.
const DefaultLocality = "City"

// amenityTerms is the vocabulary searched for hotel amenities. Features are
// reported in this order regardless of where they appear in the content.
var amenityTerms = []string{
	"wifi", "pool", "spa", "gym", "fitness", "breakfast",
	"restaurant", "bar", "parking", "room service", "concierge",
	"air conditioning", "tv", "minibar",
}

// Organization is a schema.org Organization.
type Organization struct {
	Type string       `json:"@type"`
	Name string       `json:"name"`
	Logo *ImageObject `json:"logo,omitempty"`
}

// ImageObject is a schema.org ImageObject.
type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality"`
	AddressCountry  string `json:"addressCountry"`
}

// Rating is a schema.org Rating.
type Rating struct {
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue"`
}

// LocationFeatureSpecification is a schema.org amenity entry.
type LocationFeatureSpecification struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ArticleSchema is the structured data emitted for general content.
type ArticleSchema struct {
	Context          string       `json:"@context"`
	Type             ContentType  `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	Author           Organization `json:"author"`
	Publisher        Organization `json:"publisher"`
	URL              string       `json:"url"`
	MainEntityOfPage string       `json:"mainEntityOfPage"`
	Keywords         string       `json:"keywords"` // raw record field
}

// HotelSchema is the structured data emitted for lodging content.
type HotelSchema struct {
	Context        string                         `json:"@context"`
	Type           ContentType                    `json:"@type"`
	Name           string                         `json:"name"`
	Description    string                         `json:"description"`
	URL            string                         `json:"url"`
	Address        PostalAddress                  `json:"address"`
	Image          string                         `json:"image"`
	PriceRange     string                         `json:"priceRange"`
	StarRating     Rating                         `json:"starRating"`
	AmenityFeature []LocationFeatureSpecification `json:"amenityFeature"`
}

// StructuredData is a JSON-LD document. Exactly one variant is set, matching Type.
type StructuredData struct {
	Type    ContentType
	Article *ArticleSchema
	Hotel   *HotelSchema
}

// MarshalJSON encodes the active variant.
func (d StructuredData) MarshalJSON() ([]byte, error) {
	switch d.Type {
	case ContentTypeHotel:
		return json.Marshal(d.Hotel)
	case ContentTypeArticle:
		return json.Marshal(d.Article)
	case "":
		return []byte("null"), nil
	}
	return nil, fmt.Errorf("unknown structured data type %q", d.Type)
}

// UnmarshalJSON decodes the variant named by the document's @type.
func (d *StructuredData) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = StructuredData{}
		return nil
	}
	var head struct {
		Type ContentType `json:"@type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	*d = StructuredData{Type: head.Type}
	switch head.Type {
	case ContentTypeHotel:
		d.Hotel = &HotelSchema{}
		return json.Unmarshal(data, d.Hotel)
	case ContentTypeArticle:
		d.Article = &ArticleSchema{}
		return json.Unmarshal(data, d.Article)
	}
	return Errorf(EINVALID, "unknown structured data type %q", head.Type)
}

// SchemaGenerator builds structured data for a record served at url.
type SchemaGenerator interface {
	// GenerateSchema returns EMISSINGFIELD if the record cannot be derived.
	GenerateSchema(r *Record, url string) (StructuredData, error)
}

// GenerateSchema classifies the record and builds the matching document.
func GenerateSchema(r *Record, url string, cfg Config) (StructuredData, error) {
	if err := r.Validate(); err != nil {
		return StructuredData{}, err
	}

	switch t := Classify(r); t {
	case ContentTypeHotel:
		return StructuredData{Type: t, Hotel: hotelSchema(r, url, cfg)}, nil
	default:
		return StructuredData{Type: ContentTypeArticle, Article: articleSchema(r, url, cfg)}, nil
	}
}

func articleSchema(r *Record, url string, cfg Config) *ArticleSchema {
	return &ArticleSchema{
		Context:     SchemaContext,
		Type:        ContentTypeArticle,
		Headline:    r.Title,
		Description: r.Description,
		Author: Organization{
			Type: "Organization",
			Name: cfg.BrandName,
		},
		Publisher: Organization{
			Type: "Organization",
			Name: cfg.BrandName,
			Logo: &ImageObject{Type: "ImageObject", URL: cfg.LogoURL},
		},
		URL:              url,
		MainEntityOfPage: url,
		Keywords:         r.Keywords,
	}
}

func hotelSchema(r *Record, url string, cfg Config) *HotelSchema {
	locality := r.Location
	if locality == "" {
		locality = DefaultLocality
	}

	features := make([]LocationFeatureSpecification, 0)
	for _, name := range ExtractAmenities(r.Content) {
		features = append(features, LocationFeatureSpecification{
			Type: "LocationFeatureSpecification",
			Name: name,
		})
	}

	return &HotelSchema{
		Context:     SchemaContext,
		Type:        ContentTypeHotel,
		Name:        r.Title,
		Description: r.Description,
		URL:         url,
		Address: PostalAddress{
			Type:            "PostalAddress",
			AddressLocality: locality,
			AddressCountry:  fieldOr(r, ColumnCountry, cfg.Hotel.Country),
		},
		Image:      fieldOr(r, ColumnImage, cfg.Hotel.Image),
		PriceRange: fieldOr(r, ColumnPriceRange, cfg.Hotel.PriceRange),
		StarRating: Rating{
			Type:        "Rating",
			RatingValue: fieldOr(r, ColumnRatingValue, cfg.Hotel.RatingValue),
		},
		AmenityFeature: features,
	}
}

// fieldOr returns the record's value for column, or def when it is blank.
func fieldOr(r *Record, column, def string) string {
	if v, ok := r.Field(column); ok && v != "" {
		return v
	}
	return def
}

// ExtractAmenities returns the capitalized names of amenities mentioned in content.
func ExtractAmenities(content string) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, term := range amenityTerms {
		if strings.Contains(lower, term) {
			found = append(found, capitalize(term))
		}
	}
	return found
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
