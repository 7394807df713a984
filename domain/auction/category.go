package auction

import "github.com/bidhaus/goapi/domain"

// Category partitions auctions. The set is closed; the attribute payload a
// category carries is resolved once at the intake boundary instead of being
// re-dispatched downstream.
type Category string

const (
	CategoryAlcohol     Category = "alcohol"
	CategoryArt         Category = "art"
	CategoryApparel     Category = "apparel"
	CategoryCollectible Category = "collectible"
	CategoryPlate       Category = "plate"
	CategoryPhoneNumber Category = "phone-number"
	CategoryMisc        Category = "misc"
)

var categories = map[Category]struct{}{
	CategoryAlcohol:     {},
	CategoryArt:         {},
	CategoryApparel:     {},
	CategoryCollectible: {},
	CategoryPlate:       {},
	CategoryPhoneNumber: {},
	CategoryMisc:        {},
}

func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", domain.ErrInvalidCategory
	}
	return c, nil
}

// Attributes is the category-specific payload. One shared shape with
// optional fields keeps the document model closed while letting each
// category require its own subset.
type Attributes struct {
	// art
	ArtistName *string `json:"artistName,omitempty" bson:"artistName,omitempty"`
	// alcohol
	VintageYear *int `json:"vintageYear,omitempty" bson:"vintageYear,omitempty"`
	// apparel, collectible
	Brand *string `json:"brand,omitempty" bson:"brand,omitempty"`
	// plate
	PlateNumber *string `json:"plateNumber,omitempty" bson:"plateNumber,omitempty"`
	// phone-number
	PhoneNumber *string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
}

// Validate checks the payload carries the field its category requires.
func (a Attributes) Validate(category Category) error {
	switch category {
	case CategoryPlate:
		if a.PlateNumber == nil || *a.PlateNumber == "" {
			return domain.ErrBadParamInput
		}
	case CategoryPhoneNumber:
		if a.PhoneNumber == nil || *a.PhoneNumber == "" {
			return domain.ErrBadParamInput
		}
	}
	return nil
}
