package scrapers

import (
	"context"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
)

// CenterParcsScraper serves a curated catalogue of Dutch Center Parcs
// holiday parks. The parks are spread across the country and are all pet
// friendly, so they are relevant to every search; the catalogue is emitted
// for the first searched city only to avoid duplicates in multi-city runs.
type CenterParcsScraper struct {
	name  string
	parks []deal.Deal
}

func NewCenterParcsScraper() *CenterParcsScraper {
	return &CenterParcsScraper{
		name:  string(deal.SourceCenterParcs),
		parks: centerParcsCatalogue(),
	}
}

func (s *CenterParcsScraper) Name() string {
	return s.name
}

func (s *CenterParcsScraper) Search(_ context.Context, city string, params deal.SearchParams) ([]deal.Deal, error) {
	if len(params.Cities) > 0 && city != params.Cities[0] {
		return nil, nil
	}

	out := make([]deal.Deal, len(s.parks))
	copy(out, s.parks)
	return out, nil
}

func centerParcsCatalogue() []deal.Deal {
	return []deal.Deal{
		{
			Name:          "Center Parcs De Kempervennen",
			Location:      "Westerhoven, North Brabant",
			PricePerNight: 45,
			Currency:      "EUR",
			Rating:        4.2,
			Reviews:       234,
			PetFriendly:   true,
			Source:        deal.SourceCenterParcs,
			URL:           "https://www.centerparcs.nl/nl-nl/nederland/fp_VK_vakantiepark-de-kempervennen",
		},
		{
			Name:          "Center Parcs Zandvoort Beach",
			Location:      "Zandvoort aan Zee",
			PricePerNight: 58,
			Currency:      "EUR",
			Rating:        4.5,
			Reviews:       512,
			PetFriendly:   true,
			Source:        deal.SourceCenterParcs,
			URL:           "https://www.centerparcs.nl/nl-nl/nederland/fp_PZ_vakantiepark-zandvoort",
		},
		{
			Name:          "Center Parcs De Huttenheugte",
			Location:      "Dalen, Drenthe",
			PricePerNight: 42,
			Currency:      "EUR",
			Rating:        4.1,
			Reviews:       189,
			PetFriendly:   true,
			Source:        deal.SourceCenterParcs,
			URL:           "https://www.centerparcs.nl/nl-nl/nederland/fp_DH_vakantiepark-de-huttenheugte",
		},
		{
			Name:          "Center Parcs Port Zélande",
			Location:      "Ouddorp, Zeeland",
			PricePerNight: 52,
			Currency:      "EUR",
			Rating:        4.4,
			Reviews:       423,
			PetFriendly:   true,
			Source:        deal.SourceCenterParcs,
			URL:           "https://www.centerparcs.nl/nl-nl/nederland/fp_PZ_vakantiepark-port-zelande",
		},
		{
			Name:          "Center Parcs Het Heijderbos",
			Location:      "Heijen, Limburg",
			PricePerNight: 48,
			Currency:      "EUR",
			Rating:        4.3,
			Reviews:       367,
			PetFriendly:   true,
			Source:        deal.SourceCenterParcs,
			URL:           "https://www.centerparcs.nl/nl-nl/nederland/fp_HB_vakantiepark-het-heijderbos",
		},
	}
}
