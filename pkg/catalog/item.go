// Package catalog is a client for a paginated people catalog such as
// https://swapi.dev/api/people.
package catalog

import "encoding/json"

// PageSize is the fixed number of items the service returns per page.
const PageSize = 10

// Item is a single record from the catalog. Name is the display key, but it
// is only guaranteed unique within one page.
type Item struct {
	Name      string `json:"name"`
	HairColor string `json:"hair_color"`
	SkinColor string `json:"skin_color"`
	EyeColor  string `json:"eye_color"`
	Gender    string `json:"gender"`
	Height    string `json:"height"`
	Mass      string `json:"mass"`
	BirthYear string `json:"birth_year"`
	URL       string `json:"url"`
	Vehicles  Refs   `json:"vehicles"`
}

// Refs are opaque references to related records. Only their number is used.
type Refs []json.RawMessage

// UnmarshalJSON accepts an array of any JSON values. Anything other than an
// array decodes as no references.
func (r *Refs) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*r = nil

		return nil //nolint:nilerr // Only the count matters.
	}

	*r = raw

	return nil
}

// VehicleCount returns the number of vehicles linked to the item.
func (i Item) VehicleCount() int {
	return len(i.Vehicles)
}

// Page is one page of the collection as returned by the service.
type Page struct {
	Items      []Item
	Number     int
	TotalCount int
}

// TotalPages returns the number of pages implied by the page's total count.
func (p *Page) TotalPages() int {
	return TotalPages(p.TotalCount)
}

// TotalPages returns ceil(count / [PageSize]), never less than one.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}

	return (count + PageSize - 1) / PageSize
}

type pageResponse struct {
	Results []json.RawMessage `json:"results"`
	Count   int               `json:"count"`
}

// decodeItems decodes each record on its own, so a malformed record is
// skipped instead of failing the page. It returns the number skipped.
func decodeItems(raws []json.RawMessage) ([]Item, int) {
	items := make([]Item, 0, len(raws))
	skipped := 0

	for _, raw := range raws {
		var it Item
		if err := json.Unmarshal(raw, &it); err != nil {
			skipped++

			continue
		}

		items = append(items, it)
	}

	return items, skipped
}
