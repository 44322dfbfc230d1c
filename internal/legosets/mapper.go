package legosets

import "github.com/brickshare-es/brickshare-backend/pkg/rebrickable"

// SetDetailsDTO is the catalog-enrichment shape returned to the back office.
type SetDetailsDTO struct {
	Name         string `json:"name"`
	PieceCount   int    `json:"piece_count"`
	YearReleased int    `json:"year_released"`
	ImageURL     string `json:"image_url"`
	ThemeID      int    `json:"theme_id"`
}

// MapSet converts the raw catalog payload into the internal shape.
func MapSet(set rebrickable.Set) SetDetailsDTO {
	return SetDetailsDTO{
		Name:         set.Name,
		PieceCount:   set.NumParts,
		YearReleased: set.Year,
		ImageURL:     set.SetImgURL,
		ThemeID:      set.ThemeID,
	}
}
