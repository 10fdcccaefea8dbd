package dto

// SaveItemRequest upserts a catalog item.
type SaveItemRequest struct {
	Code     string `json:"code" binding:"required"`
	NameEN   string `json:"nameEn" binding:"required"`
	NameHI   string `json:"nameHi"`
	Category string `json:"category" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// SetAvailabilityRequest flips an item's in-stock flag.
type SetAvailabilityRequest struct {
	ItemCode  string `json:"itemCode"`
	ItemEN    string `json:"itemEn" binding:"required"`
	IsInStock bool   `json:"isInStock"`
}
