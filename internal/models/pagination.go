package models

// Pagination describes the slice of a collection returned by a list
// endpoint. TotalPages is ceil(TotalItems / ItemsPerPage).
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// ProductFilters echoes the query filters a listing was produced with.
type ProductFilters struct {
	Keyword string `json:"keyword"`
	Sort    string `json:"sort"`
}

// ProductPage is a page of products plus its pagination metadata.
type ProductPage struct {
	Products   []Product      `json:"products"`
	Pagination Pagination     `json:"pagination"`
	Filters    ProductFilters `json:"filters"`
}
