package book

type UpsertBookReq struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
	TotalCopies int    `json:"total_copies" validate:"gte=0"`
}
