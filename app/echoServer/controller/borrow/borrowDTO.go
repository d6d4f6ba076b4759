package borrow

type BorrowReq struct {
	BookID string `json:"book_id" validate:"required,uuid4"`
}
