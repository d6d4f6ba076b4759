package admin

type SetBorrowStatusReq struct {
	Status string `json:"status" validate:"required,oneof=BORROWED RETURNED LATE_RETURN REJECTED"`
}
