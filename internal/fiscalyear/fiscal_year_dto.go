package fiscalyear

type CreateFiscalYearRequest struct {
	Name           string `json:"name" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	OpeningBalance int64  `json:"opening_balance"`
}

type UpdateFiscalYearRequest struct {
	Name           string `json:"name" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	OpeningBalance int64  `json:"opening_balance"`
}

type FiscalYearResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	IsActive       bool   `json:"is_active"`
	IsClosed       bool   `json:"is_closed"`
	OpeningBalance int64  `json:"opening_balance"`
}
