package paycomponent

type CreateComponentRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	Code          string  `json:"code" binding:"required"`
	AmountCents   int64   `json:"amount_cents" binding:"min=0"`
	EffectiveFrom string  `json:"effective_from" binding:"required,datetime=2006-01-02"`
	EffectiveTo   *string `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateComponentRequest struct {
	AmountCents int64   `json:"amount_cents" binding:"min=0"`
	EffectiveTo *string `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
}

type ComponentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Kind          string  `json:"kind"`
	Code          string  `json:"code"`
	AmountCents   int64   `json:"amount_cents"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}
