package glhead

type CreateGLHeadRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=Income Expense Asset Liability"`
	Code        *string `json:"code"`
	ParentID    *string `json:"parent_id"`
	Description *string `json:"description"`
}

type UpdateGLHeadRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=Income Expense Asset Liability"`
	Code        *string `json:"code"`
	ParentID    *string `json:"parent_id"`
	Description *string `json:"description"`
}

type GLHeadResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Code        *string `json:"code,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GLHeadNode is a GLHeadResponse with its children, for the tree view.
type GLHeadNode struct {
	GLHeadResponse
	Children []GLHeadNode `json:"children"`
}

type ResolvePaymentModeRequest struct {
	Label string `json:"label" binding:"required"`
}
