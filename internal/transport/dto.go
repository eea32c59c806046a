package transport

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateProductRequest struct {
	ProductName string `json:"productName"`
	CreatedBy   string `json:"createdBy"`
}

type UpdateProductRequest struct {
	ProductName string `json:"productName"`
	ModifiedBy  string `json:"modifiedBy"`
}
