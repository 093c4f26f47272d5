package dto

// RegisterRequest is the payload for user registration.
// Registration always creates a STUDENT account; professor accounts are
// provisioned from the university registry by an admin.
type RegisterRequest struct {
	FirstName       string `json:"firstName" binding:"required" example:"Alice"`
	LastName        string `json:"lastName" binding:"required" example:"Smith"`
	Email           string `json:"email" binding:"required,email" example:"alice@uni.edu"`
	Nickname        string `json:"nickname" binding:"required" example:"al1ce"`
	Password        string `json:"password" binding:"required,min=8" example:"Secret123!"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"Secret123!"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@uni.edu"`
	Password string `json:"password" binding:"required" example:"Secret123!"`
}

// JwtResponse is returned on successful login
type JwtResponse struct {
	Token     string  `json:"token"`
	ExpiresIn int     `json:"expiresIn"`
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Role      string  `json:"role"`
	Nickname  string  `json:"nickname"`
	GroupName *string `json:"groupName,omitempty"`
	StudyYear *int    `json:"studyYear,omitempty"`
	Semester  *int    `json:"semester,omitempty"`
}
