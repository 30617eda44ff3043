package models

// Credentials is the body of POST /auth/login and POST /auth/register.
// Email is only read on registration.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is returned by both auth endpoints.
type AuthResponse struct {
	Token    string `json:"token"`
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DeviceRegistration is the body of POST /notifications/register-device.
type DeviceRegistration struct {
	Token string `json:"token"`
}

// ImageUpload answers POST /vehicles/:id/image.
type ImageUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ImageURL answers GET /vehicles/:id/image.
type ImageURL struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON body of every non-2xx server answer.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
