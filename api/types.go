package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler       pageHandler
	contactHandler    contactHandler
	revalidateHandler revalidateHandler
	seoHandler        seoHandler
	healthHandler     healthHandler
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RevalidateResponse reports which paths were dropped from the page cache.
type RevalidateResponse struct {
	Success     bool     `json:"success"`
	Revalidated bool     `json:"revalidated"`
	Now         int64    `json:"now"`
	Paths       []string `json:"paths"`
	ContentType string   `json:"contentType,omitempty"`
}

type RevalidateFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse is the bare {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the {"error": ...} body written by Responder.WriteError.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
