package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de respuesta con mensaje para el usuario.
type MessageResponse struct {
	Message string `json:"message"`
}
