package dto

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse datos de paginación devueltos en listados.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
