package domain

// RedirectEntry es una redirección 301 generada; solo el archivo semilla se escribe a mano.
type RedirectEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Permanent   bool   `json:"permanent"`
}
