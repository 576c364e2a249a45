package api

// ServerConfig holds the HTTP service configuration.
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// APIResponse is the envelope for all JSON responses.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DecodeRequest asks the service to decode one raw record.
type DecodeRequest struct {
	Layout string `json:"layout"`
	Data   string `json:"data"` // hex-encoded record bytes
}

// DecodeResponse carries the decoded record.
type DecodeResponse struct {
	Layout string         `json:"layout"`
	Record map[string]any `json:"record"`
}

// EncodeRequest asks the service to encode one record.
type EncodeRequest struct {
	Layout string         `json:"layout"`
	Record map[string]any `json:"record"`
}

// EncodeResponse carries the encoded record bytes.
type EncodeResponse struct {
	Layout string `json:"layout"`
	Data   string `json:"data"` // hex-encoded record bytes
}

// LayoutResponse describes one layout.
type LayoutResponse struct {
	Name        string          `json:"name"`
	Size        int             `json:"size"`
	Fields      []FieldResponse `json:"fields"`
	Description string          `json:"description"`
}

// FieldResponse describes one field of a layout.
type FieldResponse struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Width int    `json:"width"`
	Order string `json:"order"`
}
