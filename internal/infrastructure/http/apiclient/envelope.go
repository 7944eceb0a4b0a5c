package apiclient

// Meta is the metadata block of every backend response
type Meta struct {
	Timestamp string `json:"timestamp"`
	Total     *int   `json:"total,omitempty"`
}

// Envelope is the standard success response: {data: T, meta: {...}}
type Envelope[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}
