// internal/workers/conversation/classify-intent/models.go
package classifyintent

type Input struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

type Output struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}
