package gemini

// Wire types for the generateContent REST API. Exported so prompt builders in
// other packages can assemble complete requests, including per-call sampling
// configuration.

type Request struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []SafetySetting  `json:"safetySettings,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

type Blob struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type GenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// ImageInput is an image attached to a request, base64-encoded without a
// data-URL prefix.
type ImageInput struct {
	DataBase64 string
	MimeType   string
}
