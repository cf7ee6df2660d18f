package models

type SentimentAnalysisRequest struct {
	Text string `json:"text"`
}

type (
	SentimentAnalysisResponse struct {
		SentimentLabel string       `json:"sentiment_label"`
		Confidence     float64      `json:"confidence"`
		Scores         []LabelScore `json:"scores,omitempty"`
	}
	LabelScore struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
)

type EntityExtractionRequest struct {
	Text string `json:"text"`
}

type EntityExtractionResponse struct {
	Entities []EntityMention `json:"entities"`
}

type TranscriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}
