package dto

// DetectRequest is the body for POST /api/detect.
type DetectRequest struct {
	Text string `json:"text"`
}

// SentenceVerdict is one sentence-level detection result.
type SentenceVerdict struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
	IsAI     bool    `json:"isAI"`
}

// DetectionDetails summarises the sentence-level analysis across the whole
// document, not just the sentences returned to the caller.
type DetectionDetails struct {
	AISentenceCount int `json:"aiSentenceCount"`
	TotalSentences  int `json:"totalSentences"`
	PercentageAI    int `json:"percentageAI"`
}

// DetectResponse is the bucketed verdict returned to the caller.
type DetectResponse struct {
	Score            int               `json:"score"`
	Verdict          string            `json:"verdict"`
	Confidence       string            `json:"confidence"`
	Details          DetectionDetails  `json:"details"`
	SentenceAnalysis []SentenceVerdict `json:"sentenceAnalysis"`
}
