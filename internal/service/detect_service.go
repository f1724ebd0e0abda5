package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/dto"
	"github.com/eduai-labs/eduai-api/pkg/detector"
)

// ErrDetectorNotConfigured indicates no detection API key was provided.
var ErrDetectorNotConfigured = errors.New("Sapling API key not configured. Get a FREE key at https://sapling.ai")

// maxDetectionChars caps the text sent upstream, matching the free-tier limit.
const maxDetectionChars = 50000

// aiSentenceThreshold marks an individual sentence as AI-written.
const aiSentenceThreshold = 0.5

// sentenceAnalysisLimit bounds the sentence detail returned to the caller.
// The summary counts still cover every sentence.
const sentenceAnalysisLimit = 10

// DetectService scores text for AI authorship and buckets the result into a
// human-readable verdict.
type DetectService interface {
	Analyze(ctx context.Context, text string) (dto.DetectResponse, error)
}

type detectService struct {
	client detector.API
	logger zerolog.Logger
}

// NewDetectService constructs the detection service. A nil client means the
// detector integration is unconfigured.
func NewDetectService(client detector.API, logger zerolog.Logger) DetectService {
	return &detectService{
		client: client,
		logger: logger.With().Str("component", "detect_service").Logger(),
	}
}

func (s *detectService) Analyze(ctx context.Context, text string) (dto.DetectResponse, error) {
	if s.client == nil {
		return dto.DetectResponse{}, ErrDetectorNotConfigured
	}

	if len(text) > maxDetectionChars {
		text = text[:maxDetectionChars]
	}

	result, err := s.client.Detect(ctx, text)
	if err != nil {
		return dto.DetectResponse{}, err
	}

	verdict, confidence := bucketVerdict(result.Score)

	sentences := make([]dto.SentenceVerdict, 0, len(result.SentenceScores))
	aiSentenceCount := 0
	for _, sentence := range result.SentenceScores {
		isAI := sentence.Score > aiSentenceThreshold
		if isAI {
			aiSentenceCount++
		}
		sentences = append(sentences, dto.SentenceVerdict{
			Sentence: sentence.Sentence,
			Score:    sentence.Score,
			IsAI:     isAI,
		})
	}

	totalSentences := len(sentences)
	percentageAI := 0
	if totalSentences > 0 {
		percentageAI = int(math.Round(float64(aiSentenceCount) / float64(totalSentences) * 100))
	}

	if len(sentences) > sentenceAnalysisLimit {
		sentences = sentences[:sentenceAnalysisLimit]
	}

	return dto.DetectResponse{
		Score:      int(math.Round(result.Score * 100)),
		Verdict:    verdict,
		Confidence: confidence,
		Details: dto.DetectionDetails{
			AISentenceCount: aiSentenceCount,
			TotalSentences:  totalSentences,
			PercentageAI:    percentageAI,
		},
		SentenceAnalysis: sentences,
	}, nil
}

func bucketVerdict(score float64) (verdict, confidence string) {
	switch {
	case score >= 0.8:
		return "Likely AI-Generated", "High"
	case score >= 0.5:
		return "Possibly AI-Generated", "Medium"
	case score >= 0.3:
		return "Mixed/Uncertain", "Low"
	default:
		return "Likely Human-Written", "High"
	}
}
