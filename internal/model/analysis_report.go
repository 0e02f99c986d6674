package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Sentiment labels produced by the backend. Comparison is case-insensitive
// because the backend title-cases labels but lower-cases statistics keys.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// AnalysisReport is the typed view of the report produced by the
// video sentiment analysis backend.
//
// Every field is optional from the client's point of view. Unknown fields
// are ignored and missing ones stay at their zero value.
type AnalysisReport struct {
	// Video describes the analyzed video.
	Video Video `json:"video"`

	// Comments holds every analyzed comment with its label.
	Comments []Comment `json:"comments"`

	// SentimentStatistics is the share of each label across comments.
	SentimentStatistics SentimentStatistics `json:"sentiment_statistics"`

	// KeywordCloud lists the most frequent comment words.
	KeywordCloud []KeywordCloudItem `json:"keyword_cloud"`

	// Conclusion is a one-sentence summary written by the backend.
	Conclusion string `json:"conclusion"`

	// Warnings lists analysis steps that were skipped or failed.
	Warnings []string `json:"warnings"`

	// TopicSentiments maps topic names to backend-defined details.
	TopicSentiments map[string]json.RawMessage `json:"topic_sentiments,omitempty"`
}

// Video describes the analyzed video.
type Video struct {
	URL string `json:"url"`

	// ContentSummary is the beginning of the transcription, if the video
	// content was analyzed.
	ContentSummary *string `json:"content_summary"`

	// DerivedSentiment is the label of the transcription, if any.
	DerivedSentiment *string `json:"derived_sentiment"`
}

// Comment is a single user comment with its sentiment label.
type Comment struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	AnalyzedSentiment string `json:"analyzed_sentiment"`
}

// SentimentStatistics holds label shares in the range [0, 1].
type SentimentStatistics struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Dominant returns the label with the largest share. Ties resolve in the
// order positive, negative, neutral. An all-zero distribution is neutral.
func (s SentimentStatistics) Dominant() string {
	switch {
	case s.Positive == 0 && s.Negative == 0 && s.Neutral == 0:
		return SentimentNeutral
	case s.Positive >= s.Negative && s.Positive >= s.Neutral:
		return SentimentPositive
	case s.Negative >= s.Neutral:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// KeywordCloudItem is a word and its frequency.
type KeywordCloudItem struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// ParseAnalysisReport decodes r into an AnalysisReport.
// The report must be a JSON object.
func ParseAnalysisReport(r Report) (*AnalysisReport, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("parse analysis report: %w", ErrEmptyReport)
	}

	var ar AnalysisReport
	if err := json.Unmarshal(r, &ar); err != nil {
		return nil, fmt.Errorf("parse analysis report: %w", err)
	}
	return &ar, nil
}

// CountBySentiment returns the number of comments per lower-cased label.
func (a *AnalysisReport) CountBySentiment() map[string]int {
	counts := make(map[string]int, 3)
	for _, c := range a.Comments {
		counts[strings.ToLower(c.AnalyzedSentiment)]++
	}
	return counts
}

// TopicNames returns the topic names in sorted order.
func (a *AnalysisReport) TopicNames() []string {
	names := make([]string, 0, len(a.TopicSentiments))
	for name := range a.TopicSentiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasWarnings reports whether the backend returned any warning.
func (a *AnalysisReport) HasWarnings() bool {
	return len(a.Warnings) > 0
}
