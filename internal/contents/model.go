package contents

import (
	"time"

	"content-backend/internal/analysis"
)

// Content is a submitted text record. Summary and sentiment stay nil
// until background analysis applies a result; the two are always set
// together.
type Content struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Text            string              `json:"text"`
	Summary         *string             `json:"summary"`
	Sentiment       *analysis.Sentiment `json:"sentiment"`
	SummarySource   *analysis.Source    `json:"summarySource"`
	SentimentSource *analysis.Source    `json:"sentimentSource"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// Analyzed reports whether analysis results have been applied.
func (c Content) Analyzed() bool {
	return c.Summary != nil && c.Sentiment != nil
}
