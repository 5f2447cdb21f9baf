package summarize

// summaryRequest is the extractive summarization request: one or more
// documents plus the maximum number of sentences to extract per document.
type summaryRequest struct {
	Documents        []summaryDocument `json:"documents"`
	MaxSentenceCount int               `json:"maxSentenceCount"`
}

type summaryDocument struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type summaryResponse struct {
	Documents []documentResult `json:"documents"`
}

type documentResult struct {
	ID        string         `json:"id"`
	Sentences []sentenceSpan `json:"sentences"`
}

// sentenceSpan is one extracted sentence in the order the service ranked it.
type sentenceSpan struct {
	Text      string  `json:"text"`
	RankScore float64 `json:"rankScore"`
	Offset    int     `json:"offset"`
	Length    int     `json:"length"`
}
