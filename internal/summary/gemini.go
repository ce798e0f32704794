package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiComposer asks a generateContent endpoint for the report text. The
// caller falls back to the template composer when no API key is configured.
type GeminiComposer struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func NewGeminiComposer(endpoint, model, apiKey string) *GeminiComposer {
	return &GeminiComposer{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiComposer) Summarize(ctx context.Context, digests []SubmissionDigest, startDate, endDate string) (string, error) {
	prompt, err := buildPrompt(digests, startDate, endDate)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode summary request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read summary response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary service failed, status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("summary service returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(digests []SubmissionDigest, startDate, endDate string) (string, error) {
	data, err := json.MarshalIndent(digests, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode submissions for prompt: %w", err)
	}

	prompt := fmt.Sprintf(`
You are an inventory manager for a restaurant called Sarkop. Your task is to analyze the following stock opname data and write a concise summary for a report to be sent via WhatsApp to the owner.

The data below shows stock levels submitted by staff between %s and %s.

Data:
%s

Your summary MUST follow these instructions:
1.  Start with a clear and friendly header, like "Stock Opname Report for [Date Range]".
2.  Provide a very brief overview, mentioning how many staff members submitted reports.
3.  Analyze the latest stock entries to identify critical items. Highlight 3 to 5 items that have the lowest numerical stock levels or are marked as "Tidak cukup" (Not enough). These are priorities for reordering. List them clearly.
4.  Mention 1 or 2 items that seem to have very high stock ("Cukup untuk hari ini" or high numbers), suggesting good inventory levels for those.
5.  Conclude with a brief, positive closing remark, for example, "Overall, stock levels are being monitored well. Let's restock the priority items."
6.  The entire message should be professional, brief, and formatted with clear sections for easy reading on a mobile phone. Use line breaks to separate points. Do not use markdown like '*' or '#'.
`, startDate, endDate, data)

	return prompt, nil
}
