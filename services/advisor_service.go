package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Nutrition is the per-serving estimate attached to a classified candidate.
type Nutrition struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Unit     string  `json:"unit"`
}

// Candidate is a classified food item waiting for the user to confirm or
// discard it. Nutrition may be nil when the model reply omitted the block;
// confirm treats that as all zeros.
type Candidate struct {
	Dish      string     `json:"dish"`
	Nutrition *Nutrition `json:"nutrition"`
	Vitamins  []string   `json:"vitamins"`
	Advice    string     `json:"advice,omitempty"`
	ImageRef  string     `json:"image_ref,omitempty"`
}

// BodyEstimate is the advisor's read of a full-body photo.
type BodyEstimate struct {
	Gender  string  `json:"gender"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`
	BodyFat string  `json:"body_fat"`
}

// ChatResult is the structured reply from the coach chat. Action and Data are
// untrusted and validated by the dispatcher before anything is applied.
type ChatResult struct {
	Reply  string         `json:"reply"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// Advisor is the AI collaborator behind classification, body analysis and
// coach chat.
type Advisor interface {
	ClassifyText(ctx context.Context, description string) (*Candidate, error)
	ClassifyImage(ctx context.Context, image []byte, hints []string) (*Candidate, error)
	AnalyzeBody(ctx context.Context, image []byte) (*BodyEstimate, error)
	Chat(ctx context.Context, message, contextSummary string) (*ChatResult, error)
}

// GeminiService talks to the Gemini generateContent REST endpoint.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   "gemini-2.5-flash",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt (plus optional image) and returns the raw text of
// the first candidate. One retry with backoff, then the error is surfaced.
func (s *GeminiService) generate(ctx context.Context, parts []geminiPart) (string, error) {
	var req geminiRequest
	req.Contents = append(req.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})

	b, err := json.Marshal(&req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate payload: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second):
			}
		}

		text, err := s.doGenerate(ctx, u, b)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (s *GeminiService) doGenerate(ctx context.Context, url string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes markdown code-fence markers the model sometimes wraps
// its JSON in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func imagePart(image []byte) geminiPart {
	return geminiPart{InlineData: &geminiInlineData{
		MimeType: "image/jpeg",
		Data:     base64.StdEncoding.EncodeToString(image),
	}}
}

const candidateSchema = `{
  "dish": "Short Standard Name",
  "nutrition": {
    "calories": integer,
    "protein": float (grams),
    "carbs": float (grams),
    "fat": float (grams),
    "unit": "serving size description"
  },
  "vitamins": ["List of 3 key vitamins/minerals"],
  "advice": "One sentence advice on whether this is healthy."
}`

func (s *GeminiService) ClassifyText(ctx context.Context, description string) (*Candidate, error) {
	prompt := fmt.Sprintf(
		"You are a Nutritionist API.\nAnalyze this food text: %q\n\nReturn a JSON object with these keys ONLY (no markdown):\n%s",
		description, candidateSchema,
	)

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	return parseCandidate(text)
}

func (s *GeminiService) ClassifyImage(ctx context.Context, image []byte, hints []string) (*Candidate, error) {
	prompt := fmt.Sprintf(
		"You are an expert food nutritionist.\nIdentify the main dish in this image.\n\nReturn a JSON object with these keys ONLY (no markdown):\n%s",
		candidateSchema,
	)
	if len(hints) > 0 {
		prompt += fmt.Sprintf("\n\nAn image-label service detected: %s. Use these as hints only.",
			strings.Join(hints, ", "))
	}

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}, imagePart(image)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	return parseCandidate(text)
}

func parseCandidate(text string) (*Candidate, error) {
	var c Candidate
	if err := json.Unmarshal([]byte(stripFences(text)), &c); err != nil {
		return nil, fmt.Errorf("%w: unparsable candidate: %v", ErrClassification, err)
	}
	if c.Dish == "" {
		return nil, fmt.Errorf("%w: candidate missing dish name", ErrClassification)
	}
	return &c, nil
}

const bodyPrompt = `You are a Fitness AI. Analyze the person in this photo for the purpose of calculating BMI and calorie goals.

Estimate from visual proportions:
1. Gender (Male/Female)
2. Approximate height in cm (assume an average adult if unclear)
3. Approximate weight in kg (based on build and height)

Return a JSON object with these keys ONLY:
{
  "gender": "Male" or "Female",
  "height": float (cm),
  "weight": float (kg),
  "body_fat": "Low" or "Medium" or "High"
}
If you strictly cannot determine a human is present, return null.`

// AnalyzeBody returns (nil, nil) when the model could not find a person.
func (s *GeminiService) AnalyzeBody(ctx context.Context, image []byte) (*BodyEstimate, error) {
	text, err := s.generate(ctx, []geminiPart{{Text: bodyPrompt}, imagePart(image)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	cleaned := stripFences(text)
	if cleaned == "null" {
		return nil, nil
	}

	var est BodyEstimate
	if err := json.Unmarshal([]byte(cleaned), &est); err != nil {
		return nil, fmt.Errorf("%w: unparsable body estimate: %v", ErrClassification, err)
	}
	return &est, nil
}

func (s *GeminiService) Chat(ctx context.Context, message, contextSummary string) (*ChatResult, error) {
	prompt := fmt.Sprintf(`You are a personal fitness coach named 'Titan Coach'.
User Context: %s
User Message: %q

Reply helpfully AND take action if needed.

If the user wants to log food (e.g., "I ate an apple"), set action="log_food".
If the user changes goals (e.g., "I want to bulk", "Set calories to 3000"), set action="update_goal".
Otherwise set action="none".

Return a JSON object ONLY:
{
  "reply": "Your helpful text response here.",
  "action": "none" OR "log_food" OR "update_goal",
  "data": {
    "food_name": "Apple", "calories": 95, "protein": 0.5 (if logging food),
    "goal_calories": 3000 (if updating goal)
  }
}`, contextSummary, message)

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	var res ChatResult
	if err := json.Unmarshal([]byte(stripFences(text)), &res); err != nil {
		return nil, fmt.Errorf("%w: unparsable chat reply: %v", ErrClassification, err)
	}
	return &res, nil
}
