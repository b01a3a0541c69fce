package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiStub(t *testing.T, handler http.HandlerFunc) (*GeminiService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &GeminiService{
		apiKey:  "test-key",
		model:   "gemini-2.5-flash",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, srv
}

func geminiReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode stub reply: %v", err)
	}
}

func TestClassifyTextParsesFencedJSON(t *testing.T) {
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, "```json\n{\"dish\":\"Idli Sambar\",\"nutrition\":{\"calories\":250,\"protein\":9.5,\"carbs\":45,\"fat\":3,\"unit\":\"2 idlis\"},\"vitamins\":[\"B12\",\"Iron\",\"Folate\"]}\n```")
	})

	cand, err := svc.ClassifyText(context.Background(), "idli sambar")
	require.NoError(t, err)
	assert.Equal(t, "Idli Sambar", cand.Dish)
	require.NotNil(t, cand.Nutrition)
	assert.Equal(t, 250, cand.Nutrition.Calories)
	assert.Equal(t, "2 idlis", cand.Nutrition.Unit)
	assert.Len(t, cand.Vitamins, 3)
}

func TestClassifyTextUnparsableIsClassificationError(t *testing.T) {
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, "Sorry, I can't help with that.")
	})

	_, err := svc.ClassifyText(context.Background(), "???")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestGenerateRetriesOnceThenSucceeds(t *testing.T) {
	calls := 0
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		geminiReply(t, w, `{"dish":"Apple","nutrition":{"calories":95,"protein":0.5,"carbs":25,"fat":0.3,"unit":"1 medium"},"vitamins":["C","K","Potassium"]}`)
	})

	cand, err := svc.ClassifyText(context.Background(), "an apple")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Apple", cand.Dish)
}

func TestGenerateGivesUpAfterRetry(t *testing.T) {
	calls := 0
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := svc.ClassifyText(context.Background(), "an apple")
	assert.ErrorIs(t, err, ErrClassification)
	assert.Equal(t, 2, calls)
}

func TestAnalyzeBodyNullMeansNoPerson(t *testing.T) {
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, "null")
	})

	est, err := svc.AnalyzeBody(context.Background(), []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Nil(t, est)
}

func TestAnalyzeBodyParsesEstimate(t *testing.T) {
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, `{"gender":"Female","height":165,"weight":58,"body_fat":"Medium"}`)
	})

	est, err := svc.AnalyzeBody(context.Background(), []byte{0xff, 0xd8})
	require.NoError(t, err)
	require.NotNil(t, est)
	assert.Equal(t, "Female", est.Gender)
	assert.InDelta(t, 165, est.Height, 0.0001)
	assert.Equal(t, "Medium", est.BodyFat)
}

func TestChatParsesActionPayload(t *testing.T) {
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, "```json\n{\"reply\":\"Logged!\",\"action\":\"log_food\",\"data\":{\"food_name\":\"Banana\",\"calories\":105,\"protein\":1.3}}\n```")
	})

	res, err := svc.Chat(context.Background(), "I ate a banana", "User is 70kg")
	require.NoError(t, err)
	assert.Equal(t, "Logged!", res.Reply)
	assert.Equal(t, "log_food", res.Action)
	assert.Equal(t, "Banana", res.Data["food_name"])
}

func TestClassifyImageSendsInlineDataAndHints(t *testing.T) {
	var gotBody struct {
		Contents []struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"contents"`
	}
	svc, _ := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		geminiReply(t, w, `{"dish":"Pizza","nutrition":{"calories":285,"protein":12,"carbs":36,"fat":10,"unit":"1 slice"},"vitamins":["A","Calcium","B2"]}`)
	})

	_, err := svc.ClassifyImage(context.Background(), []byte{0x01, 0x02}, []string{"Pizza", "Food"})
	require.NoError(t, err)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Pizza, Food")
	require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", gotBody.Contents[0].Parts[1].InlineData.MimeType)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
	assert.Equal(t, "null", stripFences("  null  "))
}
