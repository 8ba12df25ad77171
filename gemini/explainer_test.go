package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// newTestClient returns a genai client talking to handler instead of the
// live API.
func newTestClient(t *testing.T, handler http.HandlerFunc) *genai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	return client
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
		}},
	})
}

func TestExplainer_Explain(t *testing.T) {
	t.Parallel()

	t.Run("returns the model text", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeCandidate(w, "  It adds up the numbers in A1 to A3.\n")
		})
		explainer := gemini.NewExplainer(client)

		got, err := explainer.Explain(context.Background(), "=SUM(A1:A3)")

		require.NoError(t, err)
		assert.Equal(t, "It adds up the numbers in A1 to A3.", got)
	})

	t.Run("sends the formula and generation settings", func(t *testing.T) {
		t.Parallel()

		var path string
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
			GenerationConfig struct {
				Temperature     float64 `json:"temperature"`
				TopK            float64 `json:"topK"`
				MaxOutputTokens int     `json:"maxOutputTokens"`
			} `json:"generationConfig"`
		}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeCandidate(w, "ok")
		})

		_, err := gemini.NewExplainer(client).Explain(context.Background(), `=IF(A1>=50, "Pass", "Fail")`)
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(path, "models/gemini-2.5-flash:generateContent"), path)
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Contains(t, body.Contents[0].Parts[0].Text, `Formula: =IF(A1>=50, "Pass", "Fail")`)
		assert.InDelta(t, 0.5, body.GenerationConfig.Temperature, 0.001)
		assert.InDelta(t, 32, body.GenerationConfig.TopK, 0.001)
		assert.Equal(t, 256, body.GenerationConfig.MaxOutputTokens)
	})

	t.Run("returns the API error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
		})

		_, err := gemini.NewExplainer(client).Explain(context.Background(), "=SUM(A1:A3)")

		require.Error(t, err)
	})

	t.Run("rejects an empty model response", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeCandidate(w, "   ")
		})

		_, err := gemini.NewExplainer(client).Explain(context.Background(), "=SUM(A1:A3)")

		require.Error(t, err)
		assert.Equal(t, formulary.EINTERNAL, formulary.ErrorCode(err))
	})

	t.Run("rejects an empty formula without calling the API", func(t *testing.T) {
		t.Parallel()

		explainer := gemini.NewExplainer(nil) // nil client ok for this test

		_, err := explainer.Explain(context.Background(), "  ")

		require.Error(t, err)
		assert.Equal(t, formulary.EINVALID, formulary.ErrorCode(err))
		assert.Contains(t, formulary.ErrorMessage(err), "formula required")
	})

	t.Run("reports a missing client", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewExplainer(nil).Explain(context.Background(), "=SUM(A1)")

		require.Error(t, err)
		assert.Equal(t, formulary.EINTERNAL, formulary.ErrorCode(err))
	})
}

func TestBuildConfig_SetsSamplingParameters(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.5, *config.Temperature, 0.001)
	require.NotNil(t, config.TopP)
	assert.InDelta(t, 1.0, *config.TopP, 0.001)
	require.NotNil(t, config.TopK)
	assert.InDelta(t, 32.0, *config.TopK, 0.001)
	assert.Equal(t, int32(256), config.MaxOutputTokens)
}

func TestBuildPrompt_EmbedsFormulaVerbatim(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt(`=XLOOKUP("HR", B2:B4, C2:C4)`)

	assert.Contains(t, prompt, "Formula: =XLOOKUP(\"HR\", B2:B4, C2:C4)\n")
	assert.True(t, strings.HasPrefix(prompt, "You are an expert Microsoft Excel user."))
	assert.Contains(t, prompt, "1. **Purpose**")
	assert.Contains(t, prompt, "Do not use markdown formatting.")
}

func TestBuildPrompt_DoesNotExpandPlaceholdersInFormula(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt("=A1&\"%FORMULA%\"")

	assert.Equal(t, 1, strings.Count(prompt, "%FORMULA%"))
}
