package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"stella/monitoring"
)

const defaultPersona = "Você é a Stella, uma coach de hábitos por voz: acolhedora, direta e sem julgamentos. " +
	"O usuário fala com você por telefone, então responda curto, em português do Brasil, " +
	"sem formatação, sem emojis e sem listas. " +
	"Quando o usuário estiver passando por uma situação excepcional (lesão, doença, viagem, estresse), " +
	"reduza a cobrança sobre os hábitos afetados em vez de insistir."

// GenerateCoachReply calls OpenAI Responses API with the Stella persona plus a
// per-user context block (habits, active exceptional events, onboarding goals).
// Used by the text-channel fallback; on calls the realtime agent owns the voice.
func GenerateCoachReply(ctx context.Context, contextBlock string, userText string) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}
	model := getenv("OPENAI_MODEL", "gpt-4.1-mini")

	instructions := getenv("OPENAI_SYSTEM_PROMPT", defaultPersona)
	if strings.TrimSpace(contextBlock) != "" {
		instructions += "\n\nContexto do usuário:\n" + contextBlock
	}

	reqBody := map[string]any{
		"model":        model,
		"instructions": instructions,
		"input":        userText,
	}

	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		"https://api.openai.com/v1/responses",
		bytes.NewReader(b),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	monitoring.OpenAIRequestSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Output []struct {
			Type    string `json:"type"`
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, item := range parsed.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && strings.TrimSpace(c.Text) != "" {
					if sb.Len() > 0 {
						sb.WriteString("\n")
					}
					sb.WriteString(c.Text)
				}
			}
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("empty response from model (no output_text items found)")
	}
	return out, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
