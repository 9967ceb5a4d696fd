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

	"github.com/golang-jwt/jwt/v5"
)

// LiveKitClient fala com a plataforma de voz (salas, dispatch de agente).
// Só o que a Stella precisa: mint de access token + chamadas Twirp via HTTP.
type LiveKitClient struct {
	URL       string
	APIKey    string
	APISecret string

	HTTPClient *http.Client
}

// LiveKitFromEnv monta o client a partir de LIVEKIT_URL/LIVEKIT_API_KEY/LIVEKIT_API_SECRET.
func LiveKitFromEnv() (*LiveKitClient, error) {
	url := strings.TrimSpace(os.Getenv("LIVEKIT_URL"))
	key := strings.TrimSpace(os.Getenv("LIVEKIT_API_KEY"))
	secret := strings.TrimSpace(os.Getenv("LIVEKIT_API_SECRET"))
	if url == "" || key == "" || secret == "" {
		return nil, fmt.Errorf("LIVEKIT_URL, LIVEKIT_API_KEY or LIVEKIT_API_SECRET not set")
	}
	return &LiveKitClient{
		URL:        url,
		APIKey:     key,
		APISecret:  secret,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// AccessToken emite um JWT HS256 no formato esperado pela plataforma:
// iss = api key, sub = identity, claim "video" com os grants pedidos.
func (c *LiveKitClient) AccessToken(identity string, grants map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   c.APIKey,
		"sub":   identity,
		"nbf":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"video": grants,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.APISecret))
}

// VerifyWebhookToken valida o JWT que a plataforma manda no header
// Authorization dos webhooks (assinado com o mesmo api secret).
// Devolve as claims para conferência do hash do corpo.
func (c *LiveKitClient) VerifyWebhookToken(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.APISecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid webhook token")
	}
	if iss, _ := claims["iss"].(string); iss != c.APIKey {
		return nil, fmt.Errorf("webhook token issued by unknown key")
	}
	return claims, nil
}

// httpBaseURL converte a URL websocket da plataforma para o host HTTP
// correspondente (wss:// -> https://, ws:// -> http://).
func (c *LiveKitClient) httpBaseURL() string {
	url := strings.TrimRight(c.URL, "/")
	if strings.HasPrefix(url, "wss://") {
		return "https://" + strings.TrimPrefix(url, "wss://")
	}
	if strings.HasPrefix(url, "ws://") {
		return "http://" + strings.TrimPrefix(url, "ws://")
	}
	return url
}

// twirp faz um POST JSON autenticado para /twirp/livekit.{Service}/{Method}.
func (c *LiveKitClient) twirp(ctx context.Context, service, method string, grants map[string]any, payload, out any) error {
	token, err := c.AccessToken("stella-backend", grants, time.Minute)
	if err != nil {
		return err
	}

	b, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/twirp/livekit.%s/%s", c.httpBaseURL(), service, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("livekit api error: service=%s method=%s status=%d body=%s",
			service, method, resp.StatusCode, string(body))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateAgentDispatch despacha o agente de voz para uma sala, com o telefone
// do usuário na metadata (é ela que dispara a perna SIP do lado do agente).
func (c *LiveKitClient) CreateAgentDispatch(ctx context.Context, room, agentName string, metadata map[string]any) (string, error) {
	metaBytes, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"agent_name": agentName,
		"room":       room,
		"metadata":   string(metaBytes),
	}
	var out struct {
		ID string `json:"id"`
	}

	grants := map[string]any{"roomAdmin": true, "room": room, "agent": true}
	if err := c.twirp(ctx, "AgentDispatchService", "CreateDispatch", grants, payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// RoomInfo é o resumo de sala que a gente expõe no status do agente.
type RoomInfo struct {
	Sid             string `json:"sid"`
	Name            string `json:"name"`
	NumParticipants int    `json:"num_participants"`
	CreationTime    int64  `json:"creation_time,string"`
}

// ListRooms lista as salas ativas (ligações em andamento).
func (c *LiveKitClient) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	var out struct {
		Rooms []RoomInfo `json:"rooms"`
	}
	grants := map[string]any{"roomList": true}
	if err := c.twirp(ctx, "RoomService", "ListRooms", grants, map[string]any{}, &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

// DeleteRoom encerra uma sala (derruba a ligação).
func (c *LiveKitClient) DeleteRoom(ctx context.Context, room string) error {
	grants := map[string]any{"roomAdmin": true, "room": room}
	return c.twirp(ctx, "RoomService", "DeleteRoom", grants, map[string]any{"room": room}, nil)
}
