package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *LiveKitClient {
	return &LiveKitClient{
		URL:        url,
		APIKey:     "APIabc123",
		APISecret:  "segredo-bem-grande-para-testes-locais",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestAccessTokenClaims(t *testing.T) {
	c := testClient("wss://stella.livekit.cloud")

	raw, err := c.AccessToken("stella-backend", map[string]any{"roomList": true}, time.Minute)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		require.Equal(t, jwt.SigningMethodHS256, token.Method)
		return []byte(c.APISecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "APIabc123", claims["iss"])
	assert.Equal(t, "stella-backend", claims["sub"])
	video, ok := claims["video"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, video["roomList"])
}

func TestHTTPBaseURL(t *testing.T) {
	cases := map[string]string{
		"wss://stella.livekit.cloud":  "https://stella.livekit.cloud",
		"ws://localhost:7880":         "http://localhost:7880",
		"https://stella.example.com/": "https://stella.example.com",
	}
	for in, want := range cases {
		c := testClient(in)
		assert.Equal(t, want, c.httpBaseURL())
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	c := testClient("wss://stella.livekit.cloud")

	t.Run("token válido", func(t *testing.T) {
		raw, err := c.AccessToken("webhook", map[string]any{}, time.Minute)
		require.NoError(t, err)

		claims, err := c.VerifyWebhookToken(raw)
		require.NoError(t, err)
		assert.Equal(t, "APIabc123", claims["iss"])
	})

	t.Run("issuer desconhecido", func(t *testing.T) {
		other := testClient("wss://stella.livekit.cloud")
		other.APIKey = "APIoutra"
		raw, err := other.AccessToken("webhook", map[string]any{}, time.Minute)
		require.NoError(t, err)

		_, err = c.VerifyWebhookToken(raw)
		assert.Error(t, err)
	})

	t.Run("assinatura errada", func(t *testing.T) {
		other := testClient("wss://stella.livekit.cloud")
		other.APISecret = "outro-segredo-igualmente-grande!"
		raw, err := other.AccessToken("webhook", map[string]any{}, time.Minute)
		require.NoError(t, err)

		_, err = c.VerifyWebhookToken(raw)
		assert.Error(t, err)
	})
}

func TestCreateAgentDispatch(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "AD_teste123"})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	id, err := c.CreateAgentDispatch(context.Background(), "outbound-0123456789", "stella-telephony-agent",
		map[string]any{"phone_number": "+5511987654321"})
	require.NoError(t, err)

	assert.Equal(t, "AD_teste123", id)
	assert.Equal(t, "/twirp/livekit.AgentDispatchService/CreateDispatch", gotPath)
	assert.Contains(t, gotAuth, "Bearer ")
	assert.Equal(t, "stella-telephony-agent", gotBody["agent_name"])
	assert.Equal(t, "outbound-0123456789", gotBody["room"])

	// metadata vai como string JSON (é assim que o agente recebe)
	meta, ok := gotBody["metadata"].(string)
	require.True(t, ok)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(meta), &decoded))
	assert.Equal(t, "+5511987654321", decoded["phone_number"])
}

func TestListRoomsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ListRooms(context.Background())
	assert.Error(t, err)
}
