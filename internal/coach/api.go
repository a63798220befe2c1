package coach

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/corrida-app/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const (
	oneHour           = 60 * 60
	adviceCacheExpire = oneHour * 6

	advicePrompt = "You are an experienced running coach. Based on the " +
		"following workout history of the last two weeks, give short, " +
		"practical advice for the coming days. Keep it under 120 words " +
		"and address the runner directly.\n\nWorkout history:\n%s"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Api calls an external text-generation service to turn a workout summary
// into coaching advice. Responses are cached per summary, the same recent
// history yields the same advice without a second remote call.
type Api struct {
	cache       *freecache.Cache
	adviceUrl   string
	adviceToken string
	httpClient  *http.Client
}

func NewApi(adviceUrl, adviceToken string, httpClient *http.Client) *Api {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Api{
		adviceUrl:   adviceUrl,
		adviceToken: adviceToken,
		cache:       freecache.NewCache(cacheSize),
		httpClient:  httpClient,
	}
}

func (a *Api) GetAdvice(ctx context.Context, logsSummary string) (advice string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coachApi.getAdvice")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "advice generated")
		}
	}()

	summaryHash := sha256.Sum256([]byte(logsSummary))
	cacheKey := summaryHash[:]
	if cachedAdvice, err := a.cache.Get(cacheKey); err == nil {
		log.Tracef("found advice in cache for summary hash %x", summaryHash[:8])
		return string(cachedAdvice), nil
	}

	reqJson, err := json.Marshal(generateRequest{
		Prompt: fmt.Sprintf(advicePrompt, logsSummary),
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.adviceUrl, bytes.NewReader(reqJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.adviceToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read advice api response bytes: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice api status %d: %s", resp.StatusCode, string(respBytes))
	}

	var generateResp generateResponse
	if err := json.Unmarshal(respBytes, &generateResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal advice api response bytes: %w", err)
	}
	if generateResp.Text == "" {
		return "", fmt.Errorf("advice api returned empty text")
	}

	if err := a.cache.Set(cacheKey, []byte(generateResp.Text), adviceCacheExpire); err != nil {
		log.Errorf("failed to write advice cache: %s", err)
	}

	return generateResp.Text, nil
}
