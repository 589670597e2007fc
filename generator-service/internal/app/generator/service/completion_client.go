package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maplemarket/generator-service/internal/app/generator/entity"
)

// ChatCompletionClient реализует интерфейс CompletionClient
// Отвечает только за HTTP запросы к chat completions API
type ChatCompletionClient struct {
	apiURL      string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewChatCompletionClient создает новый HTTP клиент генерационного API
func NewChatCompletionClient(apiURL, apiKey, model string, temperature float64, timeoutSec int) *ChatCompletionClient {
	return &ChatCompletionClient{
		apiURL:      apiURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// Complete отправляет пару system/user сообщений и возвращает текст ответа модели
func (c *ChatCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := entity.ChatCompletionRequest{
		Model: c.model,
		Messages: []entity.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	// Создаем HTTP запрос с контекстом
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	// Выполняем запрос
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Проверяем статус код
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Читаем тело ответа
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	// Парсим JSON ответ
	var apiResponse entity.ChatCompletionResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("failed to unmarshal API response: %w", err)
	}

	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("API response contains no choices")
	}

	return apiResponse.Choices[0].Message.Content, nil
}
