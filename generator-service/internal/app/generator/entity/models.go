package entity

import "time"

// ChatMessage - одно сообщение диалога для chat completions API
type ChatMessage struct {
	Role    string `json:"role"` // system, user
	Content string `json:"content"`
}

// ChatCompletionRequest - тело запроса к генерационному API
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// ChatCompletionResponse - ответ генерационного API
// Нам нужен только текст первого choice
type ChatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ProductEvent представляет событие появления товара в каталоге для Kafka
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	CategoryID string    `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}
