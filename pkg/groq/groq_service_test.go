package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// stubGroq serves a canned chat-completion answer and records the request.
func stubGroq(t *testing.T, content string) (*groqService, *http.Request) {
	t.Helper()

	var captured http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		response := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_VISION_MODEL", "test-vision")
	t.Setenv("GROQ_RECIPE_MODEL", "test-recipe")

	return &groqService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}, &captured
}

func TestAnalyzeIngredientImage(t *testing.T) {
	service, _ := stubGroq(t, `{"name":"トマト","genre":"野菜","quantity":3,"unit":"個","days":5}`)

	got, err := service.AnalyzeIngredientImage(context.Background(), "data:image/jpeg;base64,xxxx")
	if err != nil {
		t.Fatalf("AnalyzeIngredientImage failed: %v", err)
	}

	if got.Name != "トマト" || got.Genre != "野菜" || got.Quantity != 3 || got.Unit != "個" {
		t.Errorf("unexpected result: %+v", got)
	}
	want := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	if got.ExpiryDate != want {
		t.Errorf("expiryDate = %s, want %s", got.ExpiryDate, want)
	}
}

func TestAnalyzeIngredientImageAppliesDefaults(t *testing.T) {
	// Missing quantity/unit/days must not leak zero values into stock.
	service, _ := stubGroq(t, `{"name":"ほうれん草","genre":"野菜"}`)

	got, err := service.AnalyzeIngredientImage(context.Background(), "data:image/jpeg;base64,xxxx")
	if err != nil {
		t.Fatalf("AnalyzeIngredientImage failed: %v", err)
	}

	if got.Quantity != 1 {
		t.Errorf("quantity = %v, want default 1", got.Quantity)
	}
	if got.Unit != "個" {
		t.Errorf("unit = %q, want default 個", got.Unit)
	}
	want := time.Now().AddDate(0, 0, defaultExpiryDays).Format("2006-01-02")
	if got.ExpiryDate != want {
		t.Errorf("expiryDate = %s, want %s", got.ExpiryDate, want)
	}
}

func TestAnalyzeIngredientImageToleratesStringNumbers(t *testing.T) {
	service, _ := stubGroq(t, `{"name":"牛乳","genre":"乳製品","quantity":"2","unit":"本","days":"7"}`)

	got, err := service.AnalyzeIngredientImage(context.Background(), "data:image/jpeg;base64,xxxx")
	if err != nil {
		t.Fatalf("AnalyzeIngredientImage failed: %v", err)
	}
	if got.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", got.Quantity)
	}
	want := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	if got.ExpiryDate != want {
		t.Errorf("expiryDate = %s, want %s", got.ExpiryDate, want)
	}
}

func TestChatCompletionStripsMarkdownFences(t *testing.T) {
	service, _ := stubGroq(t, "```json\n{\"name\":\"豆腐\",\"genre\":\"大豆製品\",\"quantity\":1,\"unit\":\"丁\",\"days\":4}\n```")

	got, err := service.AnalyzeIngredientImage(context.Background(), "data:image/jpeg;base64,xxxx")
	if err != nil {
		t.Fatalf("AnalyzeIngredientImage failed: %v", err)
	}
	if got.Name != "豆腐" {
		t.Errorf("name = %q, want 豆腐", got.Name)
	}
}

func TestChatCompletionSendsAuthHeader(t *testing.T) {
	service, captured := stubGroq(t, `{"name":"卵","genre":"その他","quantity":6,"unit":"個","days":10}`)

	if _, err := service.AnalyzeIngredientImage(context.Background(), "data:image/jpeg;base64,xxxx"); err != nil {
		t.Fatalf("AnalyzeIngredientImage failed: %v", err)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", got)
	}
}

func TestGenerateRecipe(t *testing.T) {
	recipe := map[string]interface{}{
		"title":       "にんじんと卵の炒め物",
		"description": "在庫の野菜と卵を使い切る一皿",
		"ingredients": []string{"にんじん(1/2本)", "卵(2個)", "醤油"},
		"steps":       []string{"にんじんを千切りにする", "炒めて卵を絡める"},
		"point":       "強火で手早く",
	}
	body, _ := json.Marshal(recipe)
	service, _ := stubGroq(t, string(body))

	got, err := service.GenerateRecipe(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateRecipe failed: %v", err)
	}
	if got.Title != "にんじんと卵の炒め物" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Ingredients) != 3 || len(got.Steps) != 2 {
		t.Errorf("unexpected recipe shape: %+v", got)
	}
}

func TestChatCompletionReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limit"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_VISION_MODEL", "test-vision")

	service := &groqService{baseURL: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	if _, err := service.AnalyzeIngredientImage(context.Background(), "data:image/jpeg;base64,xxxx"); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}
