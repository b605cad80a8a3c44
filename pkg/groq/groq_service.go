package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pashameshi-backend/domain"
	"pashameshi-backend/internal/utils"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Shelf-life fallback when the classifier omits or garbles the day estimate.
const defaultExpiryDays = 3

type (
	// GroqService wraps the two LLM calls the app depends on: the vision
	// classifier that turns an ingredient photo into a structured record, and
	// the recipe generator that proposes a dish from current stock. Both are
	// treated as opaque collaborators; default substitution for missing
	// fields happens here, once, at the boundary.
	GroqService interface {
		AnalyzeIngredientImage(ctx context.Context, imageDataURL string) (domain.AnalyzedIngredient, error)
		GenerateRecipe(ctx context.Context, stock []domain.RecipeStockItem) (domain.GeneratedRecipe, error)
	}

	groqService struct {
		baseURL    string
		httpClient *http.Client
	}
)

func NewGroqService() GroqService {
	return &groqService{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *groqService) AnalyzeIngredientImage(ctx context.Context, imageDataURL string) (domain.AnalyzedIngredient, error) {
	visionModel := utils.GetConfig("GROQ_VISION_MODEL")
	if visionModel == "" {
		return domain.AnalyzedIngredient{}, fmt.Errorf("GROQ_VISION_MODEL environment variable not set")
	}

	prompt := "この食材を解析して、以下のJSON形式で返してください。回答はJSONオブジェクトのみにしてください： " +
		`{ "name": "食材名", "genre": "野菜/肉/魚/など", "quantity": 数量(数値のみ), "unit": "個/本/gなど", "days": 賞味期限の目安の日数(数値のみ) }`

	requestBody := map[string]interface{}{
		"model": visionModel,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": prompt,
					},
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url": imageDataURL,
						},
					},
				},
			},
		},
		"response_format": map[string]interface{}{"type": "json_object"},
	}

	responseText, err := s.chatCompletion(ctx, requestBody)
	if err != nil {
		return domain.AnalyzedIngredient{}, err
	}

	var raw struct {
		Name     string      `json:"name"`
		Genre    string      `json:"genre"`
		Quantity interface{} `json:"quantity"`
		Unit     string      `json:"unit"`
		Days     interface{} `json:"days"`
	}
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return domain.AnalyzedIngredient{}, fmt.Errorf("failed to parse classifier response: %v - Raw response: %s", err, responseText)
	}

	quantity := numberOr(raw.Quantity, 1)
	if quantity <= 0 {
		quantity = 1
	}

	unit := raw.Unit
	if unit == "" {
		unit = "個"
	}

	days := int(numberOr(raw.Days, defaultExpiryDays))
	if days <= 0 {
		days = defaultExpiryDays
	}
	expiryDate := time.Now().AddDate(0, 0, days)

	return domain.AnalyzedIngredient{
		Name:       raw.Name,
		Genre:      raw.Genre,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiryDate.Format("2006-01-02"),
	}, nil
}

func (s *groqService) GenerateRecipe(ctx context.Context, stock []domain.RecipeStockItem) (domain.GeneratedRecipe, error) {
	recipeModel := utils.GetConfig("GROQ_RECIPE_MODEL")
	if recipeModel == "" {
		return domain.GeneratedRecipe{}, fmt.Errorf("GROQ_RECIPE_MODEL environment variable not set")
	}

	ingredientList := make([]string, 0, len(stock))
	for _, item := range stock {
		ingredientList = append(ingredientList, fmt.Sprintf("%s(%s)", item.Name, item.Genre))
	}

	systemPrompt := `あなたは家庭にある食材を最大限に活かすプロの料理研究家です。

【料理の原則】
- 缶詰や加工品は、そのまま和えるか、ほぐして使うこと。「スライス」や「切り分ける」などの指示をしないでください。
- 「醤油、塩、味噌、マヨネーズ、ケチャップ、油、砂糖」は家庭に常備されている前提でレシピを組んで構いません。
- 食材が少ない場合、無理に豪華なメイン料理にせず、「和え物」「即席漬け」「シンプル炒め」などの美味しい副菜を提案してください。
- 具体的で現実的な調理工程のみを出力してください。

必ず以下のJSON形式で回答してください：
{
  "title": "現実的な料理名",
  "description": "なぜこの組み合わせにしたか",
  "ingredients": ["材料名(分量)", "使う調味料"],
  "steps": ["具体的で正しい工程1", "具体的で正しい工程2"],
  "point": "失敗しないためのコツ"
}`

	requestBody := map[string]interface{}{
		"model": recipeModel,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": systemPrompt,
			},
			{
				"role":    "user",
				"content": fmt.Sprintf("現在の在庫：%s。これで作れる、無理のない実用的なレシピを1つ提案してください。", strings.Join(ingredientList, "、")),
			},
		},
		"response_format": map[string]interface{}{"type": "json_object"},
	}

	responseText, err := s.chatCompletion(ctx, requestBody)
	if err != nil {
		return domain.GeneratedRecipe{}, err
	}

	var recipe domain.GeneratedRecipe
	if err := json.Unmarshal([]byte(responseText), &recipe); err != nil {
		return domain.GeneratedRecipe{}, fmt.Errorf("failed to parse generator response: %v - Raw response: %s", err, responseText)
	}

	return recipe, nil
}

func (s *groqService) chatCompletion(ctx context.Context, requestBody map[string]interface{}) (string, error) {
	apiKey := utils.GetConfig("GROQ_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groq API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", domain.ErrGroqAPIFailed
	}

	responseText := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}

	return strings.TrimSpace(responseText), nil
}

// numberOr tolerates the classifier returning numbers as JSON numbers or as
// strings, falling back when the field is absent or unparseable.
func numberOr(value interface{}, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallback
		}
		return parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}
