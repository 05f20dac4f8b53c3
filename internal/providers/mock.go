package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic output without network access. When the
// system prompt requests JSON output it answers with a minimal valid section
// object so structured-mode flows can run end to end in tests and demos.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-translator-v1", Key: "mock"}
	if strings.Contains(req.System, "valid JSON") {
		content := `{
  "document_title": "Сертификат анализа",
  "product_name": "Тестовый продукт",
  "test_results": [["Испытание", "Метод", "Критерии приемлемости", "Результат"]],
  "conclusion": "Продукт соответствует спецификации."
}`
		return CompletionResponse{Content: content}, info, nil
	}
	return CompletionResponse{Content: "Детерминированный перевод: " + snippet(req.User, 120)}, info, nil
}

func snippet(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}
