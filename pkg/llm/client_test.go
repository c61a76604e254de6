package llm

import "testing"

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here is the result:\n{\"a\":1}", `{"a":1}`},
		{"trailing prose", "{\"a\":1}\nLet me know if you need more.", `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"no json at all", "sorry, I cannot do that", "sorry, I cannot do that"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanJSON(tc.in); got != tc.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_MODEL_NAME", "")
	t.Setenv("LLM_BASE_URL", "")

	if _, err := ConfigFromEnv(); err == nil {
		t.Error("ConfigFromEnv() = nil error without credentials, want error")
	}

	t.Setenv("LLM_API_KEY", "k")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("ConfigFromEnv() = nil error without model name, want error")
	}

	t.Setenv("LLM_MODEL_NAME", "test-model")
	t.Setenv("LLM_BASE_URL", "http://localhost:8080/v1")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}
	if cfg.Model != "test-model" || cfg.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("cfg = %+v", cfg)
	}
}
