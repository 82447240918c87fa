package factory

import "testing"

func TestSelectProviderPrecedence(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
		want string
	}{
		{
			name: "gemini wins when configured",
			cfg: ProviderConfig{
				GeminiAPIKey:      "key-a",
				HuggingFaceAPIKey: "key-b",
				OllamaBaseURL:     "http://localhost:11434",
			},
			want: "gemini",
		},
		{
			name: "huggingface when gemini absent",
			cfg: ProviderConfig{
				HuggingFaceAPIKey: "key-b",
				OllamaBaseURL:     "http://localhost:11434",
			},
			want: "huggingface",
		},
		{
			name: "ollama as last resort",
			cfg: ProviderConfig{
				OllamaBaseURL: "http://localhost:11434",
			},
			want: "ollama",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SelectProvider(tt.cfg)
			if p == nil {
				t.Fatal("expected a provider, got nil")
			}
			if p.Name() != tt.want {
				t.Fatalf("got provider %q, want %q", p.Name(), tt.want)
			}
		})
	}
}

func TestSelectProviderNoneConfigured(t *testing.T) {
	if p := SelectProvider(ProviderConfig{}); p != nil {
		t.Fatalf("expected nil provider, got %q", p.Name())
	}
}
