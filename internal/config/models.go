package config

import "time"

// AgentConfig selects the analysis backend
type AgentConfig struct {
	Mode string
}

// SimulateConfig represents the simulated-mode latency settings
type SimulateConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// LiveConfig represents the configuration for the live agent gateway
type LiveConfig struct {
	Provider string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GetAgent returns the agent configuration
func (c *Config) GetAgent() AgentConfig {
	return AgentConfig{
		Mode: c.GetString("agent.mode"),
	}
}

// GetSimulate returns the simulated-mode configuration
func (c *Config) GetSimulate() (SimulateConfig, error) {
	minDelay, err := c.GetDuration("simulate.min_delay")
	if err != nil {
		return SimulateConfig{}, err
	}
	maxDelay, err := c.GetDuration("simulate.max_delay")
	if err != nil {
		return SimulateConfig{}, err
	}
	return SimulateConfig{MinDelay: minDelay, MaxDelay: maxDelay}, nil
}

// GetLive returns the live gateway configuration
func (c *Config) GetLive() (LiveConfig, error) {
	timeout, err := c.GetDuration("live.timeout")
	if err != nil {
		return LiveConfig{}, err
	}
	return LiveConfig{
		Provider: c.GetString("live.provider"),
		Endpoint: c.GetString("live.endpoint"),
		APIKey:   c.GetString("live.api_key"),
		Timeout:  timeout,
	}, nil
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}
