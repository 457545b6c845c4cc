package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type RetrievalConfig struct {
	VectorIndex   string `toml:"vector_index"`
	FulltextIndex string `toml:"fulltext_index"`
	TopK          int    `toml:"top_k"`
}

type Config struct {
	Neo4j     Neo4jConfig     `toml:"neo4j"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// Default mirrors the reference deployment: Gemini generation, local Neo4j,
// the rehab vector/fulltext indexes, top 5 candidates.
func Default() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:  "bolt://localhost:7687",
			User: "neo4j",
		},
		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-2.5-flash",
			EmbeddingModel: "text-embedding-004",
		},
		Retrieval: RetrievalConfig{
			VectorIndex:   "rehab_vector_index",
			FulltextIndex: "rehab_fulltext_index",
			TopK:          5,
		},
	}
}

// Load reads a TOML config file on top of the defaults. A missing file is
// not an error: deployments may configure entirely through the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment variables onto the loaded config.
func (c *Config) ApplyEnv() {
	setString(&c.Neo4j.URI, "NEO4J_URI")
	setString(&c.Neo4j.User, "NEO4J_USER")
	setString(&c.Neo4j.Password, "NEO4J_PASSWORD")
	setString(&c.Neo4j.Database, "NEO4J_DATABASE")

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.EmbeddingModel, "LLM_EMBEDDING_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")

	setString(&c.Retrieval.VectorIndex, "VECTOR_INDEX_NAME")
	setString(&c.Retrieval.FulltextIndex, "FULLTEXT_INDEX_NAME")
	if v := strings.TrimSpace(os.Getenv("TOP_K")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Retrieval.TopK = parsed
		}
	}
}

// Validate enforces the startup contract: missing model or store
// credentials abort the process instead of surfacing per query.
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return fmt.Errorf("neo4j uri is required")
	}
	if c.Neo4j.User == "" || c.Neo4j.Password == "" {
		return fmt.Errorf("neo4j credentials are required (NEO4J_USER / NEO4J_PASSWORD)")
	}
	provider := strings.ToLower(c.LLM.Provider)
	if c.LLM.APIKey == "" && provider != "ollama" {
		return fmt.Errorf("missing API key for llm provider '%s' (LLM_API_KEY or GEMINI_API_KEY)", c.LLM.Provider)
	}
	if c.Retrieval.VectorIndex == "" {
		return fmt.Errorf("vector index name is required")
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Retrieval.TopK)
	}
	return nil
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}
