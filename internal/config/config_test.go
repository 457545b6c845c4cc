package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "rehab_vector_index", cfg.Retrieval.VectorIndex)
	assert.Equal(t, "rehab_fulltext_index", cfg.Retrieval.FulltextIndex)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[neo4j]
uri = "bolt://db:7687"
password = "secret"

[llm]
provider = "openai"
model = "gpt-4o-mini"

[retrieval]
top_k = 8
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://db:7687", cfg.Neo4j.URI)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 8, cfg.Retrieval.TopK)
	// Untouched sections keep their defaults.
	assert.Equal(t, "rehab_vector_index", cfg.Retrieval.VectorIndex)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "env-secret")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("TOP_K", "3")
	t.Setenv("VECTOR_INDEX_NAME", "custom_index")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "env-secret", cfg.Neo4j.Password)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "custom_index", cfg.Retrieval.VectorIndex)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Neo4j.Password = "pw"
	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	missingKey := Default()
	missingKey.Neo4j.Password = "pw"
	err := missingKey.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	// Ollama runs without a key.
	ollama := Default()
	ollama.Neo4j.Password = "pw"
	ollama.LLM.Provider = "ollama"
	assert.NoError(t, ollama.Validate())

	missingStore := Default()
	missingStore.LLM.APIKey = "key"
	assert.Error(t, missingStore.Validate())

	badTopK := Default()
	badTopK.Neo4j.Password = "pw"
	badTopK.LLM.APIKey = "key"
	badTopK.Retrieval.TopK = 0
	assert.Error(t, badTopK.Validate())
}
