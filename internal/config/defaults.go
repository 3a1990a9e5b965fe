package config

// DefaultPersona is the twin's base instruction when none is configured.
const DefaultPersona = "You are the digital twin of the journal's author. " +
	"You speak in the first person, as the author, drawing only on the " +
	"memories provided. If the memories do not cover the question, say so honestly."

// DefaultNoMemoryReply is returned when retrieval finds nothing relevant.
const DefaultNoMemoryReply = "I don't have any strong memories about that."

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/omoide/data/db/journal.db"
	}
	if cfg.Storage.KeywordIndexPath == "" {
		cfg.Storage.KeywordIndexPath = "/usr/local/var/omoide/data/indices/bleve"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/omoide/data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Generation.Host == "" {
		cfg.Generation.Host = "http://localhost:11434"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "llama3.1:8b"
	}
	if cfg.Generation.TimeoutSeconds == 0 {
		cfg.Generation.TimeoutSeconds = 120
	}
	if cfg.Retrieval.Search.TopK == 0 {
		cfg.Retrieval.Search.TopK = 10
	}
	if cfg.Retrieval.Search.MinScore == 0 {
		cfg.Retrieval.Search.MinScore = 0.3
	}
	if cfg.Retrieval.Answer.TopK == 0 {
		cfg.Retrieval.Answer.TopK = 15
	}
	if cfg.Retrieval.Answer.MinScore == 0 {
		cfg.Retrieval.Answer.MinScore = 0.15
	}
	if cfg.Twin.Persona == "" {
		cfg.Twin.Persona = DefaultPersona
	}
	if cfg.Twin.ContextBudget == 0 {
		cfg.Twin.ContextBudget = 4000
	}
	if cfg.Twin.NoMemoryReply == "" {
		cfg.Twin.NoMemoryReply = DefaultNoMemoryReply
	}
	if cfg.Twin.AnswerMaxTokens == 0 {
		cfg.Twin.AnswerMaxTokens = 512
	}
	if cfg.Twin.AnswerTemperature == 0 {
		cfg.Twin.AnswerTemperature = 0.7
	}
	if cfg.Twin.ExpansionMaxTokens == 0 {
		cfg.Twin.ExpansionMaxTokens = 60
	}
	if cfg.Twin.ExpansionTemperature == 0 {
		cfg.Twin.ExpansionTemperature = 0.1
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".txt", ".md", ".pdf", ".docx"}
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 500
	}
}
