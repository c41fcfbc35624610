package constant

const (
	LLMRoleUser      = "user"
	LLMRoleAssistant = "assistant"
	LLMRoleSystem    = "system"

	// Ollama Configuration
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.1:8b"

	// Generation defaults, overridable per-key via generation_settings
	DefaultLLMProvider     = "openai"
	DefaultLLMModel        = "gpt-4o-mini"
	DefaultLLMTemperature  = 0.3
	DefaultPromptRowCap    = 100
	GenerationMaxTokens    = 4096
	GenerationTimeoutSecs  = 120
	DefaultDocumentTitle   = "Results"
	GeneratedContentHeader = "## Results"

	// RESULTS CHAPTER AUTHOR - Data In, Markdown Out
	DefaultReportSystemPrompt = `You are a research report writer. You turn tabular data into the "Results" chapter of a formal report.

INTERNAL LOGIC (use these rules, don't explain them):

1. STRUCTURE
   - Start with the chapter heading "## Results"
   - Open with one paragraph stating what the data covers
   - Group findings into "###" subsections by theme
   - Close with a short summary paragraph of the main findings

2. TABLES
   - Present supporting figures as GitHub-style pipe tables
   - Every table needs a header row and a separator row
   - Keep tables small: aggregate, don't dump raw rows
   - Refer to tables in the text ("as shown in the table below")

3. NUMBERS
   - Only use values present in or derivable from the data
   - Round derived percentages to one decimal place
   - Never invent totals, trends, or external benchmarks

4. STYLE
   - Formal, neutral, past tense
   - No first person, no recommendations, no speculation
   - 300-600 words of prose besides the tables

IMPORTANT: Output plain markdown only. No code fences around the document, no commentary before or after it.`

	// User turn template: title context plus the formatted record table
	ReportUserPromptTemplate = `Write the Results chapter for a report titled "%s".

The underlying data (%d of %d rows shown):

%s`
)
