package mcp

// Input and output schemas for the ShowMCP tools. The SDK derives JSON
// schemas from the struct tags, so every field carries a jsonschema
// description.

// SearchInput is the input schema for search_projects.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"the free-text search query"`
	ProjectIDs []string `json:"project_ids" jsonschema:"project ids to search, in preference order"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

// SearchOutput is the output schema for search_projects.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results" jsonschema:"ranked section matches, best first"`
}

// SearchResultOutput is one ranked section in a search response.
type SearchResultOutput struct {
	ProjectID    string   `json:"project_id" jsonschema:"owning project id"`
	SectionIndex int      `json:"section_index" jsonschema:"section position in document order"`
	Title        string   `json:"title,omitempty" jsonschema:"section title, empty for untitled sections"`
	Content      string   `json:"content,omitempty" jsonschema:"section text"`
	Score        float64  `json:"score" jsonschema:"relevance score, higher is better"`
	MatchedTerms []string `json:"matched_terms,omitempty" jsonschema:"query terms that matched this section"`
}

// SummaryInput is the input schema for get_project_summary.
type SummaryInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project id to summarize"`
}

// SummaryOutput is the output schema for get_project_summary.
type SummaryOutput struct {
	ProjectID     string   `json:"project_id" jsonschema:"project id"`
	Title         string   `json:"title" jsonschema:"project title"`
	BriefOverview string   `json:"brief_overview,omitempty" jsonschema:"short project overview"`
	Description   string   `json:"description,omitempty" jsonschema:"full project description"`
	Tags          []string `json:"tags,omitempty" jsonschema:"project tags"`
	Technologies  []string `json:"technologies,omitempty" jsonschema:"detected technologies"`
	MediaCount    int      `json:"media_count" jsonschema:"number of attached media items"`
	TotalSections int      `json:"total_sections" jsonschema:"number of content sections"`
	Headings      []string `json:"headings,omitempty" jsonschema:"section headings in document order"`
	HasArticle    bool     `json:"has_article" jsonschema:"whether the project has article content"`
}

// IndexInput is the input schema for index_project.
type IndexInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project id to index"`
}

// IndexOutput is the output schema for index_project.
type IndexOutput struct {
	ProjectID    string   `json:"project_id" jsonschema:"project id"`
	ContentHash  string   `json:"content_hash" jsonschema:"fingerprint of the indexed content"`
	Sections     int      `json:"sections" jsonschema:"number of indexed sections"`
	Keywords     []string `json:"keywords,omitempty" jsonschema:"extracted keywords"`
	Technologies []string `json:"technologies,omitempty" jsonschema:"detected technologies"`
	IndexedAt    string   `json:"indexed_at" jsonschema:"RFC3339 indexing timestamp"`
}

// StatusInput is the input schema for index_status. It takes no arguments.
type StatusInput struct{}

// StatusOutput is the output schema for index_status.
type StatusOutput struct {
	CachedProjects []string `json:"cached_projects" jsonschema:"project ids with a live cached index, sorted"`
	CacheSize      int      `json:"cache_size" jsonschema:"number of cached indexes"`
	ServerVersion  string   `json:"server_version" jsonschema:"showmcp version"`
}

// ClearCacheInput is the input schema for clear_cache.
type ClearCacheInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"project id to evict; empty clears the whole cache"`
}

// ClearCacheOutput is the output schema for clear_cache.
type ClearCacheOutput struct {
	Cleared   string `json:"cleared" jsonschema:"'all' or the evicted project id"`
	Remaining int    `json:"remaining" jsonschema:"number of cached indexes left"`
}
