package keyword

import "strings"

// technologyVocabulary is the curated set of recognized technology names.
// Names are stored lower-cased. Single plain words are matched against the
// token set (exact match, so "go" never fires inside "google"); names with
// dots, dashes, pluses, or spaces are matched as substrings of the
// lower-cased text.
var technologyVocabulary = []string{
	// Languages
	"go", "golang", "python", "javascript", "typescript", "rust", "java",
	"kotlin", "swift", "ruby", "php", "c++", "c#", "elixir", "scala", "dart",

	// Frontend
	"react", "next.js", "vue", "nuxt", "angular", "svelte", "solid.js",
	"astro", "remix", "html", "css", "sass", "tailwind", "tailwind css",
	"three.js", "d3.js", "webgl", "vite", "webpack",

	// Backend & APIs
	"node.js", "express", "fastify", "nestjs", "django", "flask", "fastapi",
	"rails", "spring", "graphql", "grpc", "websocket", "socket.io",

	// Data
	"postgresql", "postgres", "mysql", "sqlite", "mongodb", "redis",
	"elasticsearch", "opensearch", "kafka", "rabbitmq", "prisma", "drizzle",

	// Infra & cloud
	"docker", "kubernetes", "terraform", "aws", "gcp", "azure", "vercel",
	"netlify", "cloudflare", "nginx", "linux", "firebase", "supabase",
	"github actions",

	// Mobile
	"flutter", "react native", "expo",

	// AI/ML
	"pytorch", "tensorflow", "openai", "anthropic", "langchain", "llm",
	"hugging face", "onnx",

	// Misc tooling
	"stripe", "oauth", "jwt", "webassembly", "wasm", "jest", "cypress",
	"playwright", "storybook", "figma",
}

// matchTechnologies returns the vocabulary entries present in the given
// text. tokens must be the token set of the same text.
func matchTechnologies(lowerText string, tokens map[string]struct{}) []string {
	var found []string
	for _, tech := range technologyVocabulary {
		if isPlainWord(tech) {
			if _, ok := tokens[tech]; ok {
				found = append(found, tech)
			}
			continue
		}
		if containsPhrase(lowerText, tech) {
			found = append(found, tech)
		}
	}
	return found
}

// isPlainWord reports whether a vocabulary entry is a single alphanumeric
// word, eligible for exact token matching.
func isPlainWord(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// containsPhrase reports whether text contains the phrase. Both are
// expected to be lower-cased already.
func containsPhrase(text, phrase string) bool {
	offset := 0
	for offset < len(text) {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		i += offset
		// Reject matches embedded in a larger word, e.g. "node.js"
		// inside "supernode.js".
		if boundaryAt(text, i-1) && boundaryAt(text, i+len(phrase)) {
			return true
		}
		offset = i + 1
	}
	return false
}

// boundaryAt reports whether position i in text is a word boundary.
// Out-of-range positions count as boundaries.
func boundaryAt(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}
