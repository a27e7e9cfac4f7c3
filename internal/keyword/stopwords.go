package keyword

// stopwords are common English words excluded from keyword extraction.
// Tokens shorter than MinTokenLength are filtered before this list applies,
// so entries below three characters would be redundant.
var stopwords = map[string]struct{}{
	"and":     {},
	"are":     {},
	"but":     {},
	"for":     {},
	"from":    {},
	"had":     {},
	"has":     {},
	"have":    {},
	"her":     {},
	"his":     {},
	"into":    {},
	"not":     {},
	"our":     {},
	"out":     {},
	"own":     {},
	"that":    {},
	"the":     {},
	"their":   {},
	"them":    {},
	"then":    {},
	"there":   {},
	"these":   {},
	"they":    {},
	"this":    {},
	"was":     {},
	"were":    {},
	"what":    {},
	"when":    {},
	"where":   {},
	"which":   {},
	"while":   {},
	"with":    {},
	"within":  {},
	"without": {},
	"you":     {},
	"your":    {},
	"about":   {},
	"after":   {},
	"all":     {},
	"also":    {},
	"been":    {},
	"before":  {},
	"being":   {},
	"between": {},
	"both":    {},
	"can":     {},
	"does":    {},
	"during":  {},
	"each":    {},
	"how":     {},
	"its":     {},
	"more":    {},
	"most":    {},
	"other":   {},
	"over":    {},
	"some":    {},
	"such":    {},
	"than":    {},
	"under":   {},
	"using":   {},
	"very":    {},
	"will":    {},
}
