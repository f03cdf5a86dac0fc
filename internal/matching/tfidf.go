package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const maxFeatures = 1000

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// englishStopWords are dropped before n-grams are built
var englishStopWords = toSet(
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
	"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "an",
	"and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around",
	"as", "at", "back", "be", "became", "because", "become", "becomes", "becoming", "been",
	"before", "beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "both",
	"but", "by", "can", "cannot", "could", "do", "done", "down", "due", "during",
	"each", "eg", "either", "else", "elsewhere", "enough", "etc", "even", "ever", "every",
	"everyone", "everything", "everywhere", "except", "few", "for", "former", "formerly", "from", "further",
	"had", "has", "have", "he", "hence", "her", "here", "hereafter", "hereby", "herein",
	"hers", "herself", "him", "himself", "his", "how", "however", "ie", "if", "in",
	"inc", "indeed", "into", "is", "it", "its", "itself", "keep", "last", "latter",
	"least", "less", "ltd", "made", "many", "may", "me", "meanwhile", "might", "mine",
	"more", "moreover", "most", "mostly", "much", "must", "my", "myself", "namely", "neither",
	"never", "nevertheless", "next", "no", "nobody", "none", "nor", "not", "nothing", "now",
	"nowhere", "of", "off", "often", "on", "once", "one", "only", "onto", "or",
	"other", "others", "otherwise", "our", "ours", "ourselves", "out", "over", "own", "per",
	"perhaps", "please", "rather", "re", "same", "see", "seem", "seemed", "seeming", "seems",
	"several", "she", "should", "since", "so", "some", "somehow", "someone", "something", "sometime",
	"sometimes", "somewhere", "still", "such", "than", "that", "the", "their", "them", "themselves",
	"then", "thence", "there", "thereafter", "thereby", "therefore", "therein", "thereupon", "these", "they",
	"this", "those", "though", "through", "throughout", "thru", "thus", "to", "together", "too",
	"toward", "towards", "under", "until", "up", "upon", "us", "very", "via", "was",
	"we", "well", "were", "what", "whatever", "when", "whence", "whenever", "where", "whereafter",
	"whereas", "whereby", "wherein", "whereupon", "wherever", "whether", "which", "while", "who", "whoever",
	"whole", "whom", "whose", "why", "will", "with", "within", "without", "would", "yet",
	"you", "your", "yours", "yourself", "yourselves",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// analyze lower-cases text, keeps tokens of two or more word characters,
// drops stop words and emits unigrams plus bigrams
func analyze(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if !englishStopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// tfidfVectors fits a vocabulary over docs and returns one L2-normalized
// vector per doc. idf is smoothed: ln((1+n)/(1+df)) + 1.
func tfidfVectors(docs []string) []map[string]float64 {
	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	corpusFreq := make(map[string]float64)
	for i, doc := range docs {
		counts[i] = make(map[string]float64)
		for _, term := range analyze(doc) {
			counts[i][term]++
			corpusFreq[term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	vocab := limitVocabulary(corpusFreq, maxFeatures)
	n := float64(len(docs))

	vectors := make([]map[string]float64, len(docs))
	for i, tf := range counts {
		vec := make(map[string]float64, len(tf))
		norm := 0.0
		for term, count := range tf {
			if !vocab[term] {
				continue
			}
			weight := count * (math.Log((1+n)/(1+float64(df[term]))) + 1)
			vec[term] = weight
			norm += weight * weight
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

// limitVocabulary keeps the max most frequent terms, ties broken alphabetically
func limitVocabulary(freq map[string]float64, max int) map[string]bool {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	if len(terms) > max {
		sort.Slice(terms, func(i, j int) bool {
			if freq[terms[i]] != freq[terms[j]] {
				return freq[terms[i]] > freq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:max]
	}
	vocab := make(map[string]bool, len(terms))
	for _, term := range terms {
		vocab[term] = true
	}
	return vocab
}

// TextSimilarity is the cosine similarity of the TF-IDF vectors of a and b,
// fitted on the pair. Empty input on either side scores 0.
func TextSimilarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	vectors := tfidfVectors([]string{a, b})
	dot := 0.0
	for term, wa := range vectors[0] {
		dot += wa * vectors[1][term]
	}
	return clamp01(dot)
}
