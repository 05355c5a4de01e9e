package keywords

// englishStopWords is the base English stop-word list.
var englishStopWords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for",
	"with", "about", "against", "between", "into", "through", "during",
	"before", "after", "above", "below", "to", "from", "up", "down", "in",
	"out", "on", "off", "over", "under", "again", "further", "then",
	"once", "here", "there", "when", "where", "why", "how", "all", "any",
	"both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"can", "cannot", "also", "however", "therefore",
}

// conversationalStopWords adds common programming and conversation filler
// that drowns out real topics in chat transcripts.
var conversationalStopWords = []string{
	"would", "could", "should", "might", "must", "shall", "will",
	"just", "like", "use", "using", "used", "make", "making", "made",
	"want", "need", "help", "please", "thanks", "thank", "hello", "hi",
	"yes", "no", "okay", "ok", "sure", "right", "left", "top", "bottom",
	"first", "second", "third", "last", "next", "previous", "current",
	"new", "old", "good", "bad", "best", "worst", "better", "worse",
}

func defaultStopWords() map[string]struct{} {
	words := make(map[string]struct{}, len(englishStopWords)+len(conversationalStopWords))
	for _, w := range englishStopWords {
		words[w] = struct{}{}
	}
	for _, w := range conversationalStopWords {
		words[w] = struct{}{}
	}
	return words
}
