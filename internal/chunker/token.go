package chunker

// EstimateTokens gives a deterministic token estimate: ceil(len/4). This is
// intentionally a fixed approximation, not a real tokenizer — downstream
// budget checks and tests depend on it being exactly this.
func EstimateTokens(text string) int {
	return tokensForLen(len(text))
}

func tokensForLen(n int) int {
	return (n + 3) / 4
}
