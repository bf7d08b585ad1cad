package basic

// Tally sums the value lookup returns for each key. Keys are looked up in
// order, repeats included.
func Tally(lookup func(key string) int, keys ...string) int {
	total := 0
	for _, key := range keys {
		total += lookup(key)
	}

	return total
}
