// Package batch splits settlement output into provider-size-limited
// chunks. The bulk deposit APIs hang on oversized uploads, so each
// chunk becomes its own output file.
package batch

// Chunk splits items into consecutive chunks of at most size. Every
// item lands in exactly one chunk and no empty trailing chunk is
// produced; empty input yields a single empty chunk so a run always
// writes an output file. Panics if size is not positive.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		panic("batch: chunk size must be positive")
	}

	if len(items) == 0 {
		return [][]T{{}}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
