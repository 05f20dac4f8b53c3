package translate

import "strings"

// DefaultMaxChunkSize keeps a plain-mode request comfortably inside the
// completion service's token limits.
const DefaultMaxChunkSize = 6000

// ChunkText splits text into chunks of at most maxSize characters,
// respecting paragraph boundaries. Paragraphs are packed greedily; a
// paragraph that alone exceeds maxSize is split further on line breaks.
// Lines are never cut mid-way, so a single line longer than maxSize is
// emitted whole. Chunk order equals source order, which plain-mode
// reassembly relies on.
func ChunkText(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}
	if len(text) <= maxSize {
		return []string{text}
	}

	var chunks []string
	current := ""

	flush := func() {
		if s := strings.TrimSpace(current); s != "" {
			chunks = append(chunks, s)
		}
		current = ""
	}

	for _, para := range strings.Split(text, "\n\n") {
		if len(current)+len(para)+2 > maxSize {
			flush()
			if len(para) > maxSize {
				for _, line := range strings.Split(para, "\n") {
					if len(current)+len(line)+1 > maxSize {
						flush()
						current = line + "\n"
					} else {
						current += line + "\n"
					}
				}
			} else {
				current = para + "\n\n"
			}
		} else {
			current += para + "\n\n"
		}
	}
	flush()

	return chunks
}
