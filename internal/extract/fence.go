package extract

import (
	"strings"
)

type fencedBlock struct {
	tag     string
	content string
}

// locateBlock returns the content of the best candidate fenced block in
// text. Blocks tagged "json" whose trimmed content starts with "{" win,
// then any block starting with "{", then the first json-tagged block.
// Blocks that merely share the fence syntax (shell snippets and the like)
// lose the tie-break because they do not open with "{".
func locateBlock(text string) (string, bool) {
	blocks := fencedBlocks(text)
	if len(blocks) == 0 {
		return "", false
	}

	for _, b := range blocks {
		if b.tag == "json" && strings.HasPrefix(strings.TrimSpace(b.content), "{") {
			return b.content, true
		}
	}

	for _, b := range blocks {
		if strings.HasPrefix(strings.TrimSpace(b.content), "{") {
			return b.content, true
		}
	}

	for _, b := range blocks {
		if b.tag == "json" {
			return b.content, true
		}
	}

	return "", false
}

func fencedBlocks(text string) []fencedBlock {
	var blocks []fencedBlock

	for {
		start := strings.Index(text, "```")
		if start == -1 {
			break
		}

		rest := text[start+3:]
		nl := strings.Index(rest, "\n")
		if nl == -1 {
			break
		}

		tag := strings.ToLower(strings.TrimSpace(rest[:nl]))
		body := rest[nl+1:]

		end := strings.Index(body, "```")
		if end == -1 {
			break
		}

		blocks = append(blocks, fencedBlock{tag: tag, content: body[:end]})
		text = body[end+3:]
	}

	return blocks
}
