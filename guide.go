package formulary

import "strings"

// Guide is a narrative learning article.
type Guide struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Category         Difficulty `json:"category"`
	ShortDescription string     `json:"shortDescription"`
	Content          string     `json:"content"`
}

// BlockKind classifies one line of guide content.
type BlockKind string

// BlockKind constants.
const (
	BlockHeading2  BlockKind = "heading2"
	BlockHeading3  BlockKind = "heading3"
	BlockCode      BlockKind = "code"
	BlockBreak     BlockKind = "break"
	BlockParagraph BlockKind = "paragraph"
)

// Block is a typed unit of rendered guide content.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text,omitempty"`
}

// ParseGuideContent classifies each line of content into a Block.
//
// Lines starting with "### " or "## " are headings, lines wholly wrapped in a
// single pair of backticks are inline-code paragraphs, blank lines are breaks
// and everything else is a plain paragraph. There is no nesting.
func ParseGuideContent(content string) []Block {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classifyLine(line))
	}
	return blocks
}

func classifyLine(line string) Block {
	switch {
	case strings.HasPrefix(line, "### "):
		return Block{Kind: BlockHeading3, Text: line[len("### "):]}
	case strings.HasPrefix(line, "## "):
		return Block{Kind: BlockHeading2, Text: line[len("## "):]}
	case isCodeLine(line):
		return Block{Kind: BlockCode, Text: line[1 : len(line)-1]}
	case strings.TrimSpace(line) == "":
		return Block{Kind: BlockBreak}
	default:
		return Block{Kind: BlockParagraph, Text: line}
	}
}

// isCodeLine reports whether line is exactly one backtick-delimited span.
func isCodeLine(line string) bool {
	if len(line) < 2 || line[0] != '`' || line[len(line)-1] != '`' {
		return false
	}
	return !strings.Contains(line[1:len(line)-1], "`")
}
