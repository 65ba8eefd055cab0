package aigen

import (
	"strconv"
	"strings"

	"brickforge/internal/catalog"
)

// maxParts is the soft cap communicated to the model for typical requests.
const maxParts = 30

// buildSystemPrompt embeds the full list of valid part and color identifiers
// so the model can only choose from the catalog.
func buildSystemPrompt(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("You are a brick build generator. The user describes a structure; you reply with exactly one JSON array and nothing else. No markdown, no code block, no explanation.\n\n")
	b.WriteString("Each element: {\"partId\":\"<id>\",\"x\":<number>,\"y\":<number>,\"z\":<number>,\"rotation\":0|1|2|3,\"colorId\":\"<id>\"}\n")
	b.WriteString("rotation is quarter turns about the vertical axis. x and z are grid studs; y is the floor height of the part in world units (one brick is 1.2, one plate is 0.4).\n\n")
	b.WriteString("Valid partId values: ")
	b.WriteString(strings.Join(cat.PartIDs(), ", "))
	b.WriteString("\nValid colorId values: ")
	b.WriteString(strings.Join(cat.ColorIDs(), ", "))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Start builds at ground level (y 0) and stack parts on top of each other; never leave parts floating.\n")
	b.WriteString("- Use at most ")
	b.WriteString(strconv.Itoa(maxParts))
	b.WriteString(" parts for a typical request.\n")
	b.WriteString("- Only use the listed partId and colorId values.\n")
	b.WriteString("- Reply with only the JSON array.")
	return b.String()
}
