package boq

import (
	"fmt"
	"strings"

	"boqgen/internal/models"
)

// maxPromptChars bounds the embedded document text so the request stays
// under the remote model's input-token ceiling.
const maxPromptChars = 8000

// SystemPrompt fixes the assistant role and the target JSON contract.
var SystemPrompt = fmt.Sprintf(`You are an expert construction estimator specializing in Bill of Quantities (BOQ) extraction from building plans.

Your task is to analyze construction documents and extract material quantities in a structured format.

Return the data as a JSON object with the following structure:
{
    "project_name": "extracted or inferred project name",
    "items": [
        {
            "item_no": "sequential number",
            "description": "detailed description of the item",
            "unit": "measurement unit (m², m³, m, kg, no., etc.)",
            "quantity": "numeric quantity",
            "category": "one of the known categories"
        }
    ],
    "summary": {
        "total_items": "number of items",
        "categories": ["list of unique categories"]
    }
}

Known categories: %s.

Be thorough and extract all quantifiable items from the document.
Respond with the JSON object only, no explanation or surrounding prose.`,
	strings.Join(models.KnownCategories, ", "))

// BuildPrompt renders the user message for one document. Deterministic given
// the same inputs; text beyond maxPromptChars is dropped.
func BuildPrompt(text, filename string) string {
	return fmt.Sprintf(
		"Please extract the Bill of Quantities from the following construction document:\n\nFilename: %s\n\nContent:\n%s",
		filename, truncateChars(text, maxPromptChars))
}

// truncateChars keeps the first limit characters. The budget is counted in
// runes, not bytes; extracted plan text carries multi-byte units (m², m³) and
// a byte cut could split one.
func truncateChars(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
