package dialogue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/killallgit/dialogue-qc/internal/models"
)

// contentTypeDialogue marks spoken items in a parsed script
const contentTypeDialogue = "dialogue"

type parsedScript struct {
	Content []scriptItem `json:"content"`
}

type scriptItem struct {
	Type      string `json:"type"`
	Character string `json:"character"`
	Text      string `json:"text"`
}

// ExtractLines reads a parsed script document and numbers its dialogue items
// from 1 in document order. Non-dialogue items do not consume a number.
func ExtractLines(scriptID string, parsedJSON []byte) ([]models.DialogueLine, error) {
	var doc parsedScript
	if err := json.Unmarshal(parsedJSON, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	lines := make([]models.DialogueLine, 0, len(doc.Content))
	index := 1
	for _, item := range doc.Content {
		if item.Type != contentTypeDialogue {
			continue
		}
		lines = append(lines, models.DialogueLine{
			ScriptID:  scriptID,
			Character: strings.ToUpper(item.Character),
			LineIndex: index,
			Text:      item.Text,
		})
		index++
	}
	return lines, nil
}
