package models

import "time"

// DialogueLine is one numbered line of a parsed script.
// Characters are stored upper-cased; LineIndex counts dialogue items from 1.
type DialogueLine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ScriptID  string `json:"script_id" gorm:"not null;size:100;uniqueIndex:idx_script_line"`
	Character string `json:"character" gorm:"not null;size:100;uniqueIndex:idx_script_line"`
	LineIndex int    `json:"line_index" gorm:"not null;uniqueIndex:idx_script_line"`
	Text      string `json:"text" gorm:"type:text"`
}

// TableName returns the table name for the DialogueLine model
func (DialogueLine) TableName() string {
	return "dialogue_lines"
}

// All lists every persisted model, in migration order
func All() []any {
	return []any{&Run{}, &Analysis{}, &DialogueLine{}}
}
