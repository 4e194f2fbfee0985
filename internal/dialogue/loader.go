package dialogue

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/medgarble/internal/model"
	"gopkg.in/yaml.v3"
)

// conversationFile is the on-disk YAML schema: either a list of
// conversations or a single conversation document.
type conversationFile struct {
	Conversations []model.Conversation `yaml:"conversations"`
}

// LoadFile reads conversations from a YAML file.
//
// Two layouts are accepted:
//
//	conversations:
//	  - title: ...
//	    turns:
//	      - speaker: Doctor
//	        text: ...
//
// or a single top-level conversation with title/turns keys.
func LoadFile(path string) ([]model.Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read conversations: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML conversation data
func Parse(data []byte) ([]model.Conversation, error) {
	var file conversationFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Conversations) > 0 {
		if err := validate(file.Conversations); err != nil {
			return nil, err
		}
		return file.Conversations, nil
	}

	var single model.Conversation
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse conversations: %w", err)
	}
	if len(single.Turns) == 0 {
		return nil, fmt.Errorf("no conversations found (expected a 'conversations' list or a single 'turns' document)")
	}
	conversations := []model.Conversation{single}
	if err := validate(conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// validate rejects structurally empty turns early, with a position in the
// message so broken files are easy to fix.
func validate(conversations []model.Conversation) error {
	for ci, conv := range conversations {
		if len(conv.Turns) == 0 {
			return fmt.Errorf("conversation %d (%q): no turns", ci, conv.Title)
		}
		for ti, turn := range conv.Turns {
			if strings.TrimSpace(turn.Speaker) == "" {
				return fmt.Errorf("conversation %d (%q), turn %d: empty speaker", ci, conv.Title, ti)
			}
		}
	}
	return nil
}
