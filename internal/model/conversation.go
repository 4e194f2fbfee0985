package model

// Turn is one speaker/text pair in a conversation.
// Speaker labels are opaque and copied through unchanged.
type Turn struct {
	Speaker string `json:"speaker" yaml:"speaker"`
	Text    string `json:"text" yaml:"text"`
}

// Conversation is an ordered sequence of turns
type Conversation struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Turns []Turn `json:"turns" yaml:"turns"`
}

// Clone returns a deep copy of the conversation
func (c Conversation) Clone() Conversation {
	turns := make([]Turn, len(c.Turns))
	copy(turns, c.Turns)
	return Conversation{Title: c.Title, Turns: turns}
}
