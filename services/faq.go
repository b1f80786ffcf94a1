package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// FAQEntry is one answerable topic with the keywords that trigger it.
type FAQEntry struct {
	Keywords []string `json:"keywords"`
	Answer   string   `json:"answer"`
	Action   string   `json:"action,omitempty"`
}

// ChatReply is the assistant's answer to one user message.
type ChatReply struct {
	Topic  string `json:"topic"`
	Answer string `json:"answer"`
	Action string `json:"action,omitempty"`
}

// FAQStore holds the FAQ knowledge base. Loaded once at startup and
// read-only afterwards, so handlers can share it without locking.
type FAQStore struct {
	entries map[string]FAQEntry
	topics  []string
}

// LoadFAQ reads the FAQ knowledge base from a JSON file mapping topic
// names to entries.
func LoadFAQ(path string) (*FAQStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %v", err)
	}

	var entries map[string]FAQEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file: %v", err)
	}

	// Stable topic order so keyword matching is deterministic
	topics := make([]string, 0, len(entries))
	for topic := range entries {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	return &FAQStore{entries: entries, topics: topics}, nil
}

// Topics returns the topic names in matching order.
func (s *FAQStore) Topics() []string {
	return s.topics
}

var greetingWords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}

var thanksWords = []string{"thank", "thanks"}

// Reply answers a user message. FAQ keyword matches win over the greeting
// and thanks heuristics, so "hello, how do I donate?" gets the donation
// answer rather than a greeting.
func (s *FAQStore) Reply(message string) ChatReply {
	lowered := strings.ToLower(message)

	for _, topic := range s.topics {
		entry := s.entries[topic]
		for _, keyword := range entry.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return ChatReply{
					Topic:  topic,
					Answer: entry.Answer,
					Action: entry.Action,
				}
			}
		}
	}

	for _, word := range greetingWords {
		if strings.Contains(lowered, word) {
			return ChatReply{
				Topic:  "greeting",
				Answer: "Hello! I can help you with donations, campaigns, and schools. What would you like to know?",
			}
		}
	}

	for _, word := range thanksWords {
		if strings.Contains(lowered, word) {
			return ChatReply{
				Topic:  "thanks",
				Answer: "You're welcome! Let me know if there's anything else I can help with.",
			}
		}
	}

	return ChatReply{
		Topic:  "unknown",
		Answer: fmt.Sprintf("I'm not sure about \"%s\". Try asking about donations, campaigns, schools, or receipts.", strings.TrimSpace(message)),
	}
}
