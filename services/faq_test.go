package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *FAQStore {
	t.Helper()

	faqJSON := `{
		"donate": {
			"keywords": ["donate", "donation", "give"],
			"answer": "Open a campaign page and complete the checkout.",
			"action": "browse_campaigns"
		},
		"refund": {
			"keywords": ["refund", "money back"],
			"answer": "Write to support with your payment reference."
		}
	}`
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(faqJSON), 0644))

	store, err := LoadFAQ(path)
	require.NoError(t, err)
	return store
}

func TestLoadFAQMissingFile(t *testing.T) {
	_, err := LoadFAQ(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadFAQBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFAQ(path)
	assert.Error(t, err)
}

func TestReplyMatchesKeywordCaseInsensitive(t *testing.T) {
	store := testStore(t)

	reply := store.Reply("Can I get a REFUND please")
	assert.Equal(t, "refund", reply.Topic)
	assert.Contains(t, reply.Answer, "payment reference")
}

func TestReplyFAQWinsOverGreeting(t *testing.T) {
	store := testStore(t)

	reply := store.Reply("hello, how do I donate?")
	assert.Equal(t, "donate", reply.Topic)
	assert.Equal(t, "browse_campaigns", reply.Action)
}

func TestReplyGreeting(t *testing.T) {
	store := testStore(t)

	reply := store.Reply("good morning")
	assert.Equal(t, "greeting", reply.Topic)
}

func TestReplyThanks(t *testing.T) {
	store := testStore(t)

	reply := store.Reply("thank you!")
	assert.Equal(t, "thanks", reply.Topic)
}

func TestReplyEchoFallback(t *testing.T) {
	store := testStore(t)

	reply := store.Reply("what is the meaning of life")
	assert.Equal(t, "unknown", reply.Topic)
	assert.Contains(t, reply.Answer, "what is the meaning of life")
}

func TestTopicsAreSorted(t *testing.T) {
	store := testStore(t)
	assert.Equal(t, []string{"donate", "refund"}, store.Topics())
}
