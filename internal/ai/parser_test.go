package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberedListParserStructured(t *testing.T) {
	raw := `Here are some ideas:

1. **Task Tracker** - a CLI for managing daily tasks
2. Recipe API: serve recipes over REST
3) Weather Dashboard
`
	items, structured := NewProjectIdeasParser().Parse(raw)

	require.True(t, structured)
	require.Len(t, items, 3)
	assert.Equal(t, "Task Tracker", items[0].Name)
	assert.Equal(t, "a CLI for managing daily tasks", items[0].Description)
	assert.Equal(t, "Recipe API", items[1].Name)
	assert.Equal(t, "serve recipes over REST", items[1].Description)
	assert.Equal(t, "Weather Dashboard", items[2].Name)
	assert.Empty(t, items[2].Description)
}

func TestNumberedListParserFallback(t *testing.T) {
	raw := "The model decided to answer in prose instead of a list."
	items, structured := NewStartupNamesParser().Parse(raw)

	assert.False(t, structured)
	require.Len(t, items, 1)
	assert.Equal(t, "Suggestions", items[0].Name)
	assert.Equal(t, raw, items[0].Description)
}

func TestNumberedListParserEmptyInput(t *testing.T) {
	items, structured := NewProjectIdeasParser().Parse("")

	assert.False(t, structured)
	require.Len(t, items, 1)
	assert.Equal(t, "Ideas", items[0].Name)
}

func TestChatMessagesShape(t *testing.T) {
	svc := NewService(nil)
	msgs := svc.ChatMessages(&ChatRequest{
		Messages: []Message{
			{Role: "user", Content: "first question"},
			{Role: "assistant", Content: "first answer"},
			{Role: "", Content: "dropped"},
		},
		Message: "second question",
	})

	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "first question", msgs[1].Content)
	assert.Equal(t, "assistant", msgs[2].Role)
	assert.Equal(t, Message{Role: "user", Content: "second question"}, msgs[3])
}
