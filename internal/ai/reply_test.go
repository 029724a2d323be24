package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAssistantReply(t *testing.T) {
	assert.Equal(t,
		"Thanks! AI generation will be connected soon. You said: build a bakery",
		BuildAssistantReply("build a bakery"))
}
