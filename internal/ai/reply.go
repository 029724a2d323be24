package ai

// Placeholder assistant replies. Real model invocation lands when the
// generation pipeline is connected; until then the assistant response is
// deterministic so the rest of the system can be built and tested
// against a stable contract.

const assistantReplyPrefix = "Thanks! AI generation will be connected soon. You said: "

// BuildAssistantReply returns the placeholder assistant response for a
// persisted user message.
func BuildAssistantReply(content string) string {
	return assistantReplyPrefix + content
}
