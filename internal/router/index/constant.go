package index

const (
	LogPrefix = "internal.router.index"

	// PayloadKey and PayloadDescription are the qdrant payload fields of an intent point.
	PayloadKey         = "intent"
	PayloadDescription = "description"
)

const classifierPrompt = `You are a semantic router. Decide which of the intents below best describes the user's message.

Intents:
%s
Message: "%s"

Reply with JSON only, in this format:
{
  "intent": "<one of the intent keys above, or none>",
  "confidence": 0-100,
  "reasoning": "short explanation"
}`
