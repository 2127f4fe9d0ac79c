package router

const (
	LogPrefix = "internal.router"
)

// Template variables every intent prompt may use.
const (
	VarInput       = "input"
	VarChatHistory = "chat_history"
)

// Error messages
const (
	ErrMsgIndexBuild   = "build routing index"
	ErrMsgIndexQuery   = "query routing index"
	ErrMsgReadHistory  = "read conversation history"
	ErrMsgAppendMemory = "append turn to conversation memory"
	ErrMsgUnknownMatch = "index matched an intent outside the catalog, using default"
)
