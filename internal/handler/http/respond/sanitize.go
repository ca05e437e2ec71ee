package respond

import "regexp"

// Backend API errors can echo credentials from request headers. Mask them
// before the message reaches a log line. The Anthropic pattern runs first
// since it is the more specific of the two.
var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
)

// SanitizeError returns err's message with API keys masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	return msg
}
