package core

const (
	ContextKeyAuthID       string = "authping/ctx/auth-id"
	ContextKeyAuthUsername string = "authping/ctx/auth-username"
	ContextKeyAuthType     string = "authping/ctx/auth-type"
	ContextKeyRequestID    string = "authping/ctx/request-id"
	ContextKeySource       string = "authping/ctx/source"
)
