package httputil

type Context string

// ContextURL holds the external base URL of the API in the gin context.
const ContextURL Context = "envelopes-url"
