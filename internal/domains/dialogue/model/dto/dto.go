package dto

import (
	"strconv"
	"strings"
)

const contextPathSegment = "/contexts/"

// WebhookRequest is one conversational turn as delivered by the NLU platform.
type WebhookRequest struct {
	ResponseID  string       `json:"responseId"`
	Session     string       `json:"session"`
	QueryResult *QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText      string     `json:"queryText"`
	Intent         Intent     `json:"intent"`
	Parameters     Parameters `json:"parameters"`
	OutputContexts []Context  `json:"outputContexts"`
	LanguageCode   string     `json:"languageCode"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Context is a named parameter carrier that lives for LifespanCount turns.
type Context struct {
	Name          string     `json:"name"`
	LifespanCount int        `json:"lifespanCount"`
	Parameters    Parameters `json:"parameters,omitempty"`
}

// WebhookResponse is the reply for one turn. A nil OutputContexts leaves the
// platform's contexts untouched.
type WebhookResponse struct {
	FulfillmentText string    `json:"fulfillmentText"`
	OutputContexts  []Context `json:"outputContexts,omitempty"`
}

// NewContext names a context for session the way the platform expects.
func NewContext(session, name string, lifespan int, params Parameters) Context {
	return Context{
		Name:          session + contextPathSegment + name,
		LifespanCount: lifespan,
		Parameters:    params,
	}
}

// Parameters holds extracted values. JSON numbers arrive as float64.
type Parameters map[string]any

// String renders the value under key, or "" when it is absent or empty.
// Dotted keys reach into nested objects, as in "person.name".
func (p Parameters) String(key string) string {
	value, ok := p.lookup(key)
	if !ok {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// FirstString evaluates keys in order and returns the first non-empty value.
func (p Parameters) FirstString(keys ...string) string {
	for _, key := range keys {
		if value := p.String(key); value != "" {
			return value
		}
	}

	return ""
}

// Int64 parses the value under key as a whole number.
func (p Parameters) Int64(key string) (int64, bool) {
	return ParseWholeNumber(p.String(key))
}

func (p Parameters) lookup(key string) (any, bool) {
	if p == nil {
		return nil, false
	}

	if value, ok := p[key]; ok {
		return value, true
	}

	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}

	switch nested := p[head].(type) {
	case map[string]any:
		return Parameters(nested).lookup(rest)
	case Parameters:
		return nested.lookup(rest)
	default:
		return nil, false
	}
}

// ParseWholeNumber accepts "3" and "3.0" but not "3.5" or "".
func ParseWholeNumber(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}

	return int64(f), true
}
