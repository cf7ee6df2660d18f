package models

// EntityMention is a named entity found in a submission. It is derived per
// request and never persisted.
type EntityMention struct {
	Text string `json:"text"`
	Type string `json:"type"`
}
