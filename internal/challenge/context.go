package challenge

import (
	"fmt"
	"strings"
)

// ServiceRecord is one open network service discovered on the target.
// Records are identified by their port/proto pair.
type ServiceRecord struct {
	Port    int    `json:"port"`
	Proto   string `json:"proto"`
	State   string `json:"state"`
	Service string `json:"service"`
	Product string `json:"product,omitempty"`
	Version string `json:"version,omitempty"`
}

func (s ServiceRecord) Key() string {
	return fmt.Sprintf("%d/%s", s.Port, s.Proto)
}

// Title is the display form used by suggestion output, e.g. "445/tcp smb".
func (s ServiceRecord) Title() string {
	return strings.TrimSpace(fmt.Sprintf("%d/%s %s", s.Port, s.Proto, s.Service))
}

// Credential is an append-only username/password pair. Service narrows it to
// one protocol; empty means generic.
type Credential struct {
	User    string `json:"user"`
	Pass    string `json:"pass"`
	Service string `json:"service,omitempty"`
}

type HistoryEntry struct {
	Mode     string `json:"mode"`
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Context is the full persisted state of one challenge. Name and Updated are
// managed by the store; everything else is mutated by command handlers and
// saved in full after every change.
type Context struct {
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Target    string            `json:"target,omitempty"`
	Services  []ServiceRecord   `json:"services"`
	Notes     []string          `json:"notes"`
	Creds     []Credential      `json:"creds,omitempty"`
	Tried     []string          `json:"tried,omitempty"`
	History   []HistoryEntry    `json:"history"`
	Artifacts map[string]string `json:"artifacts"`
	Updated   string            `json:"updated"`
}

func NewContext(ctype string) Context {
	return Context{
		Type:      ctype,
		Services:  []ServiceRecord{},
		Notes:     []string{},
		History:   []HistoryEntry{},
		Artifacts: map[string]string{},
	}
}

// MergeServices overlays incoming records onto existing ones, last writer
// wins per port/proto key. Overwritten keys keep their position; new keys
// append in input order. Merging the same list twice is a no-op.
func MergeServices(existing, incoming []ServiceRecord) []ServiceRecord {
	merged := append([]ServiceRecord{}, existing...)
	index := map[string]int{}
	for i, s := range merged {
		index[s.Key()] = i
	}
	for _, s := range incoming {
		if i, ok := index[s.Key()]; ok {
			merged[i] = s
			continue
		}
		index[s.Key()] = len(merged)
		merged = append(merged, s)
	}
	return merged
}

// AppendUnique appends value unless an exact match is already present.
func AppendUnique(list []string, value string) []string {
	for _, item := range list {
		if item == value {
			return list
		}
	}
	return append(list, value)
}

func (c *Context) MergeServices(incoming []ServiceRecord) {
	c.Services = MergeServices(c.Services, incoming)
}

func (c *Context) AddNote(text string) {
	c.Notes = append(c.Notes, text)
}

func (c *Context) AddCredential(cred Credential) {
	c.Creds = append(c.Creds, cred)
}

// MarkTried records a tried keyword; returns false when it was already there.
func (c *Context) MarkTried(keyword string) bool {
	before := len(c.Tried)
	c.Tried = AppendUnique(c.Tried, keyword)
	return len(c.Tried) > before
}

func (c *Context) RecordHistory(mode, question, answer string) {
	c.History = append(c.History, HistoryEntry{Mode: mode, Question: question, Answer: answer})
}

func (c *Context) SetArtifact(label, path string) {
	if c.Artifacts == nil {
		c.Artifacts = map[string]string{}
	}
	c.Artifacts[label] = path
}
