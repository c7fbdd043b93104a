package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lodex23/htbCli/internal/challenge"
)

const basePrompt = "You are an ethical HTB assistant. Only provide legal guidance for authorized labs. " +
	"You must respond with concrete, copy-pasteable commands, short explanations, and risk notes. " +
	"Never claim to have run commands."

const quizAddendum = " Focus on Hack The Box Starting Point quiz answers. Be concise and cite the relevant service/step."

// SystemPrompt grounds the backend in the current challenge: target, known
// services, credentials (never the password itself), notes and tried list.
func SystemPrompt(ctx challenge.Context, mode string) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	if mode == "quiz" {
		b.WriteString(quizAddendum)
	}

	if ctx.Target != "" {
		fmt.Fprintf(&b, "\nTarget: %s", ctx.Target)
	}

	services, _ := json.Marshal(ctx.Services)
	fmt.Fprintf(&b, "\nKnown services: %s", services)

	if len(ctx.Creds) > 0 {
		pairs := make([]string, 0, len(ctx.Creds))
		for _, cred := range ctx.Creds {
			if cred.Service != "" {
				pairs = append(pairs, fmt.Sprintf("%s (%s)", cred.User, cred.Service))
				continue
			}
			pairs = append(pairs, cred.User)
		}
		fmt.Fprintf(&b, "\nKnown credentials (users only): %s", strings.Join(pairs, ", "))
	}

	notes, _ := json.Marshal(ctx.Notes)
	fmt.Fprintf(&b, "\nNotes: %s", notes)

	if len(ctx.Tried) > 0 {
		fmt.Fprintf(&b, "\nAlready tried: %s", strings.Join(ctx.Tried, ", "))
	}
	return b.String()
}
