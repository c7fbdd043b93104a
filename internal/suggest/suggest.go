package suggest

import (
	"strings"

	"github.com/lodex23/htbCli/internal/challenge"
)

// Entry is one titled block of advisory or cheat-sheet text.
type Entry struct {
	Title string
	Text  string
}

var genericTips = []string{
	"Run full TCP scan if not already: nmap -p- -sC -sV -oA full <target>",
	"If web found, try: whatweb, feroxbuster or ffuf for directories",
	"If creds found anywhere, try SSH/RDP/WinRM reuse",
}

func contains(name, substr string) bool {
	return strings.Contains(name, substr)
}

// PreferredCredential picks the credential used for template substitution:
// the first whose service field matches one of the discovered service names,
// else the first credential, else nil.
func PreferredCredential(creds []challenge.Credential, services []challenge.ServiceRecord) *challenge.Credential {
	if len(creds) == 0 {
		return nil
	}
	for i, cred := range creds {
		want := strings.ToLower(strings.TrimSpace(cred.Service))
		if want == "" {
			continue
		}
		for _, svc := range services {
			if strings.Contains(strings.ToLower(svc.Service), want) {
				return &creds[i]
			}
		}
	}
	return &creds[0]
}

// Suggest maps discovered services to next-step advice via the rule table.
// Verbose prepends the generic reconnaissance tips. Target and creds feed the
// target/credential-aware rule variants; without them the templates keep
// their literal placeholders.
func Suggest(services []challenge.ServiceRecord, verbose bool, target string, creds []challenge.Credential) []Entry {
	out := []Entry{}
	if len(services) == 0 {
		return out
	}
	if verbose {
		out = append(out, Entry{Title: "General", Text: strings.Join(genericTips, "\n")})
	}

	p := params{target: target}
	if cred := PreferredCredential(creds, services); cred != nil {
		p.user = cred.User
		p.pass = cred.Pass
	}

	for _, svc := range services {
		name := strings.ToLower(svc.Service)
		lines := []string{}
		for _, r := range rules {
			if r.match(svc.Port, name) {
				lines = append(lines, r.advice(p)...)
			}
		}
		if len(lines) == 0 {
			continue
		}
		out = append(out, Entry{Title: svc.Title(), Text: strings.Join(lines, "\n")})
	}
	return out
}

// Cheatsheet emits command-only blocks from the same rule table, one entry
// per service key. No substitution happens here; placeholders stay literal.
func Cheatsheet(services []challenge.ServiceRecord) []Entry {
	out := []Entry{}
	if len(services) == 0 {
		return out
	}

	index := map[string]int{}
	for _, svc := range services {
		name := strings.ToLower(svc.Service)
		cmds := []string{}
		for _, r := range rules {
			if r.match(svc.Port, name) {
				cmds = append(cmds, r.cheats...)
			}
		}
		if len(cmds) == 0 {
			continue
		}
		entry := Entry{Title: svc.Title(), Text: strings.Join(cmds, "\n")}
		if i, ok := index[svc.Title()]; ok {
			out[i] = entry
			continue
		}
		index[svc.Title()] = len(out)
		out = append(out, entry)
	}
	return out
}

// FilterTried drops entries whose title or text mention any tried keyword,
// case-folded. Presentation-layer concern, kept out of the engine proper.
func FilterTried(entries []Entry, tried []string) []Entry {
	if len(tried) == 0 {
		return entries
	}
	kept := []Entry{}
	for _, entry := range entries {
		haystack := strings.ToLower(entry.Title + "\n" + entry.Text)
		skip := false
		for _, keyword := range tried {
			if keyword == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, entry)
		}
	}
	return kept
}
