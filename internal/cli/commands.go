package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/lodex23/htbCli/internal/challenge"
	"github.com/lodex23/htbCli/internal/llm"
	"github.com/lodex23/htbCli/internal/scan"
	"github.com/lodex23/htbCli/internal/suggest"
)

func (r *Runner) cmdStart(args []string) {
	if len(args) == 0 {
		r.printf("Usage: start <name> [type]\n")
		return
	}
	name := args[0]
	if strings.ContainsAny(name, "/\\") {
		r.printf("Challenge names cannot contain path separators.\n")
		return
	}
	ctype := "machine"
	if len(args) > 1 {
		ctype = args[1]
	}
	if r.store.Exists(name) {
		r.printf("Challenge '%s' already exists. Switching to it.\n", name)
	} else {
		if err := r.store.Create(name, challenge.NewContext(ctype)); err != nil {
			r.printf("Error: %v\n", err)
			return
		}
		r.printf("Created challenge '%s' (%s).\n", name, ctype)
	}
	r.current = name
}

func (r *Runner) cmdUse(args []string) {
	if len(args) == 0 {
		r.printf("Usage: use <name>\n")
		return
	}
	name := args[0]
	if !r.store.Exists(name) {
		r.printf("Challenge '%s' not found.\n", name)
		return
	}
	r.current = name
	r.printf("Switched to '%s'.\n", name)
}

func (r *Runner) cmdList() {
	rows, err := r.store.List()
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	if len(rows) == 0 {
		r.printf("No challenges yet. Use 'start <name>'.\n")
		return
	}
	r.printf("%-24s %-16s %s\n", "NAME", "TYPE", "UPDATED")
	for _, row := range rows {
		r.printf("%-24s %-16s %s\n", row.Name, row.Type, row.Updated)
	}
}

func (r *Runner) cmdShow() {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("%s\n", data)
}

func (r *Runner) cmdStatus() {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	target := ctx.Target
	if target == "" {
		target = "(not set)"
	}
	r.printf("%s (%s) target=%s services=%d notes=%d creds=%d tried=%d updated=%s\n",
		ctx.Name, ctx.Type, target, len(ctx.Services), len(ctx.Notes), len(ctx.Creds), len(ctx.Tried), ctx.Updated)
}

func (r *Runner) cmdNote(args []string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) == 0 {
		r.printf("Usage: note <text>\n")
		return
	}
	ctx.AddNote(strings.Join(args, " "))
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("Note added.\n")
}

func (r *Runner) cmdAsk(args []string, mode string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) == 0 {
		r.printf("Usage: %s <question>\n", mode)
		return
	}
	question := strings.Join(args, " ")
	system := llm.SystemPrompt(ctx, mode)
	answer := r.ai.Ask(context.Background(), system, question)
	r.printf("--- AI ---\n%s\n----------\n", answer)

	// Error strings go into the history too; the audit trail of failed
	// calls is part of the challenge record.
	ctx.RecordHistory(mode, question, answer)
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
	}
}

func (r *Runner) cmdLoadNmap(args []string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) == 0 {
		r.printf("Usage: load_nmap <path-to-xml-or-gnmap>\n")
		return
	}
	path := args[0]
	services, err := scan.Parse(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.printf("File not found: %s\n", path)
			return
		}
		r.printf("Failed to parse: %v\n", err)
		return
	}
	ctx.MergeServices(services)
	ctx.SetArtifact("nmap", path)
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("Loaded %d services from Nmap. Run 'suggest' or 'cheats'.\n", len(services))
}

func (r *Runner) cmdAddService(args []string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) < 2 {
		r.printf("Usage: add_service <port>/<proto> <name>\n")
		return
	}
	key := strings.SplitN(args[0], "/", 2)
	if len(key) != 2 || key[1] == "" {
		r.printf("Usage: add_service <port>/<proto> <name>\n")
		return
	}
	port, err := strconv.Atoi(key[0])
	if err != nil || port < 0 {
		r.printf("Invalid port: %s\n", key[0])
		return
	}
	record := challenge.ServiceRecord{
		Port:    port,
		Proto:   key[1],
		State:   "open",
		Service: args[1],
	}
	ctx.MergeServices([]challenge.ServiceRecord{record})
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("Service %s recorded.\n", record.Key())
}

func (r *Runner) cmdSet(args []string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) < 2 || strings.ToLower(args[0]) != "target" {
		r.printf("Usage: set target <value>\n")
		return
	}
	ctx.Target = args[1]
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("Target set to %s.\n", ctx.Target)
}

func (r *Runner) cmdAddCred(args []string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) < 2 {
		r.printf("Usage: add_cred <user> <pass> [service]\n")
		return
	}
	cred := challenge.Credential{User: args[0], Pass: args[1]}
	if len(args) > 2 {
		cred.Service = args[2]
	}
	ctx.AddCredential(cred)
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("Credential for '%s' added.\n", cred.User)
}

func (r *Runner) cmdMarkTried(args []string) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	if len(args) == 0 {
		r.printf("Usage: mark_tried <keyword>\n")
		return
	}
	keyword := strings.Join(args, " ")
	if !ctx.MarkTried(keyword) {
		r.printf("Already marked: %s\n", keyword)
		return
	}
	if err := r.store.Save(r.current, ctx); err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("Marked tried: %s\n", keyword)
}

func (r *Runner) cmdSuggest(verbose bool) {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	entries := suggest.Suggest(ctx.Services, verbose, ctx.Target, ctx.Creds)
	entries = suggest.FilterTried(entries, ctx.Tried)
	if len(entries) == 0 {
		r.printf("No suggestions yet. Add notes or load Nmap first.\n")
		return
	}
	r.printEntries(entries)
}

func (r *Runner) cmdCheats() {
	ctx, err := r.requireCurrent()
	if err != nil {
		r.reportLoadError(err)
		return
	}
	entries := suggest.Cheatsheet(ctx.Services)
	if len(entries) == 0 {
		r.printf("No cheats available yet. Load services first.\n")
		return
	}
	r.printEntries(entries)
}

func (r *Runner) printEntries(entries []suggest.Entry) {
	for _, entry := range entries {
		r.printf("== %s ==\n%s\n\n", entry.Title, entry.Text)
	}
}
