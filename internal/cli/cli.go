package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lodex23/htbCli/internal/challenge"
	"github.com/lodex23/htbCli/internal/llm"
)

var ErrNoActiveChallenge = errors.New("no active challenge")

const welcome = `HTB Interactive Assistant
Type 'help' to see available commands. Type 'exit' to quit.`

const helpText = `Commands:
  start <name> [type]          Start a new challenge (type: starting-point|machine)
  use <name>                   Switch to an existing challenge
  list                         List challenges
  show                         Show current challenge context
  status                       One-line summary of the current challenge
  note <text>                  Add a note to this challenge
  ask <question>               Ask AI any question in context of this challenge
  quiz <question>              Ask AI to answer a Starting Point quiz question
  load_nmap <path>             Load Nmap XML or gnmap and update services
  add_service <port>/<proto> <name>  Record a service by hand
  set target <value>           Set the target address
  add_cred <user> <pass> [service]   Record a credential
  mark_tried <keyword>         Suppress suggestions mentioning a keyword
  suggest                      Suggest next steps based on known services
  next                         Same as suggest but succinct
  cheats                       Show command templates for detected services
  help                         Show this help
  exit                         Exit the assistant`

// Runner is the interactive shell. One command runs to completion before the
// next line is read; every mutation loads the challenge fresh and saves it
// back immediately.
type Runner struct {
	store       *challenge.Store
	ai          llm.Client
	current     string
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func NewRunner(store *challenge.Store, ai llm.Client) *Runner {
	return &Runner{
		store:       store,
		ai:          ai,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: stdinIsTTY(),
	}
}

func (r *Runner) Run() error {
	r.printf("%s\n", welcome)
	if err := r.ensureAck(); err != nil {
		return err
	}
	for {
		line, err := r.readLine(r.prompt())
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			if quit := r.dispatch(line); quit {
				return nil
			}
		}
		if err == io.EOF {
			r.printf("Bye!\n")
			return nil
		}
	}
}

func (r *Runner) prompt() string {
	prefix := "[no-chal]"
	if r.current != "" {
		prefix = "[" + r.current + "]"
	}
	return prefix + " > "
}

// dispatch runs one command line; true means the session should end.
func (r *Runner) dispatch(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", ":q":
		r.printf("Bye!\n")
		return true
	case "help":
		r.printf("%s\n", helpText)
	case "start":
		r.cmdStart(args)
	case "use":
		r.cmdUse(args)
	case "list":
		r.cmdList()
	case "show":
		r.cmdShow()
	case "status":
		r.cmdStatus()
	case "note":
		r.cmdNote(args)
	case "ask":
		r.cmdAsk(args, "general")
	case "quiz":
		r.cmdAsk(args, "quiz")
	case "load_nmap":
		r.cmdLoadNmap(args)
	case "add_service":
		r.cmdAddService(args)
	case "set":
		r.cmdSet(args)
	case "add_cred":
		r.cmdAddCred(args)
	case "mark_tried":
		r.cmdMarkTried(args)
	case "suggest":
		r.cmdSuggest(true)
	case "next":
		r.cmdSuggest(false)
	case "cheats":
		r.cmdCheats()
	default:
		r.printf("Unknown command: %s. Type 'help'.\n", cmd)
	}
	return false
}

// requireCurrent loads the active challenge, or reports why it cannot.
// Callers bail out on error; the session itself is never affected.
func (r *Runner) requireCurrent() (challenge.Context, error) {
	if r.current == "" {
		return challenge.Context{}, ErrNoActiveChallenge
	}
	return r.store.Load(r.current)
}

func (r *Runner) reportLoadError(err error) {
	switch {
	case errors.Is(err, ErrNoActiveChallenge):
		r.printf("No challenge active. Use 'start <name>' or 'use <name>'.\n")
	default:
		r.printf("Error: %v\n", err)
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) readLine(prompt string) (string, error) {
	if prompt != "" && r.interactive {
		fmt.Fprint(r.out, prompt)
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), err
}

func (r *Runner) confirm(prompt string) (bool, error) {
	line, err := r.readLine(fmt.Sprintf("%s [Y/n]: ", prompt))
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes", nil
}
