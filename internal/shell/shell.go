// Package shell implements an interactive command language over the user
// registry API.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/toyz/userregistry/internal/api"
	apperrors "github.com/toyz/userregistry/internal/errors"
	"github.com/toyz/userregistry/internal/models"
	"github.com/toyz/userregistry/internal/utils"
)

// Prompt is printed before every line read in interactive mode
const Prompt = "userregistry> "

// ErrExit is returned by Execute when the line asks the shell to stop
var ErrExit = errors.New("exit requested")

// Shell parses and executes commands against an api.API
type Shell struct {
	api    *api.API
	parser *participle.Parser[Command]
	diag   *utils.DiagnosticSystem
	out    io.Writer
}

// New creates a shell writing replies through diag and prompts to out
func New(a *api.API, diag *utils.DiagnosticSystem, out io.Writer) *Shell {
	return &Shell{
		api:    a,
		parser: newParser(),
		diag:   diag,
		out:    out,
	}
}

// Parse parses a single command line
func (s *Shell) Parse(line string) (*Command, error) {
	cmd, err := s.parser.ParseString("", line)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidInputErrorCode, "invalid command", err).
			WithSuggestion("type 'help' for the list of commands")
	}
	return cmd, nil
}

// Execute parses and runs one line. Blank lines are ignored.
func (s *Shell) Execute(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	cmd, err := s.Parse(line)
	if err != nil {
		return err
	}

	switch {
	case cmd.Create != nil:
		return s.create(cmd.Create)
	case cmd.Get != nil:
		s.get(cmd.Get.ID)
	case cmd.List != nil:
		return s.list(cmd.List)
	case cmd.Count != nil:
		s.diag.Plain("%d", s.api.CountUsers())
	case cmd.Help != nil:
		s.help()
	case cmd.Exit != nil:
		return ErrExit
	}
	return nil
}

// Run reads commands from in until EOF, exit or ctx is done. Command
// errors are reported and do not stop the loop. Lines have no length limit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lines, readErr := readLines(ctx, in)

	for {
		fmt.Fprint(s.out, Prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}

			err := s.Execute(line)
			switch {
			case errors.Is(err, ErrExit):
				return nil
			case err != nil:
				s.diag.Error("%s", err)
			}
		}
	}
}

// readLines feeds lines from in to the returned channel until EOF, a read
// error or ctx is done. A read error is sent on the second channel before
// the first is closed. A read blocked in in outlives ctx until in returns.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()
	return lines, readErr
}

func (s *Shell) create(cmd *CreateCommand) error {
	args, err := collect(cmd.Args, "name", "email")
	if err != nil {
		return err
	}

	data := make(map[string]any, len(args))
	for k, v := range args {
		data[k] = v.Text()
	}
	if !api.ValidateInputShape(data) {
		return apperrors.InvalidInput("usage: create name=<name> email=<email>")
	}

	user, err := s.api.CreateUser(args["name"].Text(), args["email"].Text())
	if err != nil {
		return err
	}
	s.diag.Success("created %s", user.ID)
	s.printUser(user)
	return nil
}

func (s *Shell) get(id string) {
	user, ok := s.api.GetUserByID(id)
	if !ok {
		s.diag.Warn("user %s not found", id)
		return
	}
	s.printUser(user)
}

func (s *Shell) list(cmd *ListCommand) error {
	limit, offset := api.DefaultLimit, api.DefaultOffset
	args, err := collect(cmd.Args, "limit", "offset")
	if err != nil {
		return err
	}
	for _, param := range []struct {
		key    string
		target *int
	}{{"limit", &limit}, {"offset", &offset}} {
		value, ok := args[param.key]
		if !ok {
			continue
		}
		n, err := value.Int()
		if err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("%s must be an integer", param.key))
		}
		*param.target = n
	}

	users, err := s.api.ListUsers(limit, offset)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		s.diag.Plain("(no users)")
		return nil
	}
	for _, u := range users {
		s.diag.List("%s", formatUser(u))
	}
	s.diag.Plain("%d of %d users", len(users), s.api.CountUsers())
	return nil
}

func (s *Shell) help() {
	s.diag.Section("Commands")
	s.diag.List(`create name="<name>" email=<email>   create a user`)
	s.diag.List("get <id>                             show one user")
	s.diag.List("list [limit=N] [offset=N]            page through users")
	s.diag.List("count                                number of users")
	s.diag.List("exit                                 leave the shell")
}

func (s *Shell) printUser(u models.UserView) {
	s.diag.Plain("%s", formatUser(u))
}

func formatUser(u models.UserView) string {
	return fmt.Sprintf("%s  %s  <%s>", u.ID, u.Name, u.Email)
}

// collect turns arguments into a map, rejecting keys outside allowed
func collect(args []*Argument, allowed ...string) (map[string]*Value, error) {
	out := make(map[string]*Value, len(args))
	for _, arg := range args {
		key := strings.ToLower(arg.Key)
		if !slices.Contains(allowed, key) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown argument %q", arg.Key))
		}
		out[key] = arg.Value
	}
	return out, nil
}
