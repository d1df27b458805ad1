package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/userregistry/internal/api"
	apperrors "github.com/toyz/userregistry/internal/errors"
	"github.com/toyz/userregistry/internal/models"
	"github.com/toyz/userregistry/internal/registry"
	"github.com/toyz/userregistry/internal/utils"
)

type fixture struct {
	shell  *Shell
	reg    *registry.UserRegistry
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newFixture(users ...models.User) *fixture {
	reg := registry.New(registry.WithIDGenerator(sequentialIDs()))
	for _, u := range users {
		reg.Insert(u)
	}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	diag := utils.NewDiagnosticSystemWithWriters(utils.DiagnosticInfo, out, errOut)
	diag.DisableColors()
	return &fixture{shell: New(api.New(reg), diag, out), reg: reg, out: out, errOut: errOut}
}

func sequentialIDs() registry.IDGenerator {
	ids := []string{"usr_00000001", "usr_00000002", "usr_00000003"}
	i := 0
	return func() (string, error) {
		id := ids[i%len(ids)]
		i++
		return id, nil
	}
}

func TestParse(t *testing.T) {
	f := newFixture()

	tests := []struct {
		line  string
		check func(t *testing.T, cmd *Command)
	}{
		{`create name="Ada Lovelace" email=ada@example.com`, func(t *testing.T, cmd *Command) {
			require.NotNil(t, cmd.Create)
			require.Len(t, cmd.Create.Args, 2)
			assert.Equal(t, "name", cmd.Create.Args[0].Key)
			assert.Equal(t, "Ada Lovelace", cmd.Create.Args[0].Value.Text())
			assert.Equal(t, "ada@example.com", cmd.Create.Args[1].Value.Text())
		}},
		{`CREATE email="a\"b@example.com"`, func(t *testing.T, cmd *Command) {
			require.NotNil(t, cmd.Create)
			assert.Equal(t, `a"b@example.com`, cmd.Create.Args[0].Value.Text())
		}},
		{"get usr_deadbeef", func(t *testing.T, cmd *Command) {
			require.NotNil(t, cmd.Get)
			assert.Equal(t, "usr_deadbeef", cmd.Get.ID)
		}},
		{"list limit=5 offset=-1", func(t *testing.T, cmd *Command) {
			require.NotNil(t, cmd.List)
			require.Len(t, cmd.List.Args, 2)
			limit, err := cmd.List.Args[0].Value.Int()
			require.NoError(t, err)
			assert.Equal(t, 5, limit)
			offset, err := cmd.List.Args[1].Value.Int()
			require.NoError(t, err)
			assert.Equal(t, -1, offset)
		}},
		{"list", func(t *testing.T, cmd *Command) {
			require.NotNil(t, cmd.List)
			assert.Empty(t, cmd.List.Args)
		}},
		{"count", func(t *testing.T, cmd *Command) { assert.NotNil(t, cmd.Count) }},
		{"?", func(t *testing.T, cmd *Command) { assert.NotNil(t, cmd.Help) }},
		{"quit", func(t *testing.T, cmd *Command) { assert.NotNil(t, cmd.Exit) }},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := f.shell.Parse(tt.line)
			require.NoError(t, err)
			tt.check(t, cmd)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	f := newFixture()

	for _, line := range []string{"delete usr_1", "get", "create name", "list limit="} {
		t.Run(line, func(t *testing.T) {
			_, err := f.shell.Parse(line)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidInput(err))
		})
	}
}

func TestExecute_Create(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.shell.Execute(`create name="Ada" email=ada@example.com`))

	assert.Contains(t, f.out.String(), "[OK] created usr_00000001")
	assert.Contains(t, f.out.String(), "usr_00000001  Ada  <ada@example.com>")
	assert.Equal(t, 1, f.reg.Len())
}

func TestExecute_CreateRejected(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`create name="  " email=ada@example.com`, "Name cannot be empty"},
		{`create name=Ada email=nope`, "Invalid email format"},
		{`create name=Ada`, "usage: create name=<name> email=<email>"},
		{`create name=Ada email=ada@example.com role=admin`, `unknown argument "role"`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture()

			err := f.shell.Execute(tt.line)

			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, apperrors.IsInvalidInput(err))
			assert.Zero(t, f.reg.Len())
		})
	}
}

func TestExecute_GetListCount(t *testing.T) {
	f := newFixture(
		models.User{ID: "usr_a", Name: "A", Email: "a@example.com"},
		models.User{ID: "usr_b", Name: "B", Email: "b@example.com"},
		models.User{ID: "usr_c", Name: "C"},
	)

	require.NoError(t, f.shell.Execute("get usr_b"))
	assert.Equal(t, "usr_b  B  <b@example.com>\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.shell.Execute("get usr_zzz"))
	assert.Equal(t, "[WARN] user usr_zzz not found\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.shell.Execute("list limit=2 offset=1"))
	assert.Equal(t, "- usr_b  B  <b@example.com>\n- usr_c  C  <>\n2 of 3 users\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.shell.Execute("list offset=10"))
	assert.Equal(t, "(no users)\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.shell.Execute("count"))
	assert.Equal(t, "3\n", f.out.String())
}

func TestExecute_ListRejected(t *testing.T) {
	f := newFixture()

	err := f.shell.Execute("list limit=-1")
	assert.EqualError(t, err, "limit must not be negative")

	err = f.shell.Execute("list limit=ten")
	assert.EqualError(t, err, "limit must be an integer")

	err = f.shell.Execute("list page=2")
	assert.EqualError(t, err, `unknown argument "page"`)
}

func TestRun(t *testing.T) {
	f := newFixture()
	input := strings.Join([]string{
		`create name="Grace Hopper" email=grace@example.com`,
		"",
		"bogus",
		"count",
		"exit",
		"count",
	}, "\n")

	require.NoError(t, f.shell.Run(context.Background(), strings.NewReader(input)))

	out := f.out.String()
	assert.Contains(t, out, Prompt)
	assert.Contains(t, out, "created usr_00000001")
	assert.Contains(t, out, "1\n")
	assert.Equal(t, 5, strings.Count(out, Prompt))
	assert.Contains(t, f.errOut.String(), "[ERROR] invalid command")
}

func TestRun_EOFAndCancel(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.shell.Run(context.Background(), strings.NewReader("count")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.shell.Run(ctx, strings.NewReader("count\n")), context.Canceled)
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	f := newFixture()
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.shell.Run(ctx, pr) }()

	_, err := pw.Write([]byte("count\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ReadError(t *testing.T) {
	f := newFixture()
	pr, pw := io.Pipe()
	boom := errors.New("terminal gone")
	go func() {
		_, _ = pw.Write([]byte("count\n"))
		pw.CloseWithError(boom)
	}()

	assert.ErrorIs(t, f.shell.Run(context.Background(), pr), boom)
	assert.Contains(t, f.out.String(), "0\n")
}

func TestRun_LongLineDoesNotEndSession(t *testing.T) {
	f := newFixture()
	input := "get " + strings.Repeat("a", 100_000) + "\r\ncount\n"

	require.NoError(t, f.shell.Run(context.Background(), strings.NewReader(input)))

	assert.Contains(t, f.out.String(), "0\n")
	assert.Equal(t, 3, strings.Count(f.out.String(), Prompt))
	assert.NotContains(t, f.errOut.String(), "[ERROR]")
}
