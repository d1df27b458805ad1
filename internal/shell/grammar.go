package shell

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Command is one parsed shell line
type Command struct {
	Create *CreateCommand `parser:"  @@"`
	Get    *GetCommand    `parser:"| @@"`
	List   *ListCommand   `parser:"| @@"`
	Count  *CountCommand  `parser:"| @@"`
	Help   *HelpCommand   `parser:"| @@"`
	Exit   *ExitCommand   `parser:"| @@"`
}

// CreateCommand is `create name=<value> email=<value>`
type CreateCommand struct {
	Args []*Argument `parser:"'create' @@*"`
}

// GetCommand is `get <id>`
type GetCommand struct {
	ID string `parser:"'get' @(Word | String)"`
}

// ListCommand is `list [limit=N] [offset=N]`
type ListCommand struct {
	Args []*Argument `parser:"'list' @@*"`
}

// CountCommand is `count`
type CountCommand struct {
	Keyword string `parser:"@'count'"`
}

// HelpCommand is `help` or `?`
type HelpCommand struct {
	Keyword string `parser:"@('help' | '?')"`
}

// ExitCommand is `exit` or `quit`
type ExitCommand struct {
	Keyword string `parser:"@('exit' | 'quit')"`
}

// Argument is a key=value pair
type Argument struct {
	Key   string `parser:"@Word '='"`
	Value *Value `parser:"@@"`
}

// Value is a quoted string or a bare word
type Value struct {
	String *string `parser:"  @String"`
	Word   *string `parser:"| @Word"`
}

// Text returns the value as written, without quotes
func (v *Value) Text() string {
	switch {
	case v.String != nil:
		return *v.String
	case v.Word != nil:
		return *v.Word
	}
	return ""
}

// Int parses the value as a base 10 integer
func (v *Value) Int() (int, error) {
	return strconv.Atoi(v.Text())
}

var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Word", Pattern: `[^\s="]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

func newParser() *participle.Parser[Command] {
	return participle.MustBuild[Command](
		participle.Lexer(commandLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.CaseInsensitive("Word"),
		participle.UseLookahead(2),
	)
}
