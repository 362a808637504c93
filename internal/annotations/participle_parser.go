package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// payloadLexer tokenises the text that follows a tag name. Every input lexes:
// anything that is not a separator, a <Ref> or an @option is a Word.
var payloadLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sep", Pattern: `-(?:\s|$)`},
	{Name: "Ref", Pattern: `<[^<>\s]+>`},
	{Name: "Option", Pattern: `@[a-zA-Z_][a-zA-Z0-9_]*(?:\([^)]*\))?`},
	{Name: "Word", Pattern: `\S+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// payloadGrammar is the root of a tag payload
type payloadGrammar struct {
	Items []*payloadItem `parser:"@@*"`
}

// payloadItem is a single lexed element of a payload
type payloadItem struct {
	Sep    bool    `parser:"  @Sep"`
	Ref    *string `parser:"| @Ref"`
	Option *string `parser:"| @Option"`
	Word   *string `parser:"| @Word"`
}

// ParticipleParser parses tag payloads using alecthomas/participle
type ParticipleParser struct {
	parser *participle.Parser[payloadGrammar]
}

// NewParticipleParser creates a new payload parser
func NewParticipleParser() *ParticipleParser {
	return &ParticipleParser{
		parser: participle.MustBuild[payloadGrammar](
			participle.Lexer(payloadLexer),
			participle.Elide("Whitespace"),
		),
	}
}

// Segment is the run of words and refs between two " - " separators
type Segment struct {
	Words []string
	Refs  []string
}

// Text joins the segment's words with single spaces
func (s Segment) Text() string {
	return strings.Join(s.Words, " ")
}

// IsEmpty reports whether the segment holds nothing
func (s Segment) IsEmpty() bool {
	return len(s.Words) == 0 && len(s.Refs) == 0
}

// Option is an inline @name(arg) or @flag
type Option struct {
	Name string
	Arg  string
}

// Payload is a parsed tag payload
type Payload struct {
	Segments []Segment
	Options  []Option
}

// Option returns the named option (case-insensitive)
func (p Payload) Option(name string) (Option, bool) {
	for _, opt := range p.Options {
		if strings.EqualFold(opt.Name, name) {
			return opt, true
		}
	}
	return Option{}, false
}

// Segment returns the i-th segment or an empty one
func (p Payload) Segment(i int) Segment {
	if i < len(p.Segments) {
		return p.Segments[i]
	}
	return Segment{}
}

// ParsePayload parses the text that follows a tag name
func (p *ParticipleParser) ParsePayload(input string) (Payload, error) {
	grammar, err := p.parser.ParseString("", input)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to parse payload: %w", err)
	}

	result := Payload{Segments: []Segment{{}}}
	current := &result.Segments[0]
	for _, item := range grammar.Items {
		switch {
		case item.Sep:
			result.Segments = append(result.Segments, Segment{})
			current = &result.Segments[len(result.Segments)-1]
		case item.Ref != nil:
			current.Refs = append(current.Refs, strings.TrimSuffix(strings.TrimPrefix(*item.Ref, "<"), ">"))
		case item.Option != nil:
			result.Options = append(result.Options, parseOption(*item.Option))
		case item.Word != nil:
			current.Words = append(current.Words, *item.Word)
		}
	}

	return result, nil
}

// parseOption splits "@name(arg)" into its parts
func parseOption(raw string) Option {
	raw = strings.TrimPrefix(raw, "@")
	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return Option{Name: raw}
	}
	return Option{
		Name: raw[:open],
		Arg:  strings.TrimSpace(strings.TrimSuffix(raw[open+1:], ")")),
	}
}
