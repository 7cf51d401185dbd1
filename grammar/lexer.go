package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var IRLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `;[^\n]*`},

		// Quoted module/source names
		{Name: "String", Pattern: `"[^"]*"`},

		// Float literals (a dot or an exponent is mandatory, otherwise
		// the token is an Int)
		{Name: "Float", Pattern: `-?[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?|-?[0-9]+[eE][+-]?[0-9]+`},

		// Integer literals, variable ids and register sizes
		{Name: "Int", Pattern: `[0-9]+`},

		// Keywords, gate names, type names and register references
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

		// Punctuation
		{Name: "Punctuation", Pattern: `[{}()@%:,=]`},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})
