package token_test

import (
	"testing"

	"github.com/minic-lang/minic/core/assert"
	"github.com/minic-lang/minic/token"
)

func scan(t *testing.T, src string) []token.Token {
	lx, err := token.New("test.c", src)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	toks, err := lx.Tokens()
	if err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	return toks
}

func TestBasicTokens(t *testing.T) {
	ctx := assert.To(t)
	toks := scan(t, "int main(){return 0;}")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	ctx.For("last token is EOF").That(kinds[len(kinds)-1]).Equals(token.EOF)
	ctx.For("first token is the int keyword").That(toks[0].Kind).Equals(token.Keyword)
	ctx.For("first token text is int").That(toks[0].Text).Equals("int")
}

func TestCommentsAndWhitespaceDiscarded(t *testing.T) {
	ctx := assert.To(t)
	toks := scan(t, "int /* c */ x; // trailing\n")
	var texts []string
	for _, tok := range toks {
		if tok.Kind != token.EOF {
			texts = append(texts, tok.Text)
		}
	}
	ctx.For("comments never reach the token stream").That(texts).DeepEquals([]string{"int", "x", ";"})
}

func TestOperators(t *testing.T) {
	ctx := assert.To(t)
	toks := scan(t, "a += 1; b->c; d == e;")
	var ops []string
	for _, tok := range toks {
		if tok.Kind == token.Operator {
			ops = append(ops, tok.Text)
		}
	}
	ctx.For("compound and multi-char operators lex whole").That(ops).DeepEquals(
		[]string{"+=", ";", "->", ";", "==", ";"})
}

func TestStringAndCharLiterals(t *testing.T) {
	ctx := assert.To(t)
	toks := scan(t, `"hi\n" 'a'`)
	ctx.For("string literal kind").That(toks[0].Kind).Equals(token.StringLit)
	ctx.For("char literal kind").That(toks[1].Kind).Equals(token.CharacterLit)
}

func TestIntegerBases(t *testing.T) {
	ctx := assert.To(t)
	for _, c := range []struct{ text string; want int }{
		{"10", 10},
		{"0x1F", 31},
		{"017", 15},
	} {
		v, err := token.ParseIntegerLiteral(c.text)
		if err != nil {
			t.Fatalf("ParseIntegerLiteral(%q): %v", c.text, err)
		}
		ctx.For("%s parses to %d", c.text, c.want).That(v).Equals(c.want)
	}
}

func TestLexicalErrorOnUnknownCharacter(t *testing.T) {
	ctx := assert.To(t)
	lx, err := token.New("test.c", "int x = @;")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = lx.Tokens()
	ctx.For("unrecognized character raises a LexicalError").That(err).IsNotNil()
}
