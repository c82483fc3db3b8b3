package sqf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_SimpleStatements(t *testing.T) {
	stmts := Split("_a = 1;\n_b = 2;\n")

	require.Len(t, stmts, 2)
	assert.Equal(t, "_a = 1;", stmts[0].Text)
	assert.Equal(t, 1, stmts[0].Line)
	assert.Equal(t, "_b = 2;", stmts[1].Text)
	assert.Equal(t, 2, stmts[1].Line)
}

func TestSplit_BlockStaysWhole(t *testing.T) {
	src := "if (_v > 3) then {\n    hint \"high\";\n    _v = 0;\n};"
	stmts := Split(src)

	require.Len(t, stmts, 1, "semicolons inside braces must not split the statement")
	assert.Equal(t, src, stmts[0].Text)
}

func TestSplit_SemicolonInsideString(t *testing.T) {
	stmts := Split(`hint "a; b";`)

	require.Len(t, stmts, 1)
	assert.Equal(t, `hint "a; b";`, stmts[0].Text)
}

func TestSplit_SemicolonInsideComment(t *testing.T) {
	stmts := Split("// wait; then retry\n; verify x; y\n_a = 1;")

	require.Len(t, stmts, 3)
	assert.Equal(t, "// wait; then retry", stmts[0].Text)
	assert.Equal(t, "; verify x; y", stmts[1].Text)
	assert.Equal(t, "_a = 1;", stmts[2].Text)
}

func TestSplit_TrailingComment(t *testing.T) {
	stmts := Split("_a = 1; // set it")

	require.Len(t, stmts, 2)
	assert.Equal(t, "_a = 1;", stmts[0].Text)
	assert.Equal(t, "// set it", stmts[1].Text)
}

func TestSplit_CommentRunSplitsPerLine(t *testing.T) {
	src := "// one\n// two\n_x = 1;"
	stmts := Split(src)

	require.Len(t, stmts, 3)
	assert.Equal(t, "// one", stmts[0].Text)
	assert.Equal(t, 1, stmts[0].Line)
	assert.Equal(t, "// two", stmts[1].Text)
	assert.Equal(t, 2, stmts[1].Line)
	assert.Equal(t, "_x = 1;", stmts[2].Text)
	assert.Equal(t, 3, stmts[2].Line)
}

func TestSplit_CommentBeforeBlock(t *testing.T) {
	src := "// note\nwhile {_c < 5} do { _c = _c + 1; };"
	stmts := Split(src)

	require.Len(t, stmts, 2)
	assert.Equal(t, "// note", stmts[0].Text)
	assert.Equal(t, "while {_c < 5} do { _c = _c + 1; };", stmts[1].Text)
	assert.Equal(t, 2, stmts[1].Line)
}

func TestSplit_TrailingStatementWithoutSemicolon(t *testing.T) {
	stmts := Split("_a = 1;\nhint \"bye\"")

	require.Len(t, stmts, 2)
	assert.Equal(t, `hint "bye"`, stmts[1].Text)
}

func TestSplit_Empty(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("   \n\n  "))
}

func TestParse_NothingDropped(t *testing.T) {
	src := "// c\n_a = 1;\nswitch (_a) do { default {}; };\nsleep 2;"
	nodes := Parse(src)

	require.Len(t, nodes, 4)
	for _, n := range nodes {
		assert.NotEmpty(t, n.Raw, "every node keeps its raw text")
	}
}
