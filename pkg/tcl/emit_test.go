package tcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tosworks/sqf2tcl/pkg/sqf"
)

func emit(t *testing.T, source string) string {
	t.Helper()
	return NewEmitter().EmitSource(source)
}

func TestEmit_Comment(t *testing.T) {
	assert.Equal(t, "# a comment", emit(t, "// a comment"))
}

func TestEmit_Assignment(t *testing.T) {
	assert.Equal(t, "set var 10", emit(t, "_var = 10;"))
}

func TestEmit_Hint(t *testing.T) {
	assert.Equal(t, `puts "hi"`, emit(t, `hint "hi";`))
}

func TestEmit_HintFormat(t *testing.T) {
	assert.Equal(t, `puts "Index: $i"`, emit(t, `hint format ["Index: %1", _i];`))
}

func TestEmit_HintFormatNoArgs(t *testing.T) {
	assert.Equal(t, `puts "plain"`, emit(t, `hint format ["plain"];`))
}

func TestEmit_Sleep(t *testing.T) {
	assert.Equal(t, "after 1000", emit(t, "sleep 1;"))
	assert.Equal(t, "after 500", emit(t, "sleep 0.5;"))
}

func TestEmit_If(t *testing.T) {
	got := emit(t, "if (_value > 3) then {\n    hint \"Value is high\";\n};")
	want := "if {$value > 3} {\n    puts \"Value is high\"\n}"
	assert.Equal(t, want, got)
}

func TestEmit_For(t *testing.T) {
	got := emit(t, `for "_i" from 0 to 3 do { hint format ["Index: %1", _i]; };`)
	want := "for {set i 0} {$i <= 3} {incr i} {\n    puts \"Index: $i\"\n}"
	assert.Equal(t, want, got)
}

func TestEmit_While(t *testing.T) {
	got := emit(t, "while {_c < 5} do { _c = _c + 1; };")
	want := "while {$c < 5} {\n    set c _c + 1\n}"
	assert.Equal(t, want, got)
}

func TestEmit_NestedBlocks(t *testing.T) {
	src := `for "_i" from 0 to 2 do {
    if (_i > 0) then {
        hint "positive";
    };
};`
	got := emit(t, src)
	want := "for {set i 0} {$i <= 2} {incr i} {\n" +
		"    if {$i > 0} {\n" +
		"        puts \"positive\"\n" +
		"    }\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestEmit_UnknownBecomesTODO(t *testing.T) {
	got := emit(t, "switch (_x) do { default {}; };")
	assert.Equal(t, "# TODO: Could not automatically translate: switch (_x) do { default {}; };", got)
}

func TestEmit_UnknownMultiLineKeepsEveryLine(t *testing.T) {
	src := "waitUntil {\n    alive player\n};"
	got := emit(t, src)
	lines := []string{
		"# TODO: Could not automatically translate: waitUntil {",
		"#     alive player",
		"# };",
	}
	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n"+lines[2], got)
}

func TestEmit_CustomIndent(t *testing.T) {
	e := NewEmitter(WithIndent(2))
	got := e.EmitSource("if (_a > 1) then { sleep 1; };")
	assert.Equal(t, "if {$a > 1} {\n  after 1000\n}", got)
}

func TestEmit_NothingDropped(t *testing.T) {
	src := "// c\n_a = 1;\nbogus statement;\nsleep 2;"
	nodes := sqf.Parse(src)
	require.Len(t, nodes, 4)

	out := NewEmitter().Emit(nodes)
	assert.Contains(t, out, "# c")
	assert.Contains(t, out, "set a 1")
	assert.Contains(t, out, "# TODO: Could not automatically translate: bogus statement;")
	assert.Contains(t, out, "after 2000")
}

func TestEmit_Deterministic(t *testing.T) {
	src := "_a = 1;\nif (_a > 0) then { hint \"x\"; };\nsleep 1;"
	first := emit(t, src)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, emit(t, src))
	}
}
