package symbol_test

import (
	"testing"

	"github.com/minic-lang/minic/core/assert"
	"github.com/minic-lang/minic/symbol"
	"github.com/minic-lang/minic/types"
)

func TestDefineAndLookup(t *testing.T) {
	ctx := assert.To(t)
	tbl := symbol.NewTable()
	ok := tbl.Define(&symbol.Symbol{Name: "x", Type: types.IntType, Kind: symbol.Var})
	ctx.For("first definition of x succeeds").That(ok).Equals(true)

	ok = tbl.Define(&symbol.Symbol{Name: "x", Type: types.FloatType, Kind: symbol.Var})
	ctx.For("redefinition of x in same scope fails").That(ok).Equals(false)

	sym := tbl.Lookup("x")
	ctx.For("x resolves").That(sym).IsNotNil()
	ctx.For("x keeps its original type").That(types.Equal(sym.Type, types.IntType)).Equals(true)
}

func TestScopeShadowing(t *testing.T) {
	ctx := assert.To(t)
	tbl := symbol.NewTable()
	tbl.Define(&symbol.Symbol{Name: "x", Type: types.IntType, Kind: symbol.Var})

	tbl.EnterScope()
	ok := tbl.Define(&symbol.Symbol{Name: "x", Type: types.FloatType, Kind: symbol.Var})
	ctx.For("shadowing in an inner scope is allowed").That(ok).Equals(true)
	ctx.For("inner x shadows outer").That(types.Equal(tbl.Lookup("x").Type, types.FloatType)).Equals(true)

	tbl.LeaveScope()
	ctx.For("outer x reappears after leaving scope").That(types.Equal(tbl.Lookup("x").Type, types.IntType)).Equals(true)
}

func TestLeaveScopeNeverDropsBelowOne(t *testing.T) {
	ctx := assert.To(t)
	tbl := symbol.NewTable()
	tbl.LeaveScope()
	tbl.LeaveScope()
	ctx.For("depth never drops below 1").That(tbl.Depth()).Equals(1)
}

func TestSeedBuiltinTypes(t *testing.T) {
	ctx := assert.To(t)
	tbl := symbol.NewTable()
	tbl.SeedBuiltinTypes()
	for _, name := range []string{"void", "int", "float", "char", "bool"} {
		sym := tbl.Lookup(name)
		ctx.For("%s is seeded", name).That(sym).IsNotNil()
		ctx.For("%s is a TYPE symbol", name).That(sym.Kind).Equals(symbol.TypeKind)
	}
}

func TestLookupInnermostDoesNotSearchOuterScopes(t *testing.T) {
	ctx := assert.To(t)
	tbl := symbol.NewTable()
	tbl.Define(&symbol.Symbol{Name: "x", Type: types.IntType, Kind: symbol.Var})
	tbl.EnterScope()
	ctx.For("x is not in the innermost (new) scope").That(tbl.LookupInnermost("x")).IsNil()
	ctx.For("x is still found via Lookup").That(tbl.Lookup("x")).IsNotNil()
}
