package types_test

import (
	"testing"

	"github.com/minic-lang/minic/core/assert"
	"github.com/minic-lang/minic/types"
)

func TestBasicEquality(t *testing.T) {
	ctx := assert.To(t)
	ctx.For("int equals int").That(types.Equal(types.IntType, types.IntType)).Equals(true)
	ctx.For("int not equal float").That(types.Equal(types.IntType, types.FloatType)).Equals(false)
}

func TestArrayEqualityIgnoresSize(t *testing.T) {
	ctx := assert.To(t)
	n3, n5 := 3, 5
	a := &types.Array{Elem: types.IntType, Size: &n3}
	b := &types.Array{Elem: types.IntType, Size: &n5}
	c := &types.Array{Elem: types.IntType, Size: nil}
	ctx.For("sized arrays of same elem are equal regardless of size").That(types.Equal(a, b)).Equals(true)
	ctx.For("unresolved-size array equals sized array of same elem").That(types.Equal(a, c)).Equals(true)
}

func TestCompoundEqualityIgnoresMembers(t *testing.T) {
	ctx := assert.To(t)
	p1 := &types.Compound{Name: "P", Members: nil}
	p2 := &types.Compound{Name: "P", Members: []types.Member{{Name: "x", Type: types.IntType}}}
	ctx.For("forward-declared struct equals defined struct of same name").That(types.Equal(p1, p2)).Equals(true)

	u := &types.Compound{Name: "P", IsUnion: true}
	ctx.For("struct P is not union P").That(types.Equal(p1, u)).Equals(false)
}

func TestEnumMemberIndexAndValue(t *testing.T) {
	ctx := assert.To(t)
	e := &types.Enum{Name: "E", Enumerators: []types.Enumerator{
		{Name: "A", Value: 0},
		{Name: "B", Value: 5},
		{Name: "C", Value: 6},
	}}
	v, ok := e.Value("C")
	ctx.For("C resolves").That(ok).Equals(true)
	ctx.For("C is 6").That(v).Equals(6)
	_, ok = e.Value("Z")
	ctx.For("Z does not resolve").That(ok).Equals(false)
}

func TestPointerEquality(t *testing.T) {
	ctx := assert.To(t)
	a := &types.Pointer{Elem: types.IntType}
	b := &types.Pointer{Elem: types.IntType}
	c := &types.Pointer{Elem: types.CharType}
	ctx.For("int* equals int*").That(types.Equal(a, b)).Equals(true)
	ctx.For("int* not equal char*").That(types.Equal(a, c)).Equals(false)
}

func TestFunctionEquality(t *testing.T) {
	ctx := assert.To(t)
	f1 := &types.Function{Ret: types.IntType, Params: []types.Type{types.IntType, types.FloatType}}
	f2 := &types.Function{Ret: types.IntType, Params: []types.Type{types.IntType, types.FloatType}}
	f3 := &types.Function{Ret: types.IntType, Params: []types.Type{types.IntType}}
	ctx.For("identical signatures equal").That(types.Equal(f1, f2)).Equals(true)
	ctx.For("differing arity not equal").That(types.Equal(f1, f3)).Equals(false)
}

func TestClassificationHelpers(t *testing.T) {
	ctx := assert.To(t)
	ctx.For("int is integer").That(types.IsInteger(types.IntType)).Equals(true)
	ctx.For("float is not integer").That(types.IsInteger(types.FloatType)).Equals(false)
	ctx.For("float is float").That(types.IsFloat(types.FloatType)).Equals(true)
	ctx.For("pointer is scalar").That(types.IsScalar(&types.Pointer{Elem: types.IntType})).Equals(true)
	ctx.For("void is not scalar").That(types.IsScalar(types.VoidType)).Equals(false)
}

func TestCompoundMemberIndex(t *testing.T) {
	ctx := assert.To(t)
	c := &types.Compound{Name: "P", Members: []types.Member{
		{Name: "x", Type: types.IntType},
		{Name: "y", Type: types.IntType},
	}}
	ctx.For("y is at index 1").That(c.MemberIndex("y")).Equals(1)
	ctx.For("z is absent").That(c.MemberIndex("z")).Equals(-1)
}
