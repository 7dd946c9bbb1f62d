package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindParamsExact(t *testing.T) {
	base := NewGlobalEnv(&Runtime{})
	params := List(Intern("a"), Intern("b"))
	args := List(Int(1), Int(2))
	env, err := bindParams(params, args, base)
	require.NoError(t, err)
	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int)
}

func TestBindParamsTooMany(t *testing.T) {
	base := NewGlobalEnv(&Runtime{})
	_, err := bindParams(List(Intern("a")), List(Int(1), Int(2)), base)
	require.Error(t, err)
	assert.Equal(t, ErrArityMismatch, err.(*EvalError).Kind)
}

func TestBindParamsTooFew(t *testing.T) {
	base := NewGlobalEnv(&Runtime{})
	_, err := bindParams(List(Intern("a"), Intern("b")), List(Int(1)), base)
	require.Error(t, err)
	assert.Equal(t, ErrArityMismatch, err.(*EvalError).Kind)
}

func TestBindParamsRestArgZero(t *testing.T) {
	// (lambda (x . rest) ...) called with exactly one argument must bind
	// rest to (), not raise "too few arguments".
	base := NewGlobalEnv(&Runtime{})
	params := Cons(Intern("x"), Intern("rest"))
	env, err := bindParams(params, List(Int(1)), base)
	require.NoError(t, err)
	rest, err := env.Get("rest")
	require.NoError(t, err)
	assert.True(t, rest.IsNull())
}

func TestBindParamsRestArgSome(t *testing.T) {
	base := NewGlobalEnv(&Runtime{})
	params := Cons(Intern("x"), Intern("rest"))
	env, err := bindParams(params, List(Int(1), Int(2), Int(3)), base)
	require.NoError(t, err)
	rest, err := env.Get("rest")
	require.NoError(t, err)
	assert.Equal(t, "(2 3)", WriteString(rest))
}

func TestDefineHereAffectsNearestMarker(t *testing.T) {
	global := NewGlobalEnv(&Runtime{})
	global.DefineHere("x", Int(1))
	frame := global.PushFrame()
	frame.DefineHere("x", Int(2))

	v, err := frame.Get("x")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Int)

	v, err = global.Get("x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int)
}

func TestLookupUnbound(t *testing.T) {
	env := NewGlobalEnv(&Runtime{})
	_, err := env.Lookup("nope")
	require.Error(t, err)
	assert.Equal(t, ErrUnboundSymbol, err.(*EvalError).Kind)
}
