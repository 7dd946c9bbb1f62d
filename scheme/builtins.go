package scheme

import "fmt"

// AddBuiltins populates env with the standard procedures enumerated in
// spec.md §6 plus the supplements documented in SPEC_FULL.md §5.8, in the
// style of the teacher's env.AddBuiltins/DefaultBuiltins registration pass.
func AddBuiltins(env *Env) {
	for _, b := range builtinTable {
		env.DefineHere(b.name, Fun(b.name, b.arity, b.fn))
	}
	env.DefineHere("apply", specialFun("apply", 2, specialApply))
	env.DefineHere("call/cc", specialFun("call/cc", 1, specialCallCC))
	env.DefineHere("call-with-current-continuation", specialFun("call-with-current-continuation", 1, specialCallCC))
}

type builtinEntry struct {
	name  string
	arity int
	fn    IntrinsicFunc
}

var builtinTable = []builtinEntry{
	{"car", 1, biCar},
	{"cdr", 1, biCdr},
	{"cons", 2, biCons},
	{"eq?", 2, biEq},
	{"eqv?", 2, biEqv},
	{"pair?", 1, biPairP},
	{"null?", 1, biNullP},
	{"not", 1, biNot},
	{"list", -1, biList},
	{"display", 1, biDisplay},
	{"newline", 0, biNewline},
	{"read", 0, biRead},
	{"eof-object?", 1, biEofP},
	{"symbol?", 1, biSymbolP},
	{"+", 2, biAdd},
	{"-", 2, biSub},
	{"*", 2, biMul},
	{"<", 2, biLt},
	{"=", 2, biNumEq},
	{"error", 2, biError},
	{"globals", 0, biGlobals},
	// Supplements (SPEC_FULL.md §5.8).
	{"boolean?", 1, biBooleanP},
	{"number?", 1, biNumberP},
	{"procedure?", 1, biProcedureP},
	{"zero?", 1, biZeroP},
	{"abs", 1, biAbs},
	{"length", 1, biLengthP},
}

func biCar(env *Env, args *Value) (*Value, error) {
	v := args.Car
	if v.Type != TPair {
		return nil, typeErr("car", v)
	}
	return v.Car, nil
}

func biCdr(env *Env, args *Value) (*Value, error) {
	v := args.Car
	if v.Type != TPair {
		return nil, typeErr("cdr", v)
	}
	return v.Cdr, nil
}

func biCons(env *Env, args *Value) (*Value, error) {
	return Cons(args.Car, args.Cdr.Car), nil
}

func biEq(env *Env, args *Value) (*Value, error) {
	return Bool2(Eq(args.Car, args.Cdr.Car)), nil
}

func biEqv(env *Env, args *Value) (*Value, error) {
	return Bool2(Eqv(args.Car, args.Cdr.Car)), nil
}

func biPairP(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.IsPair()), nil
}

func biNullP(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.IsNull()), nil
}

func biNot(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.IsFalse()), nil
}

func biList(env *Env, args *Value) (*Value, error) {
	return args, nil
}

func biDisplay(env *Env, args *Value) (*Value, error) {
	fmt.Fprint(env.rt.Stdout, DisplayString(args.Car))
	return Void, nil
}

func biNewline(env *Env, args *Value) (*Value, error) {
	fmt.Fprintln(env.rt.Stdout)
	return Void, nil
}

func biRead(env *Env, args *Value) (*Value, error) {
	if env.rt.Input == nil {
		return Eof, nil
	}
	v, err := env.rt.Input.ReadExpr()
	if err != nil {
		return Eof, nil
	}
	return v, nil
}

func biEofP(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.Type == TEof), nil
}

func biSymbolP(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.Type == TSymbol), nil
}

// binaryNumArgs extracts and type-checks the two operands common to the
// arithmetic and comparison builtins, all of which spec.md §6 fixes at
// arity 2.
func binaryNumArgs(name string, args *Value) (a, b *Value, err error) {
	a, b = args.Car, args.Cdr.Car
	if !a.IsNumber() {
		return nil, nil, typeErr(name, a)
	}
	if !b.IsNumber() {
		return nil, nil, typeErr(name, b)
	}
	return a, b, nil
}

func biAdd(env *Env, args *Value) (*Value, error) {
	a, b, err := binaryNumArgs("+", args)
	if err != nil {
		return nil, err
	}
	if a.Type == TInteger && b.Type == TInteger {
		return Int(a.Int + b.Int), nil
	}
	return Float(a.AsFloat() + b.AsFloat()), nil
}

func biSub(env *Env, args *Value) (*Value, error) {
	a, b, err := binaryNumArgs("-", args)
	if err != nil {
		return nil, err
	}
	if a.Type == TInteger && b.Type == TInteger {
		return Int(a.Int - b.Int), nil
	}
	return Float(a.AsFloat() - b.AsFloat()), nil
}

func biMul(env *Env, args *Value) (*Value, error) {
	a, b, err := binaryNumArgs("*", args)
	if err != nil {
		return nil, err
	}
	if a.Type == TInteger && b.Type == TInteger {
		return Int(a.Int * b.Int), nil
	}
	return Float(a.AsFloat() * b.AsFloat()), nil
}

func biLt(env *Env, args *Value) (*Value, error) {
	a, b, err := binaryNumArgs("<", args)
	if err != nil {
		return nil, err
	}
	return Bool2(a.AsFloat() < b.AsFloat()), nil
}

func biNumEq(env *Env, args *Value) (*Value, error) {
	a, b, err := binaryNumArgs("=", args)
	if err != nil {
		return nil, err
	}
	return Bool2(a.AsFloat() == b.AsFloat()), nil
}

// biError implements error/2 (spec.md §6): the message is the unquoted
// first argument followed by the printed second argument.
func biError(env *Env, args *Value) (*Value, error) {
	msg := DisplayString(args.Car) + " " + WriteString(args.Cdr.Car)
	return nil, userErr(msg)
}

func biGlobals(env *Env, args *Value) (*Value, error) {
	return env.Globals(), nil
}

func biBooleanP(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.Type == TBoolean), nil
}

func biNumberP(env *Env, args *Value) (*Value, error) {
	return Bool2(args.Car.IsNumber()), nil
}

func biProcedureP(env *Env, args *Value) (*Value, error) {
	t := args.Car.Type
	return Bool2(t == TClosure || t == TIntrinsic || t == TContinuation), nil
}

func biZeroP(env *Env, args *Value) (*Value, error) {
	v := args.Car
	if !v.IsNumber() {
		return nil, typeErr("zero?", v)
	}
	return Bool2(v.AsFloat() == 0), nil
}

func biAbs(env *Env, args *Value) (*Value, error) {
	v := args.Car
	if !v.IsNumber() {
		return nil, typeErr("abs", v)
	}
	if v.Type == TInteger {
		if v.Int < 0 {
			return Int(-v.Int), nil
		}
		return v, nil
	}
	if v.Flt < 0 {
		return Float(-v.Flt), nil
	}
	return v, nil
}

func biLengthP(env *Env, args *Value) (*Value, error) {
	n, err := Length(args.Car)
	if err != nil {
		return nil, err
	}
	return Int(int64(n)), nil
}
