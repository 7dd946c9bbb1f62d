package scheme

// Eval runs the two-phase trampoline described in spec.md §4.5 to
// completion and returns the resulting value. It is the entry point used by
// the driver; closure bodies and recursive Scheme calls run inside this same
// loop (via continuation frames) rather than through nested Go calls, so no
// native Go call stack frame accumulates on behalf of the interpreted
// program, which is what lets deep tail recursion run in bounded space.
func Eval(exp *Value, env *Env, k *Continuation) (result *Value, err error) {
	for {
		exp, env, err = analyze(exp, env, k)
		if err != nil {
			return nil, withTrace(err, k)
		}
		if err := checkDepth(env, k); err != nil {
			return nil, withTrace(err, k)
		}
		// Phase B: resume k with the value of exp.
		var done bool
		exp, env, done, err = resume(exp, env, k)
		if err != nil {
			return nil, withTrace(err, k)
		}
		if done {
			return exp, nil
		}
		// resume left us with a fresh exp/env to re-analyze (a branch
		// taken, a body form, an argument to evaluate, ...).
	}
}

// checkDepth enforces Runtime.MaxCoDepth, a guard rail distinct from the
// tail-call bound spec.md §4.4 requires: it catches runaway *non-tail*
// recursion (which keeps pushing frames that a RestoreEnv can never
// collapse), not the collapsing tail loop itself.
func checkDepth(env *Env, k *Continuation) error {
	if env.rt == nil || env.rt.MaxCoDepth <= 0 {
		return nil
	}
	if len(k.frames) > env.rt.MaxCoDepth {
		return internalErr("continuation exceeded max depth %d", env.rt.MaxCoDepth)
	}
	return nil
}

// analyze implements Phase A: it reduces exp until it is a self-evaluating
// value, pushing continuation frames for the compound forms it descends
// into along the way (spec.md §4.5).
func analyze(exp *Value, env *Env, k *Continuation) (*Value, *Env, error) {
	for {
		switch exp.Type {
		case TSymbol:
			v, err := env.Get(exp.Sym)
			if err != nil {
				return nil, nil, err
			}
			return v, env, nil
		case TPair:
			head := exp.Car
			if head.Type == TSymbol {
				switch {
				case head == symQuote:
					if exp.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("quote")
					}
					return exp.Cdr.Car, env, nil
				case head == symIf:
					if exp.Cdr.Type != TPair || exp.Cdr.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("if")
					}
					k.Push(OpThen, exp.Cdr.Cdr)
					exp = exp.Cdr.Car
					continue
				case head == symBegin:
					if exp.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("begin")
					}
					tail := exp.Cdr.Cdr
					if !tail.IsNull() {
						k.Push(OpBegin, tail)
					}
					exp = exp.Cdr.Car
					continue
				case head == symLambda:
					if exp.Cdr.Type != TPair || exp.Cdr.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("lambda")
					}
					formals := exp.Cdr.Car
					body := exp.Cdr.Cdr
					return Closure(formals, body, env), env, nil
				case head == symDefine:
					if exp.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("define")
					}
					target := exp.Cdr.Car
					if target.Type == TPair {
						// (define (name . formals) body...) sugar
						// (SPEC_FULL.md §5.4): rewrite to
						// (define name (lambda formals body...)).
						if target.Car.Type != TSymbol || exp.Cdr.Cdr.Type != TPair {
							return nil, nil, malformedFormErr("define")
						}
						name := target.Car
						formals := target.Cdr
						body := exp.Cdr.Cdr
						lambdaExp := Cons(symLambda, Cons(formals, body))
						k.Push(OpDefine, name)
						exp = lambdaExp
						continue
					}
					if target.Type != TSymbol || exp.Cdr.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("define")
					}
					k.Push(OpDefine, target)
					exp = exp.Cdr.Cdr.Car
					continue
				case head == symSetQ:
					if exp.Cdr.Type != TPair || exp.Cdr.Car.Type != TSymbol || exp.Cdr.Cdr.Type != TPair {
						return nil, nil, malformedFormErr("set!")
					}
					b, err := env.Lookup(exp.Cdr.Car.Sym)
					if err != nil {
						return nil, nil, err
					}
					k.pushBinding(OpSetQ, b)
					exp = exp.Cdr.Cdr.Car
					continue
				}
			}
			// Application.
			k.Push(OpApply, exp.Cdr)
			exp = head
			continue
		default:
			return exp, env, nil
		}
	}
}

// resume implements Phase B: it pops and interprets frames from k against
// the incoming value exp until either k is empty (done) or a frame hands
// control back to Phase A with a new exp/env (spec.md §4.5).
func resume(exp *Value, env *Env, k *Continuation) (*Value, *Env, bool, error) {
	for {
		f, ok := k.Pop()
		if !ok {
			return exp, env, true, nil
		}
		switch f.Op {
		case OpThen:
			alts := f.Val
			e2 := alts.Car
			e3rest := alts.Cdr
			if exp.IsFalse() {
				if !e3rest.IsNull() {
					return e3rest.Car, env, false, nil
				}
				exp = Void
				continue
			}
			return e2, env, false, nil
		case OpBegin:
			rest := f.Val
			if !rest.Cdr.IsNull() {
				k.Push(OpBegin, rest.Cdr)
			}
			return rest.Car, env, false, nil
		case OpDefine:
			if err := env.DefineHere(f.Val.Sym, exp); err != nil {
				return nil, nil, false, err
			}
			exp = Void
			continue
		case OpSetQ:
			f.Bnd.Set(exp)
			exp = Void
			continue
		case OpApply:
			operator := exp
			args := f.Val
			if args.IsNull() {
				newExp, newEnv, err := apply(operator, Null, k, env)
				if err != nil {
					return nil, nil, false, err
				}
				exp, env = newExp, newEnv
				continue
			}
			k.Push(OpApplyFun, operator)
			n, err := Length(args)
			if err != nil {
				return nil, nil, false, err
			}
			cur := args
			for i := 0; i < n-1; i++ {
				k.Push(OpEvalArg, cur.Car)
				cur = cur.Cdr
			}
			lastArg := cur.Car
			k.Push(OpConsArgs, Null)
			return lastArg, env, false, nil
		case OpConsArgs:
			newAcc := Cons(exp, f.Val)
			next, ok := k.Pop()
			if !ok {
				return nil, nil, false, internalErr("ConsArgs: continuation exhausted")
			}
			switch next.Op {
			case OpEvalArg:
				k.Push(OpConsArgs, newAcc)
				return next.Val, env, false, nil
			case OpApplyFun:
				newExp, newEnv, err := apply(next.Val, newAcc, k, env)
				if err != nil {
					return nil, nil, false, err
				}
				exp, env = newExp, newEnv
				continue
			default:
				return nil, nil, false, internalErr("ConsArgs: unexpected opcode %s", next.Op)
			}
		case OpRestoreEnv:
			env = f.Env
			continue
		default:
			return nil, nil, false, internalErr("unknown continuation opcode %s", f.Op)
		}
	}
}
