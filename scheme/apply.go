package scheme

// apply implements spec.md §4.6. It returns a value and environment with
// which resume keeps popping frames in Phase B: an intrinsic's result,
// Void for a closure (whose body the pushed Begin frame then evaluates), or
// the argument passed to an invoked continuation. The returned value is
// never re-evaluated as an expression.
func apply(op *Value, args *Value, k *Continuation, env *Env) (*Value, *Env, error) {
	for {
		switch {
		case op.Type == TIntrinsic && op.Builtin.special == specialCallCC:
			if n, err := Length(args); err != nil || n != 1 {
				if err != nil {
					return nil, nil, err
				}
				return nil, nil, arityErr("call/cc", 1, n)
			}
			k.PushRestoreEnv(env)
			realOp := args.Car
			cont := ContinuationValue(k.Reify())
			op = realOp
			args = Cons(cont, Null)
		case op.Type == TIntrinsic && op.Builtin.special == specialApply:
			if n, err := Length(args); err != nil || n != 2 {
				if err != nil {
					return nil, nil, err
				}
				return nil, nil, arityErr("apply", 2, n)
			}
			realOp := args.Car
			realArgs := args.Cdr.Car
			op = realOp
			args = realArgs
		case op.Type == TIntrinsic:
			b := op.Builtin
			if b.Arity >= 0 {
				n, err := Length(args)
				if err != nil {
					return nil, nil, err
				}
				if n != b.Arity {
					return nil, nil, arityErr(b.Name, b.Arity, n)
				}
			}
			result, err := b.Fn(env, args)
			if err != nil {
				return nil, nil, err
			}
			return result, env, nil
		case op.Type == TClosure:
			paramEnv, err := bindParams(op.Params, args, op.Env)
			if err != nil {
				return nil, nil, err
			}
			newEnv := paramEnv.PushFrame()
			k.PushRestoreEnv(env)
			k.Push(OpBegin, op.Body)
			return Void, newEnv, nil
		case op.Type == TContinuation:
			n, err := Length(args)
			if err != nil {
				return nil, nil, err
			}
			if n != 1 {
				return nil, nil, arityErr("continuation", 1, n)
			}
			k.Restore(op.Cont)
			return args.Car, env, nil
		default:
			return nil, nil, notCallableErr(op)
		}
	}
}
