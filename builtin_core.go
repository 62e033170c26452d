// builtin_core.go — standard native functions installed into Core.
package lox

import "time"

func registerStandardBuiltins(ip *Interpreter) {
	ip.RegisterNative("clock", 0, func(ip *Interpreter, args []Value) Value {
		return NumVal(float64(time.Now().UnixNano()) / 1e9)
	})

	ip.RegisterNative("str", 1, func(ip *Interpreter, args []Value) Value {
		return StrVal(Stringify(args[0]))
	})

	ip.RegisterNative("len", 1, func(ip *Interpreter, args []Value) Value {
		if args[0].Tag != VTStr {
			panic(&RuntimeError{Kind: TypeMismatch, Msg: "len expects a string"})
		}
		return NumVal(float64(len(args[0].Data.(string))))
	})
}
