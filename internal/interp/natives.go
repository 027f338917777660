package interp

// defineBuiltins installs the global functions every session starts with.
func (in *Interpreter) defineBuiltins() {
	in.DefineNative("clock", 0, func([]Value) (Value, error) {
		now := in.rt.Now()
		return MakeNumber(float64(now.UnixNano()) / 1e9), nil
	})
}
