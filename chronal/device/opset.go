package device

// r suffix: register operand, i suffix: immediate operand.
var canonicalOps = []struct {
	name string
	fn   OpFunc
}{
	{"addr", rr(func(a, b int64) int64 { return a + b })},
	{"addi", ri(func(a, b int64) int64 { return a + b })},
	{"mulr", rr(func(a, b int64) int64 { return a * b })},
	{"muli", ri(func(a, b int64) int64 { return a * b })},
	{"banr", rr(func(a, b int64) int64 { return a & b })},
	{"bani", ri(func(a, b int64) int64 { return a & b })},
	{"borr", rr(func(a, b int64) int64 { return a | b })},
	{"bori", ri(func(a, b int64) int64 { return a | b })},
	{"setr", ri(func(a, _ int64) int64 { return a })},
	{"seti", ii(func(a, _ int64) int64 { return a })},
	{"gtir", ir(gt)},
	{"gtri", ri(gt)},
	{"gtrr", rr(gt)},
	{"eqir", ir(eq)},
	{"eqri", ri(eq)},
	{"eqrr", rr(eq)},
}

// CanonicalNames lists the canonical operations in opcode order.
func CanonicalNames() []string {
	out := make([]string, len(canonicalOps))
	for i, op := range canonicalOps {
		out[i] = op.name
	}
	return out
}

func bool64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func gt(a, b int64) int64 { return bool64(a > b) }
func eq(a, b int64) int64 { return bool64(a == b) }

func rr(f func(a, b int64) int64) OpFunc {
	return func(a, b int64, s State) (int64, error) {
		va, err := s.Get(a)
		if err != nil {
			return 0, err
		}
		vb, err := s.Get(b)
		if err != nil {
			return 0, err
		}
		return f(va, vb), nil
	}
}

func ri(f func(a, b int64) int64) OpFunc {
	return func(a, b int64, s State) (int64, error) {
		va, err := s.Get(a)
		if err != nil {
			return 0, err
		}
		return f(va, b), nil
	}
}

func ir(f func(a, b int64) int64) OpFunc {
	return func(a, b int64, s State) (int64, error) {
		vb, err := s.Get(b)
		if err != nil {
			return 0, err
		}
		return f(a, vb), nil
	}
}

func ii(f func(a, b int64) int64) OpFunc {
	return func(a, b int64, _ State) (int64, error) {
		return f(a, b), nil
	}
}
