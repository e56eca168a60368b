package expr

import "math"

// factorialF64 is a fixed-size lookup table computed at init, read-only.
// 170! is the last finite float64 factorial.
var factorialF64 [171]float64

// bernoulli2k holds B_2, B_4, ..., B_20 for the polygamma asymptotic series.
var bernoulli2k = [...]float64{
	1.0 / 6,
	-1.0 / 30,
	1.0 / 42,
	-1.0 / 30,
	5.0 / 66,
	-691.0 / 2730,
	7.0 / 6,
	-3617.0 / 510,
	43867.0 / 798,
	-174611.0 / 330,
}

func init() {
	factorialF64[0] = 1
	for i := 1; i < len(factorialF64); i++ {
		factorialF64[i] = factorialF64[i-1] * float64(i)
	}
}

// Eval evaluates node at x.
func Eval(node ExprNode, x float64) float64 {
	return node.EvalF64(x)
}

// Func returns node as a plain callable.
func Func(node ExprNode) func(float64) float64 {
	return node.EvalF64
}

// EvalF64 for VarNode returns x.
func (v *VarNode) EvalF64(x float64) float64 {
	return x
}

// EvalF64 for ConstNode returns the constant value.
func (c *ConstNode) EvalF64(x float64) float64 {
	return c.Val
}

// EvalF64 for UnaryNode dispatches on op.
func (u *UnaryNode) EvalF64(x float64) float64 {
	v := u.Child.EvalF64(x)

	switch u.Op {
	case OpSin:
		return math.Sin(v)
	case OpCos:
		return math.Cos(v)
	case OpTan:
		return math.Tan(v)
	case OpSec:
		return 1 / math.Cos(v)
	case OpCsc:
		return 1 / math.Sin(v)
	case OpCot:
		return 1 / math.Tan(v)
	case OpAsin:
		return math.Asin(v)
	case OpAcos:
		return math.Acos(v)
	case OpAtan:
		return math.Atan(v)
	case OpSinh:
		return math.Sinh(v)
	case OpCosh:
		return math.Cosh(v)
	case OpTanh:
		return math.Tanh(v)
	case OpAbs:
		return math.Abs(v)
	case OpFactorial:
		return Factorial(v)
	case OpGamma:
		return Gamma(v)
	default:
		return math.NaN()
	}
}

// EvalF64 for PolygammaNode evaluates the polygamma function of its order.
func (p *PolygammaNode) EvalF64(x float64) float64 {
	return Polygamma(p.Order, p.Child.EvalF64(x))
}

// EvalF64 for BinaryNode dispatches on op.
func (b *BinaryNode) EvalF64(x float64) float64 {
	left := b.Left.EvalF64(x)
	right := b.Right.EvalF64(x)

	switch b.Op {
	case OpAdd:
		return left + right
	case OpSub:
		return left - right
	case OpMul:
		return left * right
	case OpDiv:
		return left / right
	case OpPow:
		return math.Pow(left, right)
	case OpLog:
		return math.Log(right) / math.Log(left)
	default:
		return math.NaN()
	}
}

// Factorial returns v! for real v, exact for integral v in [0, 170].
func Factorial(v float64) float64 {
	if v >= 0 && v < float64(len(factorialF64)) && v == math.Trunc(v) {
		return factorialF64[int(v)]
	}
	return Gamma(v + 1)
}

// Gamma returns Γ(v), exact for positive integral v up to 171.
func Gamma(v float64) float64 {
	if v >= 1 && v <= float64(len(factorialF64)) && v == math.Trunc(v) {
		return factorialF64[int(v)-1]
	}
	return math.Gamma(v)
}

// Polygamma returns ψ⁽ᵐ⁾(v), the m-th derivative of the digamma function.
func Polygamma(m int, v float64) float64 {
	if m < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	if v <= 0 && v == math.Trunc(v) {
		return math.NaN() // poles
	}
	if v < -1e6 {
		return math.NaN()
	}

	// (-1)^m m! used by the recurrence ψ⁽ᵐ⁾(v) = ψ⁽ᵐ⁾(v+1) - (-1)^m m!/v^(m+1).
	sign := 1.0
	if m%2 == 1 {
		sign = -1.0
	}
	mFact := Factorial(float64(m))

	shift := 0.0
	for v < 10 {
		shift -= sign * mFact / math.Pow(v, float64(m+1))
		v++
	}
	return shift + polygammaAsymptotic(m, v)
}

// polygammaAsymptotic evaluates the Bernoulli asymptotic series, valid for large v.
func polygammaAsymptotic(m int, v float64) float64 {
	if m == 0 {
		sum := math.Log(v) - 1/(2*v)
		for k, b := range bernoulli2k {
			n := float64(2 * (k + 1))
			sum -= b / (n * math.Pow(v, n))
		}
		return sum
	}

	fm := float64(m)
	sum := Factorial(fm-1)/math.Pow(v, fm) + Factorial(fm)/(2*math.Pow(v, fm+1))
	for k, b := range bernoulli2k {
		n := float64(2 * (k + 1))
		sum += b * Factorial(n+fm-1) / (Factorial(n) * math.Pow(v, n+fm))
	}
	if m%2 == 0 {
		return -sum
	}
	return sum
}
