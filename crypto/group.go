package crypto

// Group is the additive vocabulary shared by Fp and every XorElem, so code
// combining masks and shares can be written once for both.
type Group[T any] interface {
	Add(other T) T
	Sub(other T) T
	Neg() T
}

// Sum returns zero + xs[0] + xs[1] + ...
func Sum[T Group[T]](zero T, xs ...T) T {
	acc := zero
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}

// PowerSums returns m^1, m^2, ..., m^n. A participant publishing masked power
// sums of its message lets the combined round output be solved for the set of
// all messages without revealing who sent which.
func PowerSums(m Fp, n int) []Fp {
	res := make([]Fp, n)
	acc := FpOne()
	for i := range res {
		acc = acc.Mul(m)
		res[i] = acc
	}
	return res
}

// AddVectorsInplace sets ls[i] = ls[i] + rs[i] for every position.
// The vectors must have equal length.
func AddVectorsInplace(ls []Fp, rs []Fp) {
	mustSameLen(len(ls), len(rs))
	for i := range ls {
		ls[i].AddAssign(rs[i])
	}
}
