package crypto

import (
	"encoding/json"
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func fp(t testing.TB, s string) Fp {
	t.Helper()
	x, err := uint128.FromString(s)
	require.NoError(t, err)
	a, err := FpFromCanonicalResidue(x)
	require.NoError(t, err)
	return a
}

func raw(v uint64) Fp {
	return Fp{repr: uint128.From64(v)}
}

var fpP = Fp{repr: fpPrime}

func TestFpNeg(t *testing.T) {
	require.True(t, raw(0).Neg().Equal(raw(0)))
	require.Equal(t, fpPrime.Sub64(5), raw(5).Neg().repr)
	require.True(t, fpP.Neg().IsZero())

	for _, a := range []Fp{raw(0), raw(1), raw(12345), fpP, fpP.Sub(raw(1))} {
		require.True(t, a.Neg().Neg().Equal(a), a)
		require.True(t, a.Add(a.Neg()).IsZero(), a)
		require.True(t, a.Sub(a).IsZero(), a)
	}
}

func TestFpAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Fp
		expected Fp
	}{
		{"small", raw(7), raw(5), raw(12)},
		{"wraps_modulus", Fp{repr: fpPrime.Sub64(2)}, raw(5), raw(3)},
		{"large", fp(t, "75661398932549814984099328258351945610"), fp(t, "154440289138086217180118920884960981429"), fp(t, "59960504610166800432530945427428821312")},
		{"zero_reprs", fpP, fpP, raw(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.a.Add(tt.b)
			require.True(t, res.Equal(tt.expected), "got %s, want %s", res, tt.expected)
			require.LessOrEqual(t, res.repr.Cmp(fpPrime), 0)
		})
	}
}

func TestFpSub(t *testing.T) {
	require.True(t, raw(7).Sub(raw(5)).Equal(raw(2)))
	require.True(t, raw(4).Sub(raw(8)).Equal(Fp{repr: fpPrime.Sub64(4)}))
}

func TestFpMul(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Fp
		expected Fp
	}{
		{"small", raw(4), raw(3), raw(12)},
		{"p_is_zero", fpP, raw(291298091), raw(0)},
		{"large", fp(t, "14766549069271113692204649107775507741"), fp(t, "153613967287097206589234951623852979690"), fp(t, "113548737858505840193892055835373785352")},
		{"large_near_modulus", fp(t, "75661398932549814984099328258351945610"), fp(t, "154440289138086217180118920884960981429"), fp(t, "109146875586984049909139102289297416971")},
		{"minus_one_squared", fpP.Sub(raw(1)), fpP.Sub(raw(1)), raw(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.a.Mul(tt.b)
			require.True(t, res.Equal(tt.expected), "got %s, want %s", res, tt.expected)
			require.LessOrEqual(t, res.repr.Cmp(fpPrime), 0)
		})
	}
}

func TestFpMulSingleReductionInsufficient(t *testing.T) {
	minusOne := fpP.Sub(raw(1))
	product := new(big.Int).Mul(minusOne.repr.Big(), minusOne.repr.Big())

	// One fold of (p-1)^2 lands on p+1; only the second fold brings it to 1.
	lo := uint128.FromBig(new(big.Int).And(product, uint128.Max.Big()))
	hi := uint128.FromBig(new(big.Int).Rsh(product, 128))
	once := reducePair(hi, lo)
	require.Equal(t, fpPrime.Add64(1), once)
	require.Equal(t, uint128.From64(1), reduce(once))
	require.Equal(t, uint128.From64(1), minusOne.Mul(minusOne).repr)
}

func TestFpMulMatchesBig(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := fpPrime.Big()
	for i := 0; i < 2000; i++ {
		var a, b Fp
		a.Randomize(rng)
		b.Randomize(rng)

		expected := new(big.Int).Mul(a.Big(), b.Big())
		expected.Mod(expected, p)
		require.Zero(t, expected.Cmp(a.Mul(b).Big()), "%s * %s", a, b)
	}
}

func TestFpEqual(t *testing.T) {
	require.True(t, raw(0).Equal(fpP))
	require.NotEqual(t, raw(0).repr, fpP.repr)
	require.False(t, raw(17).Equal(raw(4)))
	require.False(t, raw(0).Equal(raw(4)))
	require.False(t, fpP.Equal(raw(17)))
}

func TestFpCmp(t *testing.T) {
	require.Equal(t, -1, raw(0).Cmp(raw(1)))
	require.Equal(t, 1, raw(17).Cmp(raw(0)))
	require.Equal(t, -1, fpP.Cmp(raw(1)))
	// p > 23 as integers, but p denotes zero.
	require.Equal(t, 1, raw(23).Cmp(fpP))
	require.Equal(t, 0, fpP.Cmp(raw(0)))
}

func TestFpAssign(t *testing.T) {
	a := raw(17)

	a.AddAssign(raw(3))
	require.True(t, a.Equal(raw(20)))

	a.SubAssign(raw(5))
	require.True(t, a.Equal(raw(15)))

	a.MulAssign(raw(2))
	require.True(t, a.Equal(raw(30)))
}

func TestFpConstructors(t *testing.T) {
	a, err := FpFromCanonicalResidue(fpPrime)
	require.NoError(t, err)
	require.True(t, a.IsZero())
	require.Equal(t, fpPrime, a.repr)

	_, err = FpFromCanonicalResidue(fpPrime.Add64(1))
	require.ErrorIs(t, err, ErrOutOfRange)

	require.Panics(t, func() { MustFpFromCanonicalResidue(uint128.Max) })

	require.True(t, FpFromUint128DiscardMSB(uint128.Max).IsZero())
	require.True(t, FpFromUint128DiscardMSB(uint128.New(5, 1<<63)).Equal(raw(5)))
	require.True(t, FpFromUint64(42).Equal(raw(42)))
	require.Equal(t, "0", fpP.String())
	require.Zero(t, FpPrime().Big().Cmp(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))))
}

func TestFpPowInv(t *testing.T) {
	require.True(t, raw(3).Pow(uint128.From64(4)).Equal(raw(81)))
	require.True(t, raw(0).Pow(uint128.Zero).Equal(FpOne()))

	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 20; i++ {
		a := FpRandomRejection(rng)
		if a.IsZero() {
			continue
		}
		// Fermat: a^(p-1) == 1
		require.True(t, a.Pow(fpPrime.Sub64(1)).Equal(FpOne()), a)

		inv, err := a.Inv()
		require.NoError(t, err)
		require.True(t, a.Mul(inv).Equal(FpOne()), a)
	}

	_, err := fpP.Inv()
	require.ErrorIs(t, err, ErrZeroInverse)
}

func TestPowerSums(t *testing.T) {
	sums := PowerSums(raw(3), 4)
	require.Len(t, sums, 4)
	for i, expected := range []uint64{3, 9, 27, 81} {
		require.True(t, sums[i].Equal(raw(expected)), "power %d", i+1)
	}
	require.Empty(t, PowerSums(raw(3), 0))
}

func TestFpBinaryRoundTrip(t *testing.T) {
	for _, a := range []Fp{raw(0), fpP, raw(1), fpP.Sub(raw(1)), fp(t, "113548737858505840193892055835373785352")} {
		enc, err := a.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, enc, FpEncodedLen)

		var dec Fp
		require.NoError(t, dec.UnmarshalBinary(enc))
		require.True(t, dec.Equal(a))
		require.Equal(t, a.Canonical(), dec.repr)
	}

	// p itself is not a valid wire value.
	enc := make([]byte, FpEncodedLen)
	fpPrime.PutBytesBE(enc)
	var dec Fp
	err := dec.UnmarshalBinary(enc)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	require.Zero(t, rangeErr.Value.Cmp(fpPrime.Big()))
	require.ErrorIs(t, err, ErrOutOfRange)

	uint128.Max.PutBytesBE(enc)
	require.ErrorIs(t, dec.UnmarshalBinary(enc), ErrOutOfRange)

	require.Error(t, dec.UnmarshalBinary(make([]byte, 15)))
}

func TestFpTextRoundTrip(t *testing.T) {
	var a Fp
	require.NoError(t, a.UnmarshalText([]byte("109146875586984049909139102289297416971")))
	text, err := a.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "109146875586984049909139102289297416971", string(text))

	require.ErrorIs(t, a.UnmarshalText([]byte(fpPrime.String())), ErrOutOfRange)
	require.ErrorIs(t, a.UnmarshalText([]byte("-1")), ErrOutOfRange)
	require.ErrorIs(t, a.UnmarshalText([]byte("1000000000000000000000000000000000000000000")), ErrOutOfRange)
	require.Error(t, a.UnmarshalText([]byte("0x12")))

	require.NoError(t, a.UnmarshalText([]byte("0")))
	require.True(t, a.IsZero())
	for _, in := range []string{"+5", "0005", "00", "-0", "", "-", "1_000", " 5", "5 "} {
		require.Error(t, a.UnmarshalText([]byte(in)), "input %q", in)
	}
}

func TestFpJSON(t *testing.T) {
	type payload struct {
		Masks []Fp `json:"masks"`
	}

	in := payload{Masks: []Fp{raw(7), fpP, fp(t, "59960504610166800432530945427428821312")}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"masks":[7,0,59960504610166800432530945427428821312]}`, string(data))

	var out payload
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Masks, 3)
	for i := range in.Masks {
		require.True(t, in.Masks[i].Equal(out.Masks[i]))
	}

	var quoted Fp
	require.NoError(t, json.Unmarshal([]byte(`"12"`), &quoted))
	require.True(t, quoted.Equal(raw(12)))

	err = json.Unmarshal([]byte(`{"masks":[170141183460469231731687303715884105727]}`), &out)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestFpRandomizeUniform(t *testing.T) {
	const (
		samples = 160000
		buckets = 16
	)
	rng := rand.NewChaCha8([32]byte{1, 2, 3})

	var counts [buckets]int
	for i := 0; i < samples; i++ {
		var a Fp
		a.Randomize(rng)
		require.LessOrEqual(t, a.repr.Cmp(fpPrime), 0)
		counts[a.Canonical().Rsh(123).Lo]++
	}

	// Chi-squared with 15 degrees of freedom; 50 is far in the tail.
	expected := float64(samples) / buckets
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	require.Less(t, chi2, 50.0, "counts %v", counts)
}

func TestFpRandomRejection(t *testing.T) {
	// A source that first yields exactly p, then 9.
	src := &sliceSource{vals: []uint64{fpPrime.Lo, fpPrime.Hi, 9, 0}}
	a := FpRandomRejection(src)
	require.True(t, a.Equal(raw(9)))
	require.Equal(t, 4, src.off)
}

type sliceSource struct {
	vals []uint64
	off  int
}

func (s *sliceSource) Uint64() uint64 {
	v := s.vals[s.off%len(s.vals)]
	s.off++
	return v
}
