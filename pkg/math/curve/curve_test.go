package curve

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var groups = []Group{Secp256k1{}, Decred{}}

func randomScalar(t testing.TB) Scalar {
	buf := make([]byte, 64)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return ScalarFromHash(buf)
}

func randomPoint(t testing.TB, g Group) Point {
	return g.MultiplyBase(randomScalar(t))
}

func natFromUint64(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func TestGroup_IsOnCurve(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			assert.True(t, g.IsOnCurve(g.Generator()))
			assert.True(t, g.IsOnCurve(Identity()))
			assert.False(t, g.IsOnCurve(NewPoint(natFromUint64(10), natFromUint64(10))))

			// coordinates must be reduced, even if they are congruent to a valid point
			G := g.Generator()
			xBig := new(big.Int).Add(G.X().Big(), fp.Big())
			assert.False(t, g.IsOnCurve(NewPointBig(xBig, G.Y().Big())))
			assert.True(t, g.IsOnCurve(G.Negate()))
		})
	}
}

func TestGroup_Validate(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			G := g.Generator()
			p, err := g.Validate(G.X(), G.Y())
			require.NoError(t, err)
			assert.True(t, p.Equal(G))

			_, err = g.Validate(natFromUint64(10), natFromUint64(10))
			assert.ErrorIs(t, err, ErrPointNotOnCurve)

			_, err = g.Validate(nil, natFromUint64(10))
			assert.ErrorIs(t, err, ErrPointNotOnCurve)
		})
	}
}

func TestGroup_MultiplyMatchesAddition(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			G := g.Generator()
			G2 := g.Add(G, G)
			G3 := g.Add(G, G2)
			G4 := g.Add(G, G3)
			assert.True(t, g.IsOnCurve(G2))
			assert.True(t, g.IsOnCurve(G3))

			assert.True(t, g.Multiply(NewScalarUint64(2), G).Equal(G2))
			assert.True(t, g.Multiply(NewScalarUint64(3), G).Equal(G3))
			assert.True(t, g.Multiply(NewScalarUint64(4), G).Equal(G4))
			assert.True(t, g.MultiplyBase(NewScalarUint64(4)).Equal(G4))
			assert.True(t, g.Multiply(NewScalarUint64(1), G).Equal(G))
		})
	}
}

func TestGroup_Identity(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			p := randomPoint(t, g)
			assert.True(t, g.Add(p, Identity()).Equal(p))
			assert.True(t, g.Add(Identity(), p).Equal(p))
			assert.True(t, g.Add(Identity(), Identity()).IsIdentity())

			assert.True(t, g.Add(p, p.Negate()).IsIdentity())
			assert.True(t, g.Multiply(Scalar{}, p).IsIdentity())
			assert.True(t, g.MultiplyBase(NewScalarUint64(0)).IsIdentity())
			assert.True(t, g.Multiply(randomScalar(t), Identity()).IsIdentity())

			// (N-1)⋅G = -G
			minusOne := NewScalarUint64(1).Negate()
			assert.True(t, g.MultiplyBase(minusOne).Equal(g.Generator().Negate()))
		})
	}
}

func TestGroup_MultiplyByZero(t *testing.T) {
	zero := NewScalarUint64(0)
	N := NewScalar(Order().Nat())
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			for _, k := range []Scalar{{}, zero, N} {
				p := g.MultiplyBase(k)
				assert.True(t, p.IsIdentity(), "MultiplyBase(0) = %v", p)
				assert.True(t, g.IsOnCurve(p))
				assert.True(t, g.Multiply(k, g.Generator()).IsIdentity())
				assert.True(t, g.Multiply(k, randomPoint(t, g)).IsIdentity())
			}
		})
	}
}

func TestDecred_FromDecredIdentity(t *testing.T) {
	// X = Y = 0 with Z = 1 is how decred reports 0⋅G
	var j secp256k1.JacobianPoint
	j.Z.SetInt(1)
	assert.True(t, fromDecred(&j).IsIdentity())

	var zeroZ secp256k1.JacobianPoint
	zeroZ.X.SetInt(1)
	zeroZ.Y.SetInt(1)
	assert.True(t, fromDecred(&zeroZ).IsIdentity())
}

func TestGroup_Laws(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			for i := 0; i < 8; i++ {
				p, q, r := randomPoint(t, g), randomPoint(t, g), randomPoint(t, g)
				assert.True(t, g.Add(p, q).Equal(g.Add(q, p)), "commutativity")
				assert.True(t, g.Add(g.Add(p, q), r).Equal(g.Add(p, g.Add(q, r))), "associativity")
				assert.True(t, g.IsOnCurve(g.Add(p, q)))
			}
		})
	}
}

func TestGroup_Distributive(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			a, b := randomScalar(t), randomScalar(t)
			p := randomPoint(t, g)
			// (a+b)⋅P = a⋅P + b⋅P
			assert.True(t, g.Multiply(a.Add(b), p).Equal(g.Add(g.Multiply(a, p), g.Multiply(b, p))))
			// a⋅(b⋅G) = (a⋅b)⋅G
			assert.True(t, g.Multiply(a, g.MultiplyBase(b)).Equal(g.MultiplyBase(a.Mul(b))))
		})
	}
}

func TestGroups_Agree(t *testing.T) {
	ours, delegated := Secp256k1{}, Decred{}
	for i := 0; i < 8; i++ {
		k := randomScalar(t)
		p := ours.MultiplyBase(k)
		require.True(t, p.Equal(delegated.MultiplyBase(k)))

		// btcec as an independent oracle
		x, y := btcec.S256().ScalarBaseMult(k.Bytes())
		assert.True(t, p.Equal(NewPointBig(x, y)))

		q := randomPoint(t, ours)
		assert.True(t, ours.Add(p, q).Equal(delegated.Add(p, q)))
		assert.True(t, ours.Add(p, p).Equal(delegated.Add(p, p)))

		l := randomScalar(t)
		assert.True(t, ours.Multiply(l, q).Equal(delegated.Multiply(l, q)))
		x, y = btcec.S256().ScalarMult(q.X().Big(), q.Y().Big(), l.Bytes())
		assert.True(t, ours.Multiply(l, q).Equal(NewPointBig(x, y)))
	}
}

func TestDomainParameters(t *testing.T) {
	params := btcec.S256().Params()
	assert.Zero(t, params.P.Cmp(fp.Big()))
	assert.Zero(t, params.N.Cmp(fn.Big()))
	assert.Zero(t, params.Gx.Cmp(Generator().X().Big()))
	assert.Zero(t, params.Gy.Cmp(Generator().Y().Big()))
	assert.Equal(t, params.N.BitLen(), Order().BitLen())
}

func TestFromName(t *testing.T) {
	for _, name := range SupportedGroups() {
		g, err := FromName(name)
		require.NoError(t, err)
		assert.Equal(t, name, g.Name())
	}
	_, err := FromName("p256")
	assert.Error(t, err)
}

var resultPoint Point

func BenchmarkMultiply(b *testing.B) {
	for _, g := range groups {
		b.Run(g.Name(), func(b *testing.B) {
			k := randomScalar(b)
			p := randomPoint(b, g)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				resultPoint = g.Multiply(k, p)
			}
		})
	}
}
