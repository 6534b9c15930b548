package blind

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/blind-sig/pkg/hash"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
	"github.com/taurusgroup/blind-sig/pkg/pool"
	"golang.org/x/sync/errgroup"
)

var groups = []curve.Group{curve.Secp256k1{}, curve.Decred{}}

// run executes the whole protocol on message and returns the final signature.
func run(t testing.TB, s *Scheme, key KeyPair, message []byte) Signature {
	commitment, err := s.GenerateNonceCommitment()
	require.NoError(t, err)

	req, factors, err := s.Blind(commitment.Point, message)
	require.NoError(t, err)

	sPrime, err := s.BlindSign(key.PrivateKey, commitment.Nonce, req.BlindM)
	require.NoError(t, err)

	return factors.Unblind(req, sPrime)
}

func TestScheme_EndToEnd(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			s := NewScheme(Config{Group: g})
			key, err := s.GenerateKeyPair()
			require.NoError(t, err)

			message := []byte("test")
			sig := run(t, s, key, message)

			valid, err := s.Verify(sig, message, key.PublicKey)
			require.NoError(t, err)
			assert.True(t, valid)

			valid, err = s.Verify(sig, []byte("not test"), key.PublicKey)
			require.NoError(t, err)
			assert.False(t, valid)
		})
	}
}

func TestScheme_HashFunctions(t *testing.T) {
	for _, h := range []hash.Function{hash.Keccak256{}, hash.Blake3{}} {
		t.Run(h.Name(), func(t *testing.T) {
			s := NewScheme(Config{Hash: h})
			key, err := s.GenerateKeyPair()
			require.NoError(t, err)
			sig := run(t, s, key, []byte("hello"))
			valid, err := s.Verify(sig, []byte("hello"), key.PublicKey)
			require.NoError(t, err)
			assert.True(t, valid)

			// a verifier using another hash rejects it
			other := NewScheme(Config{Hash: hash.Blake3{Domain: "other"}})
			valid, err = other.Verify(sig, []byte("hello"), key.PublicKey)
			require.NoError(t, err)
			assert.False(t, valid)
		})
	}
}

func TestScheme_Tampering(t *testing.T) {
	s := NewScheme(Config{})
	key, err := s.GenerateKeyPair()
	require.NoError(t, err)
	other, err := s.GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("test")
	sig := run(t, s, key, message)

	for bit := 0; bit < 256; bit += 17 {
		b := sig.S.Bytes()
		b[31-bit/8] ^= 1 << uint(bit%8)
		tampered := Signature{S: curve.ScalarFromHash(b), R: sig.R}
		valid, err := s.Verify(tampered, message, key.PublicKey)
		require.NoError(t, err)
		assert.False(t, valid, "bit %d", bit)
	}

	valid, err := s.Verify(sig, message, other.PublicKey)
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = s.Verify(Signature{S: sig.S, R: sig.R.Negate()}, message, key.PublicKey)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestScheme_Unlinkability(t *testing.T) {
	s := NewScheme(Config{})
	commitment, err := s.GenerateNonceCommitment()
	require.NoError(t, err)

	message := []byte("test")
	req1, f1, err := s.Blind(commitment.Point, message)
	require.NoError(t, err)
	req2, f2, err := s.Blind(commitment.Point, message)
	require.NoError(t, err)

	assert.False(t, req1.R.Equal(req2.R))
	assert.Equal(t, saferith.Choice(0), req1.BlindM.Eq(req2.BlindM))
	assert.False(t, f1.A.Equal(f2.A))
	assert.False(t, f1.B.Equal(f2.B))
}

func TestScheme_FreshRandomness(t *testing.T) {
	s := NewScheme(Config{})
	c1, err := s.GenerateNonceCommitment()
	require.NoError(t, err)
	c2, err := s.GenerateNonceCommitment()
	require.NoError(t, err)
	assert.False(t, c1.Nonce.Equal(c2.Nonce))
	assert.False(t, c1.Point.Equal(c2.Point))

	k1, err := s.GenerateKeyPair()
	require.NoError(t, err)
	k2, err := s.GenerateKeyPair()
	require.NoError(t, err)
	assert.False(t, k1.PrivateKey.Equal(k2.PrivateKey))
	assert.True(t, s.Group().MultiplyBase(k1.PrivateKey).Equal(k1.PublicKey))
}

func TestBlindSign_Range(t *testing.T) {
	s := NewScheme(Config{})
	key, err := s.GenerateKeyPair()
	require.NoError(t, err)
	commitment, err := s.GenerateNonceCommitment()
	require.NoError(t, err)

	N := new(saferith.Nat).SetBig(curve.Order().Big(), 256)
	_, err = s.BlindSign(key.PrivateKey, commitment.Nonce, N)
	assert.ErrorIs(t, err, ErrBlindedMessageOutOfRange)

	NPlusOne := new(saferith.Nat).SetBig(new(big.Int).Add(curve.Order().Big(), big.NewInt(1)), 257)
	_, err = s.BlindSign(key.PrivateKey, commitment.Nonce, NPlusOne)
	assert.ErrorIs(t, err, ErrBlindedMessageOutOfRange)

	_, err = s.BlindSign(key.PrivateKey, commitment.Nonce, new(saferith.Nat).SetUint64(0))
	assert.ErrorIs(t, err, ErrZeroBlindedMessage)

	_, err = s.BlindSign(key.PrivateKey, commitment.Nonce, nil)
	assert.ErrorIs(t, err, ErrZeroBlindedMessage)

	one := new(saferith.Nat).SetUint64(1)
	_, err = s.BlindSign(curve.Scalar{}, commitment.Nonce, one)
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = s.BlindSign(key.PrivateKey, curve.Scalar{}, one)
	assert.ErrorIs(t, err, ErrInvalidScalar)

	// s' = d⋅1 + k
	sPrime, err := s.BlindSign(key.PrivateKey, commitment.Nonce, one)
	require.NoError(t, err)
	assert.True(t, sPrime.Equal(key.PrivateKey.Add(commitment.Nonce)))
}

func TestBlind_InvalidCommitment(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			s := NewScheme(Config{Group: g})
			ten := new(saferith.Nat).SetUint64(10)
			_, _, err := s.Blind(curve.NewPoint(ten, ten), []byte("test"))
			assert.ErrorIs(t, err, ErrInvalidCommitment)

			_, _, err = s.Blind(curve.Identity(), []byte("test"))
			assert.ErrorIs(t, err, ErrInvalidCommitment)
		})
	}
}

// zeroHash maps every message to 0.
type zeroHash struct{}

func (zeroHash) Name() string { return "zero" }

func (zeroHash) HashToScalar([]byte) curve.Scalar { return curve.Scalar{} }

func TestBlind_ZeroBlindedMessage(t *testing.T) {
	s := NewScheme(Config{Hash: zeroHash{}})
	commitment, err := s.GenerateNonceCommitment()
	require.NoError(t, err)
	_, _, err = s.Blind(commitment.Point, []byte("test"))
	assert.ErrorIs(t, err, ErrZeroBlindedMessage)
	assert.True(t, IsRecoverable(err))
}

func TestBlind_Degenerate(t *testing.T) {
	// with R' = k⋅G, choosing b = -a⋅k gives R = (a⋅k + b)⋅G = O
	k := curve.NewScalarUint64(12345)
	a := curve.NewScalarUint64(678)
	b := a.Mul(k).Negate()
	randomness := bytes.NewReader(append(a.Bytes(), b.Bytes()...))

	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			_, err := randomness.Seek(0, 0)
			require.NoError(t, err)
			s := NewScheme(Config{Group: g, Rand: randomness})
			_, _, err = s.Blind(g.MultiplyBase(k), []byte("test"))
			assert.ErrorIs(t, err, ErrDegenerateBlinding)
			assert.True(t, IsRecoverable(err))
		})
	}
}

func TestBlind_RandomnessFailure(t *testing.T) {
	s := NewScheme(Config{Rand: bytes.NewReader(nil)})
	_, err := s.GenerateKeyPair()
	assert.Error(t, err)
	_, err = s.GenerateNonceCommitment()
	assert.Error(t, err)
	_, _, err = s.Blind(curve.Generator(), []byte("test"))
	assert.Error(t, err)
	assert.False(t, IsRecoverable(err))
}

func TestVerify_InvalidPoint(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			s := NewScheme(Config{Group: g})
			key, err := s.GenerateKeyPair()
			require.NoError(t, err)
			sig := run(t, s, key, []byte("test"))

			ten := new(saferith.Nat).SetUint64(10)
			bad := curve.NewPoint(ten, ten)

			valid, err := s.Verify(Signature{S: sig.S, R: bad}, []byte("test"), key.PublicKey)
			assert.False(t, valid)
			assert.ErrorIs(t, err, ErrInvalidPoint)

			valid, err = s.Verify(sig, []byte("test"), bad)
			assert.False(t, valid)
			assert.ErrorIs(t, err, ErrInvalidPoint)

			valid, err = s.Verify(sig, []byte("test"), curve.Identity())
			assert.False(t, valid)
			assert.ErrorIs(t, err, ErrInvalidPoint)

			valid, err = s.Verify(Signature{S: sig.S}, []byte("test"), key.PublicKey)
			assert.False(t, valid)
			assert.ErrorIs(t, err, ErrInvalidPoint)
		})
	}
}

func TestUnblind(t *testing.T) {
	a, b, sPrime := curve.NewScalarUint64(3), curve.NewScalarUint64(5), curve.NewScalarUint64(7)
	assert.True(t, Unblind(a, b, sPrime).Equal(curve.NewScalarUint64(26)))

	// wraps around N
	minusOne := curve.NewScalarUint64(1).Negate()
	assert.True(t, Unblind(minusOne, curve.NewScalarUint64(1), curve.NewScalarUint64(1)).IsZero())
}

func TestSignature_Marshal(t *testing.T) {
	s := NewScheme(Config{})
	key, err := s.GenerateKeyPair()
	require.NoError(t, err)
	sig := run(t, s, key, []byte("test"))

	data, err := sig.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 65)

	var decoded Signature
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, decoded.S.Equal(sig.S))
	assert.True(t, decoded.R.Equal(sig.R))

	valid, err := s.Verify(decoded, []byte("test"), key.PublicKey)
	require.NoError(t, err)
	assert.True(t, valid)

	assert.Error(t, decoded.UnmarshalBinary(data[:64]))
	_, err = Signature{S: sig.S}.MarshalBinary()
	assert.ErrorIs(t, err, curve.ErrIdentity)
}

func TestVerifyBatch(t *testing.T) {
	s := NewScheme(Config{})
	key, err := s.GenerateKeyPair()
	require.NoError(t, err)

	const count = 8
	items := make([]BatchItem, count)
	for i := range items {
		message := []byte{byte(i)}
		items[i] = BatchItem{Signature: run(t, s, key, message), Message: message, PublicKey: key.PublicKey}
	}

	p := pool.NewPool(0)
	defer p.TearDown()
	for _, pl := range []*pool.Pool{nil, p} {
		valid, err := s.VerifyBatch(pl, items)
		require.NoError(t, err)
		assert.True(t, AllValid(valid))
	}

	items[2].Message = []byte("forged")
	items[5].PublicKey = curve.Identity()
	valid, err := s.VerifyBatch(p, items)
	assert.ErrorIs(t, err, ErrInvalidPoint)
	assert.False(t, AllValid(valid))
	assert.Equal(t, []bool{true, true, false, true, true, false, true, true}, valid)

	assert.False(t, AllValid(nil))
}

func TestScheme_ConcurrentSessions(t *testing.T) {
	s := NewScheme(Config{Rand: pool.NewLockedReader(rand.Reader)})
	key, err := s.GenerateKeyPair()
	require.NoError(t, err)

	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		message := []byte{byte(i), 'm'}
		eg.Go(func() error {
			commitment, err := s.GenerateNonceCommitment()
			if err != nil {
				return err
			}
			req, factors, err := s.Blind(commitment.Point, message)
			if err != nil {
				return err
			}
			sPrime, err := s.BlindSign(key.PrivateKey, commitment.Nonce, req.BlindM)
			if err != nil {
				return err
			}
			valid, err := s.Verify(factors.Unblind(req, sPrime), message, key.PublicKey)
			if err != nil {
				return err
			}
			assert.True(t, valid)
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

var resultValid bool

func BenchmarkVerify(b *testing.B) {
	for _, g := range groups {
		b.Run(g.Name(), func(b *testing.B) {
			s := NewScheme(Config{Group: g})
			key, err := s.GenerateKeyPair()
			require.NoError(b, err)
			sig := run(b, s, key, []byte("test"))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				resultValid, _ = s.Verify(sig, []byte("test"), key.PublicKey)
			}
		})
	}
}
