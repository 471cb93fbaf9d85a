// Package identifier produces the human-shareable codes used across the
// reservation core: booking codes and partner referral codes. Candidates are
// drawn from a random scheme and validated against an existence oracle; the
// caller still owns the atomic check-and-reserve at insert time, since a code
// can be taken by a concurrent writer between generation and commit.
package identifier

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/staysidelabs/stayside/internal/clock"
)

// ErrGenerationExhausted is returned when every attempt produced a code that
// already exists. Under a correctly sized token space this indicates a broken
// random source and should alert, not retry.
var ErrGenerationExhausted = errors.New("code_generation_exhausted")

const (
	maxAttempts = 10

	bookingCodePrefix  = "APT"
	bookingSuffixLen   = 4
	referralCodeLen    = 8
	base36Alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Oracle reports whether a candidate code is already persisted.
type Oracle interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, code string) (bool, error)

func (f OracleFunc) CodeExists(ctx context.Context, code string) (bool, error) {
	return f(ctx, code)
}

type Generator struct {
	clock clock.Clock
}

func New(c clock.Clock) *Generator {
	return &Generator{clock: c}
}

// BookingCode returns a fresh booking code of the form
// APT-<epoch millis>-<4 random base36 chars>.
func (g *Generator) BookingCode(ctx context.Context, oracle Oracle) (string, error) {
	return g.generate(ctx, oracle, func() (string, error) {
		suffix, err := randomBase36(bookingSuffixLen)
		if err != nil {
			return "", err
		}
		millis := g.clock.Now(ctx).UnixMilli()
		return fmt.Sprintf("%s-%d-%s", bookingCodePrefix, millis, suffix), nil
	})
}

// ReferralCode returns a fresh 8-character uppercase referral token.
func (g *Generator) ReferralCode(ctx context.Context, oracle Oracle) (string, error) {
	return g.generate(ctx, oracle, func() (string, error) {
		token := strings.ReplaceAll(uuid.NewString(), "-", "")
		return strings.ToUpper(token[:referralCodeLen]), nil
	})
}

func (g *Generator) generate(ctx context.Context, oracle Oracle, candidate func() (string, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := candidate()
		if err != nil {
			return "", fmt.Errorf("build candidate code: %w", err)
		}
		exists, err := oracle.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}

func randomBase36(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out), nil
}
