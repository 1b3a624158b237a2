package otp

import (
	"crypto/hmac"
	"encoding/binary"
	"time"
)

// Counter returns the number of whole periods elapsed between the Unix epoch
// and at. Instants before the epoch yield 0.
func Counter(spec Spec, at time.Time) uint64 {
	secs := at.Unix()
	if secs < 0 {
		return 0
	}

	return uint64(secs) / uint64(spec.effectivePeriod()) //nolint:gosec // both operands are positive
}

// CalculateCode returns the code for spec at the given instant, zero-padded to
// exactly spec.Digits().Value() decimal characters.
//
// The key is the raw byte encoding of the secret. The result only changes when
// at crosses a period boundary.
func CalculateCode(spec Spec, at time.Time) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], Counter(spec, at))

	mac := hmac.New(spec.algorithm.hash(), []byte(spec.secret))
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	digits := spec.effectiveDigits()
	mod := uint32(1)
	for i := 0; i < digits.Value(); i++ {
		mod *= 10
	}

	return digits.format(value % mod)
}

// RemainingSeconds returns how many seconds the code for at stays valid, in
// the range [1, period].
func RemainingSeconds(spec Spec, at time.Time) int {
	period := int64(spec.effectivePeriod())
	secs := at.Unix()
	if secs < 0 {
		return int(period)
	}

	return int(period - secs%period)
}

// WindowStart returns the instant at which the code for at became valid.
func WindowStart(spec Spec, at time.Time) time.Time {
	start := Counter(spec, at) * uint64(spec.effectivePeriod()) //nolint:gosec // period is positive
	return time.Unix(int64(start), 0).In(at.Location())         //nolint:gosec // start <= at.Unix()
}
