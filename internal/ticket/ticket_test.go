package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "LMS-000000", Encode(0))
	assert.Equal(t, "LMS-000042", Encode(42))
	assert.Equal(t, "LMS-999999", Encode(999999))
}

func TestEncodeWidensBeyondSixDigits(t *testing.T) {
	assert.Equal(t, "LMS-1234567", Encode(1234567))

	id, err := Decode(Encode(1234567))
	require.NoError(t, err)
	assert.Equal(t, 1234567, id)
}

func TestRoundTrip(t *testing.T) {
	for id := 0; id <= 999999; id++ {
		decoded, err := Decode(Encode(id))
		if err != nil || decoded != id {
			t.Fatalf("round trip failed for id %d: got %d, err %v", id, decoded, err)
		}
	}
}

func TestDecodeCaseInsensitiveAndTrimmed(t *testing.T) {
	for _, code := range []string{"lms-000042", "Lms-000042", "  LMS-000042  ", "LMS-42"} {
		id, err := Decode(code)
		require.NoError(t, err, "code %q", code)
		assert.Equal(t, 42, id, "code %q", code)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, code := range []string{
		"",
		"LMS-",
		"LMS-ABCDEF",
		"LMS-12A456",
		"LMS--00042",
		"XYZ-000042",
		"000042",
		"LMS",
	} {
		_, err := Decode(code)
		assert.ErrorIs(t, err, ErrInvalidTicket, "code %q", code)
	}
}
