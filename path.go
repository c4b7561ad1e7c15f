package walletapp

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// MaxPathDepth is the largest number of components a derivation path may
// carry.
const MaxPathDepth = 10

// DerivationPath is a BIP-32 path. Hardened components have the
// hdkeychain.HardenedKeyStart bit set.
type DerivationPath []uint32

// ParseDerivationPath reads the wire form: one count byte followed by that
// many big-endian uint32 components, with nothing after them.
func ParseDerivationPath(data []byte) (DerivationPath, error) {

	if len(data) < 1 {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidDerivationPath)
	}

	count := int(data[0])
	body := data[1:]

	switch {
	case count == 0:
		return nil, fmt.Errorf("zero components: %w", ErrInvalidDerivationPath)
	case count > MaxPathDepth:
		return nil, fmt.Errorf("%d components exceeds %d: %w", count, MaxPathDepth, ErrInvalidDerivationPath)
	case len(body) < count*4:
		return nil, fmt.Errorf("need %d bytes, have %d: %w", count*4, len(body), ErrInvalidDerivationPath)
	case len(body) > count*4:
		return nil, fmt.Errorf("%d trailing bytes: %w", len(body)-count*4, ErrInvalidDerivationPath)
	}

	path := make(DerivationPath, count)

	for i := range path {
		path[i] = binary.BigEndian.Uint32(body[i*4:])
	}

	return path, nil

}

// ParsePathString reads the textual form, e.g. m/44'/0'/0'/0/0. Both ' and h
// mark a hardened component.
func ParsePathString(s string) (DerivationPath, error) {

	parts := strings.Split(strings.TrimSpace(s), "/")

	if len(parts) > 0 && parts[0] == "m" {
		parts = parts[1:]
	}

	if len(parts) == 0 || len(parts) > MaxPathDepth {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidDerivationPath)
	}

	path := make(DerivationPath, 0, len(parts))

	for _, part := range parts {

		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")

		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)

		if err != nil || index >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("component %q: %w", part, ErrInvalidDerivationPath)
		}

		if hardened {
			index += hdkeychain.HardenedKeyStart
		}

		path = append(path, uint32(index))
	}

	return path, nil

}

// Bytes returns the wire form of the path.
func (p DerivationPath) Bytes() []byte {

	out := make([]byte, 1, 1+4*len(p))
	out[0] = byte(len(p))

	for _, component := range p {
		out = binary.BigEndian.AppendUint32(out, component)
	}

	return out

}

func (p DerivationPath) String() string {

	var b strings.Builder
	b.WriteString("m")

	for _, component := range p {
		b.WriteString("/")
		if component >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(component-hdkeychain.HardenedKeyStart), 10))
			b.WriteString("'")
		} else {
			b.WriteString(strconv.FormatUint(uint64(component), 10))
		}
	}

	return b.String()

}
