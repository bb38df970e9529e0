package guest

import (
	"github.com/tetratelabs/wazero/api"
)

// encodeULEB128 encodes an unsigned value in LEB128 format.
func encodeULEB128(v uint32) []byte {
	var result []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		result = append(result, b)
		if v == 0 {
			break
		}
	}
	return result
}

// encodeSLEB128 encodes a signed value in LEB128 format.
func encodeSLEB128(v int32) []byte {
	var result []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			result = append(result, b)
			break
		}
		result = append(result, b|0x80)
	}
	return result
}

func encodeName(s string) []byte {
	return append(encodeULEB128(uint32(len(s))), s...)
}

func valType(t api.ValueType) byte {
	switch t {
	case api.ValueTypeI32:
		return 0x7f
	case api.ValueTypeI64:
		return 0x7e
	case api.ValueTypeF32:
		return 0x7d
	case api.ValueTypeF64:
		return 0x7c
	default:
		return 0x7f
	}
}

func section(id byte, body []byte) []byte {
	out := []byte{id}
	out = append(out, encodeULEB128(uint32(len(body)))...)
	return append(out, body...)
}
