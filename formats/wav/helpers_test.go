// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
)

func chunk(id string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload)+1)
	copy(out, id)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func list(form string, children ...[]byte) []byte {
	payload := []byte(form)
	for _, c := range children {
		payload = append(payload, c...)
	}
	return chunk("LIST", payload)
}

func riffFile(form string, chunks ...[]byte) []byte {
	body := []byte(form)
	for _, c := range chunks {
		body = append(body, c...)
	}
	return chunk("RIFF", body)
}

func fmtPayload(format uint16, channels, rate, bits int) []byte {
	out := make([]byte, 16)
	blockAlign := channels * bits / 8
	binary.LittleEndian.PutUint16(out[0:], format)
	binary.LittleEndian.PutUint16(out[2:], uint16(channels))
	binary.LittleEndian.PutUint32(out[4:], uint32(rate))
	binary.LittleEndian.PutUint32(out[8:], uint32(rate*blockAlign))
	binary.LittleEndian.PutUint16(out[12:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[14:], uint16(bits))
	return out
}

func dataPayload(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}
