package alist

import (
	"encoding/binary"
	"errors"
)

func appendLength(buf []byte, n int) []byte {
	var tmp [binary.MaxVarintLen64]byte
	used := binary.PutUvarint(tmp[:], uint64(n))
	return append(buf, tmp[:used]...)
}

func appendBytes(buf, body []byte) []byte {
	buf = appendLength(buf, len(body))
	return append(buf, body...)
}

func decodeLength(buf []byte, n *int) ([]byte, error) {
	k, used := binary.Uvarint(buf)
	if used <= 0 {
		return nil, errors.New("bad length")
	}
	*n = int(k)
	return buf[used:], nil
}

func decodeBytes(buf []byte, body *[]byte) ([]byte, error) {
	var n int
	buf, err := decodeLength(buf, &n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		*body = nil
		return buf, nil
	}
	if len(buf) < n {
		return nil, errors.New("bad body length")
	}
	*body = buf[:n]
	return buf[n:], nil
}

func marshalBinaryNode(key, value []byte, link string) []byte {
	buf := make([]byte, 0, len(key)+len(value)+len(link)+3*binary.MaxVarintLen64)
	buf = appendBytes(buf, key)
	buf = appendBytes(buf, value)
	buf = appendBytes(buf, []byte(link))
	return buf
}

func unmarshalBinaryNode(buf []byte) (key, value []byte, link string, err error) {
	buf, err = decodeBytes(buf, &key)
	if err != nil {
		return nil, nil, "", errors.New("bad node key")
	}
	buf, err = decodeBytes(buf, &value)
	if err != nil {
		return nil, nil, "", errors.New("bad node value")
	}
	var linkBytes []byte
	buf, err = decodeBytes(buf, &linkBytes)
	if err != nil {
		return nil, nil, "", errors.New("bad node link")
	}
	if len(buf) != 0 {
		return nil, nil, "", errors.New("trailing bytes after node")
	}
	return key, value, string(linkBytes), nil
}
