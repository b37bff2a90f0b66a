/*
Package api
File: compress.go
Description:
    LZ4 helpers for the WebSocket broadcast path. Full-state frames grow
    with player count and turn log length; clients that connect with
    ?compress=lz4 receive them as LZ4-framed binary messages instead of
    plain text.
*/

package api

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func compressLZ4(src []byte) []byte {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zw := lz4.NewWriter(buf)
	zw.Write(src)
	zw.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func decompressLZ4(src []byte) []byte {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zr := lz4.NewReader(bytes.NewReader(src))
	io.Copy(buf, zr)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
