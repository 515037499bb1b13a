// Package nativemsg serves the conversion pipeline to a browser extension
// over native messaging: every message is a 4-byte little-endian length
// followed by that many bytes of JSON.
package nativemsg

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/llmfeeder"
)

// Message size limits. Browsers refuse host messages above 1 MiB and
// never send more than 64 MiB.
const (
	MaxOutgoingSize = 1 << 20
	MaxIncomingSize = 64 << 20
)

// ReadMessage decodes the next framed message from r into v.
// Returns io.EOF when r ends cleanly between messages.
func ReadMessage(r io.Reader, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("read message header: %w", err)
		}
		return err
	}

	n := binary.LittleEndian.Uint32(header[:])
	if n > MaxIncomingSize {
		return llmfeeder.Errorf(llmfeeder.EINVALID, "incoming message of %d bytes exceeds %d", n, MaxIncomingSize)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("read message body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return llmfeeder.Errorf(llmfeeder.EINVALID, "malformed message: %v", err)
	}
	return nil
}

// WriteMessage encodes v as one framed message.
// Returns EINVALID if the encoded message exceeds MaxOutgoingSize.
func WriteMessage(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if len(body) > MaxOutgoingSize {
		return llmfeeder.Errorf(llmfeeder.EINVALID, "outgoing message of %d bytes exceeds %d", len(body), MaxOutgoingSize)
	}

	buf := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(len(body)))
	copy(buf[4:], body)
	_, err = w.Write(buf)
	return err
}
