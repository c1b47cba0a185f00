package ext2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// loadSuperblock reads exactly the superblock record from SuperblockOffset
// and validates its magic number, per spec.md §4.2.
func loadSuperblock(d *device) (*Superblock, error) {
	buf, err := d.readAt(SuperblockOffset, binary.Size(Superblock{}))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("reading superblock: %v: %w", err, ErrInvalidImage)
		}
		return nil, fmt.Errorf("reading superblock: %w", err)
	}

	sb := new(Superblock)
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, sb); err != nil {
		return nil, fmt.Errorf("decoding superblock: %w", err)
	}

	if sb.Magic != Signature {
		return nil, fmt.Errorf("superblock magic is %#x, want %#x: %w", sb.Magic, Signature, ErrInvalidImage)
	}

	return sb, nil
}

// flushSuperblock writes the whole in-memory superblock back to
// SuperblockOffset. There are no partial flushes: spec.md §4.2.
func flushSuperblock(d *device, sb *Superblock) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, sb); err != nil {
		return fmt.Errorf("encoding superblock: %w", err)
	}

	if err := d.writeAt(SuperblockOffset, buf.Bytes()); err != nil {
		return fmt.Errorf("flushing superblock: %w", err)
	}

	return nil
}

// VolumeName returns the superblock's volume name, cut at the first NUL
// byte if there is one. The on-disk field is not guaranteed to be NUL-terminated, per
// spec.md §3.
func (sb *Superblock) VolumeName() string {
	return cstring(sb.VolumeLabel[:])
}

// UUID parses the superblock's 16-byte UUID field.
func (sb *Superblock) UUID() (uuid.UUID, error) {
	return uuid.FromBytes(sb.VolumeUUID[:])
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
