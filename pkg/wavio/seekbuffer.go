package wavio

import "errors"

// seekBuffer is an in-memory io.WriteSeeker; wav.Encoder needs to seek back
// and patch the RIFF chunk sizes, which bytes.Buffer cannot do.
type seekBuffer struct {
	buf []byte
	off int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if s.off > len(s.buf) {
		s.buf = append(s.buf, make([]byte, s.off-len(s.buf))...)
	}
	if s.off+len(p) > len(s.buf) {
		s.buf = append(s.buf, make([]byte, s.off+len(p)-len(s.buf))...)
	}
	n := copy(s.buf[s.off:], p)
	s.off += n
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var newOff int
	switch whence {
	case 0:
		newOff = int(offset)
	case 1:
		newOff = s.off + int(offset)
	case 2:
		newOff = len(s.buf) + int(offset)
	default:
		return 0, errors.New("invalid whence")
	}
	if newOff < 0 {
		return 0, errors.New("negative seek")
	}
	s.off = newOff
	return int64(newOff), nil
}

func (s *seekBuffer) Bytes() []byte { return s.buf }
