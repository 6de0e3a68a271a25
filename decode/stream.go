package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Stream decodes a single JSON document from r into v. Input after the
// document other than whitespace is an error.
//
// Schema and syntax problems are reported as *Error. Failures of r itself are
// returned unwrapped so callers can tell a broken connection from a broken
// document.
func Stream(r io.Reader, v Visitor) error {
	er := &errReader{r: r}
	dec := json.NewDecoder(er)
	dec.UseNumber()
	s := &streamer{dec: dec, src: er}
	if err := s.value(v, ""); err != nil {
		return err
	}
	return s.end()
}

// Unmarshal decodes data into v using the streaming driver.
func Unmarshal(data []byte, v Visitor) error {
	return Stream(bytes.NewReader(data), v)
}

type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF && e.err == nil {
		e.err = err
	}
	return n, err
}

type streamer struct {
	dec *json.Decoder
	src *errReader
}

func (s *streamer) token(ptr string) (json.Token, error) {
	tok, err := s.dec.Token()
	if err == nil {
		return tok, nil
	}
	if s.src.err != nil && errors.Is(err, s.src.err) {
		return nil, s.src.err
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, &Error{Pointer: ptr, Expected: "value", Err: err}
}

// end reports anything but whitespace after the document.
func (s *streamer) end() error {
	tok, err := s.dec.Token()
	switch {
	case err == io.EOF:
		return nil
	case s.src.err != nil:
		return s.src.err
	case err != nil:
		return &Error{Expected: "end of document", Err: err}
	}
	return &Error{Expected: "end of document", Token: fmt.Sprint(tok)}
}

func (s *streamer) value(v Visitor, ptr string) error {
	tok, err := s.token(ptr)
	if err != nil {
		return err
	}
	return s.dispatch(tok, v, ptr)
}

func (s *streamer) dispatch(tok json.Token, v Visitor, ptr string) error {
	if v == nil {
		v = Skip
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return s.object(v, ptr)
		case '[':
			return s.array(v, ptr)
		}
		return &Error{Pointer: ptr, Expected: "value", Token: t.String()}
	case string:
		return withPointer(ptr, v.String(t))
	case json.Number:
		return withPointer(ptr, v.Number(t))
	case bool:
		return withPointer(ptr, v.Bool(t))
	case nil:
		return withPointer(ptr, v.Null())
	}
	return &Error{Pointer: ptr, Expected: "value"}
}

func (s *streamer) object(v Visitor, ptr string) error {
	ov, err := v.Object()
	if err != nil {
		return withPointer(ptr, err)
	}
	for s.dec.More() {
		tok, err := s.token(ptr)
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return &Error{Pointer: ptr, Expected: "object key"}
		}
		if err := s.value(ov.Key(name), ptr+"/"+escapePointer(name)); err != nil {
			return err
		}
	}
	if _, err := s.token(ptr); err != nil {
		return err
	}
	return withPointer(ptr, ov.Finish())
}

func (s *streamer) array(v Visitor, ptr string) error {
	av, err := v.Array()
	if err != nil {
		return withPointer(ptr, err)
	}
	for i := 0; s.dec.More(); i++ {
		if err := s.value(av.Elem(), ptr+"/"+strconv.Itoa(i)); err != nil {
			return err
		}
	}
	if _, err := s.token(ptr); err != nil {
		return err
	}
	return withPointer(ptr, av.Finish())
}
