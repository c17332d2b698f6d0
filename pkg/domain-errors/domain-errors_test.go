package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorMessage() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "voter not found"}
		s.Equal("voter not found", err.Error())
	})

	s.Run("falls back to code", func() {
		err := &Error{Code: CodeInvalidState}
		s.Equal("invalid_state", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	s.Run("same code different message", func() {
		s.True(errors.Is(New(CodeValidation, "mobile"), New(CodeValidation, "")))
	})

	s.Run("different codes", func() {
		s.False(errors.Is(New(CodeValidation, "x"), New(CodeInvalidState, "x")))
	})

	s.Run("through fmt wrapping", func() {
		err := fmt.Errorf("submit: %w", New(CodeInvalidState, "already submitting"))
		s.True(HasCode(err, CodeInvalidState))
	})
}

func (s *DomainErrorsSuite) TestValidation() {
	s.Run("keeps every detail in order", func() {
		err := Validation("epic_id is required", "mobile must be exactly 10 digits")
		s.True(HasCode(err, CodeValidation))
		s.Equal([]string{"epic_id is required", "mobile must be exactly 10 digits"}, DetailsOf(err))
		s.Equal("epic_id is required; mobile must be exactly 10 digits", err.Error())
	})

	s.Run("without details", func() {
		err := Validation()
		s.Equal("validation failed", err.Error())
		s.Nil(DetailsOf(err))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves existing domain code", func() {
		inner := Validation("name is required")
		wrapped := Wrap(inner, CodeInternal, "insert voter")
		s.True(HasCode(wrapped, CodeValidation))
		s.Equal([]string{"name is required"}, DetailsOf(wrapped))
	})

	s.Run("applies code to plain errors", func() {
		wrapped := Wrap(errors.New("boom"), CodeInternal, "decode")
		s.True(HasCode(wrapped, CodeInternal))
		s.Equal("decode", wrapped.Error())
	})
}
