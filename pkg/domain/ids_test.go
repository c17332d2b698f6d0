package domain

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "voterroll/pkg/domain-errors"
)

type IDsSuite struct {
	suite.Suite
}

func TestIDsSuite(t *testing.T) {
	suite.Run(t, new(IDsSuite))
}

func (s *IDsSuite) TestParseEpicID() {
	s.Run("accepts and normalizes a well-formed id", func() {
		id, err := ParseEpicID("  abc1234567 ")
		s.Require().NoError(err)
		s.Equal(EpicID("ABC1234567"), id)
		s.False(id.IsNil())
	})

	s.Run("rejects empty input", func() {
		_, err := ParseEpicID("   ")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	for _, bad := range []string{"AB1234567", "ABCD123456", "ABC123456", "ABC12345678", "1231234567"} {
		s.Run("rejects "+bad, func() {
			_, err := ParseEpicID(bad)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func (s *IDsSuite) TestIsMobile() {
	s.True(IsMobile("9876543210"))
	s.True(IsMobile("0123456789"))
	s.False(IsMobile("98765432"))
	s.False(IsMobile("98765432101"))
	s.False(IsMobile("98765abcde"))
	s.False(IsMobile(""))
}

func (s *IDsSuite) TestEntryMobilePattern() {
	s.True(EntryMobilePattern.MatchString("9876543210"))
	s.False(EntryMobilePattern.MatchString("5876543210"))
}
