package disposable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optimode/mailscreen/internal/disposable"
)

func TestDefault_KnownDomains(t *testing.T) {
	s := disposable.Default()
	for _, d := range []string{"mailinator.com", "yopmail.net", "10minutemail.com", "keeppolly.com"} {
		assert.True(t, s.Contains(d), d)
	}
	assert.False(t, s.Contains("example.com"))
	assert.False(t, s.Contains("gmail.com"))
}

func TestDefault_CaseInsensitive(t *testing.T) {
	assert.True(t, disposable.Default().Contains("MailInator.COM"))
}

func TestParseList_SkipsCommentsAndBlanks(t *testing.T) {
	s := disposable.ParseList("# header\n\n  Throwaway.test  \n#other.test\n")
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("throwaway.test"))
	assert.False(t, s.Contains("other.test"))
}

func TestNilSet(t *testing.T) {
	var s *disposable.Set
	assert.False(t, s.Contains("mailinator.com"))
	assert.Equal(t, 0, s.Len())
}
